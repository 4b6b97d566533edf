// Package parser reads tagged-markup timeline documents into episodes.
//
// Two dialects are supported: the legacy nesting of episode/message elements
// with sender/day attributes, and the flat messages container where each
// message carries content/sender/date/time children. Malformed input is a
// recoverable condition: the parser logs it and returns no episodes.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/elyxlabs/journeytree/internal/models"
)

// Defaults for missing optional fields.
const (
	DefaultSender = "Rohan Patel"
	DefaultTime   = "09:00 AM"
)

// ErrNoData reports a document that yielded zero messages, whether empty
// or malformed. Callers branch on it to distinguish bad input from I/O
// failures.
var ErrNoData = errors.New("no messages in timeline document")

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Parser converts timeline documents into ordered episode sequences.
type Parser struct {
	epoch  time.Time
	logger *slog.Logger
}

// New creates a parser. The epoch anchors flat-dialect dates: a message
// dated on the epoch is day 1.
func New(epoch time.Time, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{epoch: epoch, logger: logger}
}

type legacyMessage struct {
	Sender string `xml:"sender,attr"`
	Day    string `xml:"day,attr"`
	Text   string `xml:",chardata"`
}

type legacyEpisode struct {
	Name     string          `xml:"name,attr"`
	Duration string          `xml:"duration,attr"`
	Context  string          `xml:"context"`
	Messages []legacyMessage `xml:"message"`
	Grouped  []legacyMessage `xml:"messages>message"`
}

type legacyDocument struct {
	Episodes []legacyEpisode `xml:"episode"`
}

type flatMessage struct {
	Content string `xml:"content"`
	Sender  string `xml:"sender"`
	Date    string `xml:"date"`
	Time    string `xml:"time"`
}

type flatDocument struct {
	Messages []flatMessage `xml:"message"`
}

// Parse reads one document and returns its episodes in order. The flat
// dialect yields a single synthetic episode. An empty result means no data:
// either the document was malformed (logged) or it contained nothing.
func (p *Parser) Parse(data []byte) []models.Episode {
	data = normalize(data)
	if len(data) == 0 {
		p.logger.Warn("timeline document is empty")
		return nil
	}

	root, err := rootElement(data)
	if err != nil {
		p.logger.Warn("unparsable timeline document", "error", err)
		return nil
	}

	if root == "messages" {
		return p.parseFlat(data)
	}
	return p.parseLegacy(data)
}

// normalize strips a BOM and leading whitespace and injects an XML
// declaration when the document lacks one.
func normalize(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return data
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		data = append([]byte(xmlDeclaration+"\n"), data...)
	}
	return data
}

// rootElement returns the name of the document's first start element.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func (p *Parser) parseLegacy(data []byte) []models.Episode {
	var doc legacyDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		p.logger.Warn("unparsable legacy timeline document", "error", err)
		return nil
	}

	episodes := make([]models.Episode, 0, len(doc.Episodes))
	for _, ep := range doc.Episodes {
		episode := models.Episode{
			Name:     ep.Name,
			Duration: ep.Duration,
			Context:  strings.TrimSpace(ep.Context),
		}
		raw := append(append([]legacyMessage{}, ep.Messages...), ep.Grouped...)
		for _, msg := range raw {
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				continue
			}
			episode.Messages = append(episode.Messages, models.MessageRecord{
				Sender: orDefault(msg.Sender, DefaultSender),
				Day:    parseDay(msg.Day),
				Time:   DefaultTime,
				Text:   text,
			})
		}
		episodes = append(episodes, episode)
	}
	return episodes
}

func (p *Parser) parseFlat(data []byte) []models.Episode {
	var doc flatDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		p.logger.Warn("unparsable flat timeline document", "error", err)
		return nil
	}

	episode := models.Episode{Name: "Messages"}
	for _, msg := range doc.Messages {
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			continue
		}
		date := strings.TrimSpace(msg.Date)
		episode.Messages = append(episode.Messages, models.MessageRecord{
			Sender: orDefault(strings.TrimSpace(msg.Sender), DefaultSender),
			Day:    p.dayFromDate(date),
			Date:   date,
			Time:   orDefault(strings.TrimSpace(msg.Time), DefaultTime),
			Text:   text,
		})
	}
	return []models.Episode{episode}
}

// dayFromDate derives a 1-based day number from a YYYY-MM-DD date relative
// to the epoch. Unparsable dates default to day 1.
func (p *Parser) dayFromDate(date string) int {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		p.logger.Debug("unparsable message date, defaulting to day 1", "date", date)
		return 1
	}
	day := int(parsed.Sub(p.epoch).Hours()/24) + 1
	if day < 1 {
		return 1
	}
	return day
}

func parseDay(s string) int {
	day, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || day < 1 {
		return 1
	}
	return day
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
