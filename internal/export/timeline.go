package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elyxlabs/journeytree/internal/models"
)

// TimelineDocument is the canonical on-disk shape of a conversation log.
// The extractor re-ingests documents in this shape.
type TimelineDocument struct {
	TotalMessages       int                       `json:"total_messages"`
	SimulationPeriod    string                    `json:"simulation_period"`
	ConversationHistory []models.ConversationTurn `json:"conversation_history"`
}

// NewTimelineDocument wraps a turn sequence in the document envelope.
func NewTimelineDocument(turns []models.ConversationTurn) TimelineDocument {
	doc := TimelineDocument{
		TotalMessages:       len(turns),
		ConversationHistory: turns,
	}
	if len(turns) > 0 {
		doc.SimulationPeriod = fmt.Sprintf("%s to %s", turns[0].Date, turns[len(turns)-1].Date)
	}
	return doc
}

// WriteTimeline encodes the turn sequence as an indented timeline document.
func WriteTimeline(w io.Writer, turns []models.ConversationTurn) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewTimelineDocument(turns)); err != nil {
		return fmt.Errorf("encode timeline document: %w", err)
	}
	return nil
}

// DecodeTimeline reads a timeline document, accepting both the canonical
// snake_case entry fields and the PascalCase spelling older documents use
// ("S.No.", "Sender", "Reply_Needed", ...). Spellings are normalized here;
// nothing downstream branches on them.
func DecodeTimeline(r io.Reader) ([]models.ConversationTurn, error) {
	var doc struct {
		ConversationHistory []map[string]json.RawMessage `json:"conversation_history"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timeline document: %w", err)
	}

	turns := make([]models.ConversationTurn, 0, len(doc.ConversationHistory))
	for i, raw := range doc.ConversationHistory {
		turn, err := decodeTurn(raw)
		if err != nil {
			return nil, fmt.Errorf("decode timeline entry %d: %w", i, err)
		}
		if turn.Day <= 0 {
			// External documents may omit day numbers; approximate a
			// ten-message day from the entry position.
			turn.Day = i/10 + 1
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// canonicalKey lowercases a field name and strips separators, folding
// "S.No.", "s_no" and "Reply_Needed", "reply_needed" into single keys.
func canonicalKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func decodeTurn(raw map[string]json.RawMessage) (models.ConversationTurn, error) {
	norm := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		norm[canonicalKey(key)] = value
	}

	var turn models.ConversationTurn
	var err error
	field := func(key string, target any) {
		if err != nil {
			return
		}
		value, ok := norm[key]
		if !ok {
			return
		}
		if uerr := json.Unmarshal(value, target); uerr != nil {
			err = fmt.Errorf("field %q: %w", key, uerr)
		}
	}

	field("sno", &turn.SeqNo)
	field("sender", &turn.Sender)
	field("message", &turn.Message)
	field("day", &turn.Day)
	field("date", &turn.Date)
	field("time", &turn.Time)
	field("replyneeded", &turn.ReplyNeeded)
	field("recommendations", &turn.Recommendations)
	field("agentname", &turn.AgentName)
	field("agentresponse", &turn.AgentResponse)
	field("rohanfollowup", &turn.RohanFollowUp)
	field("agentfollowupresponse", &turn.AgentFollowUpResponse)

	if turn.Recommendations == nil {
		turn.Recommendations = []string{}
	}
	return turn, err
}
