// Package sim runs the day-indexed conversation simulation: it maps the
// sparse, dated message stream onto a dense daily timeline and drives the
// Responder for every day of the journey.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/elyxlabs/journeytree/internal/classify"
	"github.com/elyxlabs/journeytree/internal/llm"
	"github.com/elyxlabs/journeytree/internal/metrics"
	"github.com/elyxlabs/journeytree/internal/models"
)

// CarryForwardText seeds the carry-forward chain before the first explicit
// record; no scheduled day is ever left without a message.
const CarryForwardText = "Just checking in."

// ResponderErrorReply substitutes for a failed Responder call so the
// per-day turn count invariant holds.
const ResponderErrorReply = "Sorry, the care team could not respond right now. We will follow up shortly."

// simulatedTime is the clock reading used when a record carries no usable
// time of day.
const simulatedTime = "09:00"

// Gateway persists the conversation log and per-day reports. Writes are
// best-effort: failures are logged, never fatal to the run.
type Gateway interface {
	SaveTimeline(turns []models.ConversationTurn) error
	SaveDailyReport(report models.DailyReport) error
}

// Scheduler walks the day range and produces the conversation log.
type Scheduler struct {
	responder llm.Responder
	gateway   Gateway
	logger    *slog.Logger
	epoch     time.Time
	stats     *metrics.Collector

	runID string
	turns []models.ConversationTurn
	seq   int
}

// New creates a scheduler. gateway may be nil for runs that only need the
// in-memory turn sequence.
func New(responder llm.Responder, gateway Gateway, epoch time.Time, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		responder: responder,
		gateway:   gateway,
		logger:    logger,
		epoch:     epoch,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this scheduler's run in persisted reports.
func (s *Scheduler) RunID() string {
	return s.runID
}

// WithMetrics attaches a collector that records responder and persistence
// timings during the run.
func (s *Scheduler) WithMetrics(collector *metrics.Collector) *Scheduler {
	s.stats = collector
	return s
}

// monthName matches legacy episode names like "Month 3".
var monthName = regexp.MustCompile(`(?i)^month\s+(\d+)`)

// Flatten folds episodes into a day-indexed record map. Later records for
// the same day overwrite earlier ones. A "Month k" episode name offsets its
// message days into absolute day numbers: (k-1)*30 + day.
func Flatten(episodes []models.Episode) map[int]models.MessageRecord {
	byDay := make(map[int]models.MessageRecord)
	for _, ep := range episodes {
		offset := 0
		if m := monthName.FindStringSubmatch(ep.Name); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil && k > 0 {
				offset = (k - 1) * 30
			}
		}
		for _, rec := range ep.Messages {
			rec.Day += offset
			byDay[rec.Day] = rec
		}
	}
	return byDay
}

// Run schedules days [1, days]. Every day yields exactly one turn carrying
// the member message and its advisor response; days whose reply-needed
// classification triggers also append a second turn for the follow-up
// round. The returned slice is the full conversation log in emission order.
func (s *Scheduler) Run(ctx context.Context, days int, episodes []models.Episode) ([]models.ConversationTurn, error) {
	if days < 1 {
		return nil, fmt.Errorf("day range must be at least 1, got %d", days)
	}

	byDay := Flatten(episodes)
	last := models.MessageRecord{Sender: "Rohan Patel", Text: CarryForwardText}

	s.logger.Info("starting journey simulation",
		"run_id", s.runID, "days", days, "explicit_days", len(byDay))

	for day := 1; day <= days; day++ {
		rec, explicit := byDay[day]
		if explicit {
			last = rec
		} else {
			rec = last
			// Carried days run on the simulated clock, not the record's.
			rec.Date, rec.Time = "", ""
		}

		date, clock := s.resolveClock(day, rec)
		events := EventsForDay(day)

		turn := s.respond(ctx, day, date, clock, rec, events)
		s.turns = append(s.turns, turn)
		base := len(s.turns) - 1

		if turn.ReplyNeeded != nil && *turn.ReplyNeeded {
			s.followUp(ctx, base, rec.Sender, events)
		}

		s.persistDay(day, date, events)
	}

	s.logger.Info("journey simulation complete", "run_id", s.runID, "turns", len(s.turns))
	return s.turns, nil
}

// respond invokes the Responder for one day and builds the day's turn: the
// member message plus the advisor reply embedded alongside it. Responder
// failure degrades to a fixed literal reply.
func (s *Scheduler) respond(ctx context.Context, day int, date, clock string, rec models.MessageRecord, events []string) models.ConversationTurn {
	tc := llm.TurnContext{Day: day, Events: events}
	start := time.Now()
	agent, reply, err := s.responder.Respond(ctx, rec.Sender, rec.Text, tc)
	if s.stats != nil {
		s.stats.RecordTiming(metrics.OpResponder, time.Since(start))
	}
	if err != nil {
		s.logger.Warn("responder failed, substituting error reply",
			"day", day, "error", err)
		if agent == "" {
			agent = "Elyx Team"
		}
		s.seq++
		return models.ConversationTurn{
			SeqNo:           s.seq,
			Sender:          rec.Sender,
			Message:         rec.Text,
			Day:             day,
			Date:            date,
			Time:            clock,
			ReplyNeeded:     models.BoolPtr(false),
			Recommendations: []string{},
			AgentName:       agent,
			AgentResponse:   ResponderErrorReply,
		}
	}

	recs := classify.ExtractRecommendations(reply)
	if recs == nil {
		recs = []string{}
	}

	s.seq++
	return models.ConversationTurn{
		SeqNo:           s.seq,
		Sender:          rec.Sender,
		Message:         rec.Text,
		Day:             day,
		Date:            date,
		Time:            clock,
		ReplyNeeded:     models.BoolPtr(classify.ReplyNeeded(recs)),
		Recommendations: recs,
		AgentName:       agent,
		AgentResponse:   reply,
	}
}

// followUp synthesizes the member follow-up for the turn at base, answers
// it, appends the round as one more turn, and links it back onto the
// originating turn.
func (s *Scheduler) followUp(ctx context.Context, base int, sender string, events []string) {
	origin := &s.turns[base]
	followUp := classify.FollowUp(origin.Recommendations)

	start := time.Now()
	defer func() {
		if s.stats != nil {
			s.stats.RecordTiming(metrics.OpFollowUp, time.Since(start))
		}
	}()

	rec := models.MessageRecord{Sender: sender, Text: followUp}
	round := s.respond(ctx, origin.Day, origin.Date, origin.Time, rec, events)
	// Second rounds never recurse.
	round.ReplyNeeded = models.BoolPtr(false)
	s.turns = append(s.turns, round)

	origin = &s.turns[base] // re-take: the append may have moved the backing array
	origin.RohanFollowUp = followUp
	origin.AgentFollowUpResponse = round.AgentResponse
}

// resolveClock picks the turn's calendar date and 24-hour clock time:
// record-supplied values when parsable, the simulated clock otherwise. The
// simulated clock is seeded at the epoch and advances one day per
// iteration.
func (s *Scheduler) resolveClock(day int, rec models.MessageRecord) (string, string) {
	date := s.epoch.AddDate(0, 0, day-1).Format("2006-01-02")
	if rec.Date != "" {
		if _, err := time.Parse("2006-01-02", rec.Date); err == nil {
			date = rec.Date
		}
	}

	clock := simulatedTime
	if rec.Time != "" {
		if parsed, err := parseTwelveHour(rec.Time); err == nil {
			clock = parsed
		}
	}
	return date, clock
}

// parseTwelveHour converts a 12-hour clock string ("09:15 AM") to 24-hour
// form ("09:15").
func parseTwelveHour(s string) (string, error) {
	for _, layout := range []string{"03:04 PM", "3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("unrecognized clock string %q", s)
}

// persistDay saves the day's report snapshot and the growing conversation
// log. A terminated run therefore loses at most the in-flight day.
func (s *Scheduler) persistDay(day int, date string, events []string) {
	if s.gateway == nil {
		return
	}
	start := time.Now()
	defer func() {
		if s.stats != nil {
			s.stats.RecordTiming(metrics.OpPersist, time.Since(start))
		}
	}()

	var dayRecs []string
	for _, t := range s.turns {
		if t.Day == day {
			dayRecs = append(dayRecs, t.Recommendations...)
		}
	}

	report := models.DailyReport{
		RunID:           s.runID,
		Day:             day,
		Date:            date,
		Events:          events,
		TurnCount:       len(s.turns),
		Recommendations: dayRecs,
	}
	if err := s.gateway.SaveDailyReport(report); err != nil {
		s.logger.Warn("failed to save daily report", "day", day, "error", err)
	}
	if err := s.gateway.SaveTimeline(s.turns); err != nil {
		s.logger.Warn("failed to save conversation log", "day", day, "error", err)
	}
}
