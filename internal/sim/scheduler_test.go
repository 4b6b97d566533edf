package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/elyxlabs/journeytree/internal/llm"
	"github.com/elyxlabs/journeytree/internal/models"
)

// stubResponder answers with a fixed reply, or fails when err is set.
type stubResponder struct {
	agent string
	reply string
	err   error
	calls int
}

func (r *stubResponder) Respond(_ context.Context, _, _ string, _ llm.TurnContext) (string, string, error) {
	r.calls++
	if r.err != nil {
		return "", "", r.err
	}
	return r.agent, r.reply, nil
}

// memoryGateway records persisted reports and timelines in memory.
type memoryGateway struct {
	reports   []models.DailyReport
	timelines int
	err       error
}

func (g *memoryGateway) SaveTimeline(_ []models.ConversationTurn) error {
	g.timelines++
	return g.err
}

func (g *memoryGateway) SaveDailyReport(report models.DailyReport) error {
	g.reports = append(g.reports, report)
	return g.err
}

func testEpoch(t *testing.T) time.Time {
	t.Helper()
	epoch, err := time.Parse("2006-01-02", "2025-01-01")
	if err != nil {
		t.Fatalf("parse epoch: %v", err)
	}
	return epoch
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunOneTurnPerDay(t *testing.T) {
	responder := &stubResponder{agent: "Ruby", reply: "Noted, all good for today."}
	s := New(responder, nil, testEpoch(t), quietLogger())

	turns, err := s.Run(context.Background(), 12, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(turns) != 12 {
		t.Fatalf("len(turns) = %d, want 12", len(turns))
	}
	for i, turn := range turns {
		if turn.SeqNo != i+1 {
			t.Errorf("turn %d: SeqNo = %d, want %d", i, turn.SeqNo, i+1)
		}
		if turn.Day != i+1 {
			t.Errorf("turn %d: Day = %d, want %d", i, turn.Day, i+1)
		}
		if turn.Message != CarryForwardText {
			t.Errorf("turn %d: Message = %q, want %q", i, turn.Message, CarryForwardText)
		}
		if turn.Sender != "Rohan Patel" {
			t.Errorf("turn %d: Sender = %q, want %q", i, turn.Sender, "Rohan Patel")
		}
		if turn.ReplyNeeded == nil || *turn.ReplyNeeded {
			t.Errorf("turn %d: ReplyNeeded = %v, want explicit false for informational reply", i, turn.ReplyNeeded)
		}
	}
}

func TestRunCarryForward(t *testing.T) {
	episodes := []models.Episode{{
		Name: "Onboarding",
		Messages: []models.MessageRecord{{
			Sender: "Rohan Patel",
			Day:    2,
			Date:   "2025-01-02",
			Time:   "08:30 AM",
			Text:   "Still feeling wiped out after the flight back.",
		}},
	}}

	responder := &stubResponder{agent: "Advik", reply: "Understood, nothing new needed."}
	s := New(responder, nil, testEpoch(t), quietLogger())

	turns, err := s.Run(context.Background(), 4, episodes)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("len(turns) = %d, want 4", len(turns))
	}

	if turns[0].Message != CarryForwardText {
		t.Errorf("day 1 before any record: Message = %q, want %q", turns[0].Message, CarryForwardText)
	}
	if turns[1].Message != episodes[0].Messages[0].Text {
		t.Errorf("day 2: Message = %q, want the explicit record text", turns[1].Message)
	}
	if turns[2].Message != turns[1].Message {
		t.Errorf("day 3: Message = %q, want carry-forward of day 2 (%q)", turns[2].Message, turns[1].Message)
	}
	if turns[3].Message != turns[1].Message {
		t.Errorf("day 4: Message = %q, want carry-forward of day 2 (%q)", turns[3].Message, turns[1].Message)
	}

	// The explicit record's clock applies to its own day only; carried days
	// advance on the simulated clock.
	if turns[1].Date != "2025-01-02" || turns[1].Time != "08:30" {
		t.Errorf("day 2 clock = (%q, %q), want (2025-01-02, 08:30)", turns[1].Date, turns[1].Time)
	}
	if turns[2].Date != "2025-01-03" || turns[2].Time != simulatedTime {
		t.Errorf("day 3 clock = (%q, %q), want (2025-01-03, %q)", turns[2].Date, turns[2].Time, simulatedTime)
	}
}

func TestRunRejectsEmptyDayRange(t *testing.T) {
	s := New(&stubResponder{agent: "Ruby", reply: "ok"}, nil, testEpoch(t), quietLogger())
	if _, err := s.Run(context.Background(), 0, nil); err == nil {
		t.Fatal("Run(0 days) expected an error")
	}
}

func TestRunResponderFailure(t *testing.T) {
	responder := &stubResponder{err: errors.New("provider unreachable")}
	s := New(responder, nil, testEpoch(t), quietLogger())

	turns, err := s.Run(context.Background(), 3, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("len(turns) = %d, want 3: a failed responder must not drop days", len(turns))
	}
	for i, turn := range turns {
		if turn.AgentResponse != ResponderErrorReply {
			t.Errorf("turn %d: AgentResponse = %q, want %q", i, turn.AgentResponse, ResponderErrorReply)
		}
		if turn.AgentName != "Elyx Team" {
			t.Errorf("turn %d: AgentName = %q, want %q", i, turn.AgentName, "Elyx Team")
		}
		if turn.ReplyNeeded == nil || *turn.ReplyNeeded {
			t.Errorf("turn %d: error replies must carry an explicit false flag", i)
		}
		if len(turn.Recommendations) != 0 {
			t.Errorf("turn %d: Recommendations = %v, want none", i, turn.Recommendations)
		}
	}
}

func TestRunFollowUpRound(t *testing.T) {
	responder := &stubResponder{
		agent: "Ruby",
		reply: "Please schedule a consultation with the medical team this week.",
	}
	s := New(responder, nil, testEpoch(t), quietLogger())

	turns, err := s.Run(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want base turn plus follow-up round", len(turns))
	}

	base, round := turns[0], turns[1]
	if base.ReplyNeeded == nil || !*base.ReplyNeeded {
		t.Fatal("base turn: ReplyNeeded not set for a scheduling recommendation")
	}
	if base.RohanFollowUp == "" {
		t.Error("base turn: RohanFollowUp not recorded")
	}
	if round.Message != base.RohanFollowUp {
		t.Errorf("round Message = %q, want the recorded follow-up %q", round.Message, base.RohanFollowUp)
	}
	if base.AgentFollowUpResponse != round.AgentResponse {
		t.Errorf("base AgentFollowUpResponse = %q, want the round's response %q",
			base.AgentFollowUpResponse, round.AgentResponse)
	}
	if round.ReplyNeeded == nil || *round.ReplyNeeded {
		t.Error("round: ReplyNeeded must be explicit false, second rounds never recurse")
	}
	if round.Day != base.Day || round.Date != base.Date {
		t.Errorf("round scheduled on (%d, %s), want the base turn's (%d, %s)",
			round.Day, round.Date, base.Day, base.Date)
	}
	if base.SeqNo != 1 || round.SeqNo != 2 {
		t.Errorf("sequence numbers = (%d, %d), want (1, 2)", base.SeqNo, round.SeqNo)
	}
	if responder.calls != 2 {
		t.Errorf("responder calls = %d, want 2", responder.calls)
	}
}

func TestRunPersistsDailyReports(t *testing.T) {
	gateway := &memoryGateway{}
	responder := &stubResponder{agent: "Ruby", reply: "All quiet."}
	s := New(responder, gateway, testEpoch(t), quietLogger())

	if _, err := s.Run(context.Background(), 5, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(gateway.reports) != 5 {
		t.Fatalf("reports saved = %d, want 5", len(gateway.reports))
	}
	for i, report := range gateway.reports {
		if report.Day != i+1 {
			t.Errorf("report %d: Day = %d, want %d", i, report.Day, i+1)
		}
		if report.RunID != s.RunID() {
			t.Errorf("report %d: RunID = %q, want %q", i, report.RunID, s.RunID())
		}
		if report.TurnCount != i+1 {
			t.Errorf("report %d: TurnCount = %d, want %d", i, report.TurnCount, i+1)
		}
	}
	if gateway.timelines != 5 {
		t.Errorf("timeline snapshots = %d, want 5", gateway.timelines)
	}
}

func TestRunSurvivesGatewayErrors(t *testing.T) {
	gateway := &memoryGateway{err: errors.New("disk full")}
	responder := &stubResponder{agent: "Ruby", reply: "All quiet."}
	s := New(responder, gateway, testEpoch(t), quietLogger())

	turns, err := s.Run(context.Background(), 2, nil)
	if err != nil {
		t.Fatalf("Run() error = %v, persistence failures must not abort the run", err)
	}
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		episodes []models.Episode
		wantDays map[int]string
	}{
		{
			name: "month episode offsets days",
			episodes: []models.Episode{{
				Name: "Month 2",
				Messages: []models.MessageRecord{
					{Day: 3, Text: "glucose spiked after dinner"},
				},
			}},
			wantDays: map[int]string{33: "glucose spiked after dinner"},
		},
		{
			name: "plain episode keeps day numbers",
			episodes: []models.Episode{{
				Name: "Onboarding",
				Messages: []models.MessageRecord{
					{Day: 3, Text: "first check-in"},
				},
			}},
			wantDays: map[int]string{3: "first check-in"},
		},
		{
			name: "later record wins the day",
			episodes: []models.Episode{
				{
					Name:     "Month 1",
					Messages: []models.MessageRecord{{Day: 5, Text: "early note"}},
				},
				{
					Name:     "Month 1",
					Messages: []models.MessageRecord{{Day: 5, Text: "revised note"}},
				},
			},
			wantDays: map[int]string{5: "revised note"},
		},
		{
			name: "month name is case insensitive",
			episodes: []models.Episode{{
				Name: "MONTH 3: Travel Weeks",
				Messages: []models.MessageRecord{
					{Day: 1, Text: "packing for the trip"},
				},
			}},
			wantDays: map[int]string{61: "packing for the trip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byDay := Flatten(tt.episodes)
			if len(byDay) != len(tt.wantDays) {
				t.Fatalf("len(byDay) = %d, want %d", len(byDay), len(tt.wantDays))
			}
			for day, text := range tt.wantDays {
				rec, ok := byDay[day]
				if !ok {
					t.Fatalf("day %d missing from flattened map", day)
				}
				if rec.Text != text {
					t.Errorf("day %d: Text = %q, want %q", day, rec.Text, text)
				}
			}
		})
	}
}

func TestParseTwelveHour(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:15 AM", want: "09:15"},
		{in: "9:05 PM", want: "21:05"},
		{in: "12:30 PM", want: "12:30"},
		{in: "12:05 AM", want: "00:05"},
		{in: "15:40", want: "15:40"},
		{in: "half past nine", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := parseTwelveHour(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTwelveHour(%q) expected an error, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTwelveHour(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseTwelveHour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEventsForDay(t *testing.T) {
	tests := []struct {
		day  int
		want []string
	}{
		{day: 1, want: []string{EventOnboardingComplete, EventInitialBloodTest}},
		{day: 2, want: nil},
		{day: 8, want: []string{EventExercisePlanUpdate}},
		{day: 15, want: nil},
		{day: 22, want: []string{EventBusinessTravel}},
		{day: 64, want: []string{EventLegInjury}},
		{day: 78, want: []string{EventQuarterlyDiagnostic}},
		{day: 79, want: nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("day_%d", tt.day), func(t *testing.T) {
			got := EventsForDay(tt.day)
			if len(got) != len(tt.want) {
				t.Fatalf("EventsForDay(%d) = %v, want %v", tt.day, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("EventsForDay(%d)[%d] = %q, want %q", tt.day, i, got[i], tt.want[i])
				}
			}
		})
	}
}
