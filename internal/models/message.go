// Package models defines data structures for the journeytree simulator.
package models

// MessageRecord is a single dated member message from the input timeline.
// Records are immutable once parsed; the scheduler copies them into turns.
type MessageRecord struct {
	Sender string `json:"sender"`
	Day    int    `json:"day"`
	Date   string `json:"date,omitempty"` // YYYY-MM-DD, empty when the dialect carries only day numbers
	Time   string `json:"time,omitempty"` // 12-hour clock string as written, e.g. "09:00 AM"
	Text   string `json:"text"`
}

// Episode groups the messages of one legacy-dialect episode element.
// The flat dialect produces a single synthetic episode.
type Episode struct {
	Name     string          `json:"name"`
	Duration string          `json:"duration,omitempty"`
	Context  string          `json:"context,omitempty"`
	Messages []MessageRecord `json:"messages"`
}

// ConversationTurn is one scheduled day exchange: the member message active
// that day plus the advisor reply it drew. The scheduler owns the turn
// slice for the duration of a run; afterwards it is read-only input for the
// extractor, analyzer and exporters.
type ConversationTurn struct {
	SeqNo   int    `json:"s_no"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Time    string `json:"time"`

	// ReplyNeeded is nil when the source document carries no flag; the
	// extractor then infers it. An explicit value wins either way.
	ReplyNeeded     *bool    `json:"reply_needed,omitempty"`
	Recommendations []string `json:"recommendations"`

	AgentName     string `json:"agent_name,omitempty"`
	AgentResponse string `json:"agent_response,omitempty"`

	// Follow-up linkage, set after the fact on the originating turn when the
	// reply-needed classifier triggers a second round.
	RohanFollowUp         string `json:"rohan_follow_up,omitempty"`
	AgentFollowUpResponse string `json:"agent_follow_up_response,omitempty"`
}

// DailyReport is the per-day snapshot persisted after each scheduled day.
type DailyReport struct {
	RunID           string   `json:"run_id"`
	Day             int      `json:"day"`
	Date            string   `json:"date"`
	Events          []string `json:"events"`
	TurnCount       int      `json:"turn_count"`
	Recommendations []string `json:"recommendations"`
}
