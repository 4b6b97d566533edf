// Package export serializes conversation logs to the tabular and
// timeline-document interchange formats. Exports are best-effort side
// channels: callers log failures and keep running.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/elyxlabs/journeytree/internal/models"
)

// csvMessageLimit truncates message text in tabular rows.
const csvMessageLimit = 500

var csvHeader = []string{"s_no", "message", "sender", "date", "time"}

// WriteCSV writes one row per turn in emission order. Message text is
// collapsed to a single line and truncated.
func WriteCSV(w io.Writer, turns []models.ConversationTurn) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, turn := range turns {
		row := []string{
			strconv.Itoa(turn.SeqNo),
			models.Preview(models.FlattenText(turn.Message), csvMessageLimit),
			turn.Sender,
			turn.Date,
			turn.Time,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", turn.SeqNo, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
