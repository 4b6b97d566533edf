package models

import (
	"fmt"
	"strings"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// BoolPtr returns a pointer to v, for the optional turn flags.
func BoolPtr(v bool) *bool {
	return &v
}

// Preview shortens text to at most n runes, appending "..." when truncated.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

// FlattenText collapses all newlines in text to single spaces. Exports use
// this so one turn stays on one row.
func FlattenText(text string) string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return strings.Join(fields, " ")
}

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}
