package models

import "testing"

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly limit", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"empty", "", 5, ""},
		{"multibyte runes", "日本語のテキスト", 3, "日本語..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preview(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestFlattenText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no newlines", "one line", "one line"},
		{"unix newlines", "a\nb\nc", "a b c"},
		{"windows newlines", "a\r\nb", "a b"},
		{"blank lines collapse", "a\n\n\nb", "a b"},
		{"surrounding whitespace trimmed", "a  \n  b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenText(tt.in)
			if got != tt.want {
				t.Errorf("FlattenText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
