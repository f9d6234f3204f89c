package http

import "testing"

func TestValidFieldKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"TITLE", true},
		{"RECIPIENT_NAME", true},
		{"COLOR_1", true},
		{"", false},
		{"title", false},
		{"TITLE-2", false},
		{"{{TITLE}}", false},
		{"A B", false},
	}
	for _, tt := range tests {
		if got := ValidFieldKey(tt.key); got != tt.want {
			t.Errorf("ValidFieldKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("a\x00b"); got != "ab" {
		t.Errorf("SanitizeString removed nulls wrong: %q", got)
	}
	if got := SanitizeString("héllo"); got != "héllo" {
		t.Errorf("SanitizeString mangled valid UTF-8: %q", got)
	}
}
