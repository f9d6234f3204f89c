package usecases

import (
	"strings"
	"testing"

	"lovepages-admin/internal/entities"
)

func TestSubstitute(t *testing.T) {
	fields := []entities.EditableField{
		{Key: "TITLE", Label: "Título", DefaultValue: "Hi"},
		{Key: "SUBTITLE", Label: "Subtítulo"},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "value substituted",
			in:   "<h1>{{TITLE}}</h1>",
			want: "<h1>Hi</h1>",
		},
		{
			name: "empty value falls back to bracketed label",
			in:   "<p>{{SUBTITLE}}</p>",
			want: "<p>[Subtítulo]</p>",
		},
		{
			name: "unknown token left verbatim",
			in:   "<span>{{OTHER}}</span>",
			want: "<span>{{OTHER}}</span>",
		},
		{
			name: "repeated token replaced everywhere",
			in:   "{{TITLE}} and {{TITLE}}",
			want: "Hi and Hi",
		},
		{
			name: "unterminated token left alone",
			in:   "before {{TITLE",
			want: "before {{TITLE",
		},
		{
			name: "stray opener does not swallow the next token",
			in:   "a{{b{{TITLE}}c",
			want: "a{{bHic",
		},
		{
			name: "stray closer left alone",
			in:   "a}}b{{TITLE}}",
			want: "a}}bHi",
		},
		{
			name: "no tokens",
			in:   "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.in, fields); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// A replacement value containing {{...}} must not be re-expanded.
func TestSubstituteNonRecursive(t *testing.T) {
	fields := []entities.EditableField{
		{Key: "A", Label: "A", DefaultValue: "{{B}}"},
		{Key: "B", Label: "B", DefaultValue: "expanded"},
	}
	got := Substitute("x {{A}} y", fields)
	if got != "x {{B}} y" {
		t.Errorf("Substitute() = %q, want %q", got, "x {{B}} y")
	}
}

func TestRenderPreview(t *testing.T) {
	fields := []entities.EditableField{
		{Key: "TITLE", Label: "Título", DefaultValue: "Hola"},
		{Key: "ACCENT", Label: "Acento", DefaultValue: "#ff0066"},
	}
	doc := RenderPreview("<h1>{{TITLE}}</h1>", "h1{color:{{ACCENT}};}", fields)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<h1>Hola</h1>",
		"h1{color:#ff0066;}",
		"box-sizing:border-box",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("preview missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "{{") {
		t.Errorf("preview still contains tokens:\n%s", doc)
	}
}
