package usecases

import (
	"strings"

	"lovepages-admin/internal/entities"
)

// Substitute replaces every {{KEY}} token in text with the matching field's
// default value, or with "[label]" when the field has no value yet. One
// non-recursive pass: replacement values are emitted verbatim even if they
// contain {{...}}, and tokens with no matching field are left untouched.
func Substitute(text string, fields []entities.EditableField) string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			continue
		}
		v := f.DefaultValue
		if v == "" {
			v = "[" + f.Label + "]"
		}
		values[f.Key] = v
	}

	// Anchor each candidate on the closing braces and take the nearest
	// opener, so a stray "{{" before a real token cannot swallow it.
	var b strings.Builder
	for {
		j := strings.Index(text, "}}")
		if j < 0 {
			b.WriteString(text)
			break
		}
		i := strings.LastIndex(text[:j], "{{")
		if i < 0 {
			b.WriteString(text[:j+2])
			text = text[j+2:]
			continue
		}

		b.WriteString(text[:i])
		key := text[i+2 : j]
		if v, ok := values[key]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(text[i : j+2])
		}
		text = text[j+2:]
	}
	return b.String()
}

// RenderPreview substitutes tokens in a template's markup and style and
// wraps the result in a minimal standalone document. The caller serves it to
// an isolated surface (sandboxed frame); it never executes in the console's
// own origin.
func RenderPreview(html, css string, fields []entities.EditableField) string {
	html = Substitute(html, fields)
	css = Substitute(css, fields)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">`)
	b.WriteString("\n<style>*{margin:0;padding:0;box-sizing:border-box;}body{overflow-x:hidden;}")
	b.WriteString(css)
	b.WriteString("</style>\n</head><body>")
	b.WriteString(html)
	b.WriteString("</body></html>")
	return b.String()
}
