// Package xmltext escapes text for interpolation into raw XML fragments.
//
// Documents built from tagged structs go through encoding/xml, which
// escapes element and attribute content on its own; Escape exists for the
// places where markup is assembled by string formatting, such as the
// FatturaPA root element wrapper. Callers must not apply it to content
// that will also pass through the encoder, or entities get double-escaped.
package xmltext

import "strings"

// Escape replaces the five XML metacharacters in order, ampersand first so
// that the entities introduced by later replacements are left alone.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
