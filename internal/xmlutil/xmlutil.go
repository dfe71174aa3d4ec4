// Package xmlutil holds small namespace-tolerant helpers shared by the
// streaming XML parsers (sheetxml, lazy), so each doesn't reimplement
// attribute lookup by local name.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Attr returns the value of the attribute on start whose local name matches
// name exactly (xml.Name.Local ignores any namespace prefix already), or ""
// if absent.
func Attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrSuffix returns the value of the first attribute on start whose local
// name ends in suffix, case-insensitively. With suffix "id" it matches
// r:id, relId and similar namespace-prefixed spellings, and it skips no
// attribute name: on a <sheet> element that lists sheetId before r:id it
// returns the sheetId value.
func AttrSuffix(start xml.StartElement, suffix string) (string, bool) {
	lowerSuffix := strings.ToLower(suffix)
	for _, a := range start.Attr {
		if strings.HasSuffix(strings.ToLower(a.Name.Local), lowerSuffix) {
			return a.Value, true
		}
	}
	return "", false
}
