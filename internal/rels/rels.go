// Package rels parses OOXML relationship XML files (.rels).
//
// It exists to eliminate duplicated parseRelsXML / xmlRelationships code from
// workbook/ and lazy/, which cannot share the code directly due to the
// import graph.
package rels

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Relationships is the root element of a .rels XML document.
type Relationships struct {
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship is one entry in a .rels XML document.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

// ParseRelsXML parses the raw bytes of a .rels XML file and returns a map of
// relationship ID → target string.
func ParseRelsXML(data []byte) (map[string]string, error) {
	var r Relationships
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rels XML: %w", err)
	}
	m := make(map[string]string, len(r.Relationships))
	for _, rel := range r.Relationships {
		m[rel.ID] = rel.Target
	}
	return m, nil
}

// ResolveZipPath turns a relationship target (relative to xl/, as every
// workbook-level relationship's target is) into a full ZIP entry path. Both
// workbook and lazy resolve a <sheet>'s r:id this way before reading its
// worksheet part.
func ResolveZipPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return "xl/" + strings.TrimPrefix(target, "./")
}
