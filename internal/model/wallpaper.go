package model

import "strings"

// OutputKind selects which artifact the backend renders
type OutputKind string

const (
	OutputSVG OutputKind = "svg"
	OutputPNG OutputKind = "png"
	// OutputXML is served by the backend but never requested by the app
	OutputXML OutputKind = "xml"
)

// String returns the query value for the output kind
func (k OutputKind) String() string {
	return string(k)
}

// Character lists known to the backend
const (
	CharacterListHSK   = "hsk"
	CharacterListHanja = "hanja"
)

// CharacterLists returns the selectable character lists in display order
func CharacterLists() []string {
	return []string{CharacterListHSK, CharacterListHanja}
}

// Query holds the current values of the three form controls
type Query struct {
	CharacterList string
	DeviceModel   string
	CharacterID   string // raw text of the id field
}

// TrimmedID returns the id field without surrounding whitespace
func (q Query) TrimmedID() string {
	return strings.TrimSpace(q.CharacterID)
}
