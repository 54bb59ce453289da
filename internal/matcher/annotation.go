package matcher

import (
	"fmt"
	"strings"
)

// Marker is a recognized //fromone: directive token.
type Marker string

// MarkerSkip opts a variant out of constructor generation.
const MarkerSkip Marker = "skip"

// UnrecognizedTokenError reports a directive token other than a known Marker.
type UnrecognizedTokenError struct {
	Token string
}

func (e *UnrecognizedTokenError) Error() string {
	if e.Token == "" {
		return "empty //fromone: directive"
	}
	return fmt.Sprintf("unrecognized token %q in //fromone: directive", e.Token)
}

// ParseAnnotation parses the comma separated tokens following //fromone:.
// Every token must be recognized; an empty directive is rejected as well.
func ParseAnnotation(text string) ([]Marker, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &UnrecognizedTokenError{}
	}

	parts := strings.Split(text, ",")
	markers := make([]Marker, 0, len(parts))
	for _, p := range parts {
		tok := strings.TrimSpace(p)
		switch Marker(tok) {
		case MarkerSkip:
			markers = append(markers, MarkerSkip)
		default:
			return nil, &UnrecognizedTokenError{Token: tok}
		}
	}
	return markers, nil
}
