package models

import (
	"fmt"
	"strings"
)

// Term is the academic period an enrollment belongs to.
type Term string

const (
	TermFall   Term = "FALL"
	TermWinter Term = "WINTER"
)

// Terms returns every term in calendar order.
func Terms() []Term {
	return []Term{TermFall, TermWinter}
}

// Valid reports whether t is a defined term.
func (t Term) Valid() bool {
	for _, term := range Terms() {
		if term == t {
			return true
		}
	}
	return false
}

// DisplayName returns the human label, e.g. "Fall".
func (t Term) DisplayName() string {
	switch t {
	case TermFall:
		return "Fall"
	case TermWinter:
		return "Winter"
	default:
		return string(t)
	}
}

// ParseTerm accepts a term name, case-insensitively.
func ParseTerm(raw string) (Term, error) {
	t := Term(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown term %q", raw)
	}
	return t, nil
}
