package models

import (
	"fmt"
	"strings"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// Term represents a semester term
type Term string

// Term constants
const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
	TermSummer Term = "SUMMER"
)

// Valid reports whether t is a known term
func (t Term) Valid() bool {
	switch t {
	case TermFall, TermSpring, TermSummer:
		return true
	}
	return false
}

// ParseTerm accepts a term name in any case
func ParseTerm(s string) (Term, error) {
	t := Term(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown semester %q", s)
	}
	return t, nil
}
