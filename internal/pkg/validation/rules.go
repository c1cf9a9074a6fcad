package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Section number: digits or letters, optionally followed by a session type suffix ("001-Lab")
	SectionNumberPattern = `^[0-9A-Za-z]{1,10}(-[A-Za-z]+)?$`

	// Room label - e.g. R101, B-204, LAB 3
	RoomPattern = `^[0-9A-Za-z][0-9A-Za-z \-.]{0,31}$`

	// Academic year bounds
	MinAcademicYear = 2000
	MaxAcademicYear = 2100

	// Section capacity bounds
	MaxCapacity = 1000
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	SectionNumber *regexp.Regexp
	Room          *regexp.Regexp
}{
	SectionNumber: regexp.MustCompile(SectionNumberPattern),
	Room:          regexp.MustCompile(RoomPattern),
}

// String validation
type StringValidation struct {
	Value   string
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation; empty values never pass
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation
type NumericValidation struct {
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != 0 && v.Value < v.Min {
		return false
	}

	if v.Max != 0 && v.Value > v.Max {
		return false
	}

	return true
}

// ValidSectionNumber reports whether s is an acceptable section number
func ValidSectionNumber(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.SectionNumber).Validate()
}

// ValidRoom reports whether s is an acceptable room label
func ValidRoom(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Room).Validate()
}

// ValidAcademicYear reports whether year is within the supported range
func ValidAcademicYear(year int) bool {
	return NewNumericValidation(year).WithMin(MinAcademicYear).WithMax(MaxAcademicYear).Validate()
}
