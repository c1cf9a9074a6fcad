package models

// Course represents a course in the catalog.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	Name        string `json:"name" db:"name"`
	CreditHours int    `json:"creditHours" db:"credit_hours"`
	Department  string `json:"department,omitempty" db:"department"`

	// PrerequisiteIDs are the courses a student must have passed first
	PrerequisiteIDs []int64 `json:"prerequisiteIds,omitempty"`
}
