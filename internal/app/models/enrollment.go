package models

import (
	"strings"
	"time"
)

// RequestStatus is the review state of an enrollment request
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// Terminal reports whether the status can no longer change
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// EnrollmentRequest is a student's petition to join a section
type EnrollmentRequest struct {
	ID              int64         `json:"id" db:"id"`
	StudentID       int64         `json:"studentId" db:"student_id"`
	SectionID       int64         `json:"sectionId" db:"section_id"`
	Status          RequestStatus `json:"status" db:"status"`
	RequestedAt     time.Time     `json:"requestedAt" db:"requested_at"`
	ReviewedAt      *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ReviewedBy      *int64        `json:"reviewedBy,omitempty" db:"reviewed_by"`
	RejectionReason *string       `json:"rejectionReason,omitempty" db:"rejection_reason"`
}

// EnrollmentStatus is the state of a student's seat in a section
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
)

// Enrollment is created only when a request is approved
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	SectionID  int64            `json:"sectionId" db:"section_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	FinalGrade *string          `json:"finalGrade,omitempty" db:"final_grade"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
}

// CompletedCourse is one completion record from a student's history. A course can
// appear more than once.
type CompletedCourse struct {
	CourseID   int64
	FinalGrade *string
}

// GradePolicy decides which final grades count as passing
type GradePolicy struct {
	failing map[string]bool
}

// NewGradePolicy builds a policy from the failing letter grades
func NewGradePolicy(failingGrades []string) GradePolicy {
	failing := make(map[string]bool, len(failingGrades))
	for _, g := range failingGrades {
		failing[strings.ToUpper(strings.TrimSpace(g))] = true
	}
	return GradePolicy{failing: failing}
}

// Passed reports whether grade is present and not failing
func (p GradePolicy) Passed(grade *string) bool {
	if grade == nil {
		return false
	}
	g := strings.ToUpper(strings.TrimSpace(*grade))
	return g != "" && !p.failing[g]
}
