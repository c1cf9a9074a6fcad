package dto

import "github.com/yigit/unischedule/internal/app/models"

// CreateEnrollmentRequestRequest asks for a seat in a section
type CreateEnrollmentRequestRequest struct {
	SectionID int64 `json:"sectionId" binding:"required,gt=0" example:"41"`
}

// EnrollmentRequestResult reports whether a request was filed
type EnrollmentRequestResult struct {
	Success bool   `json:"success" example:"true"`
	ID      *int64 `json:"id,omitempty" example:"7"`
	Reason  string `json:"reason,omitempty" example:"section is full"`
}

// RejectEnrollmentRequest carries the reviewer's reason
type RejectEnrollmentRequest struct {
	Reason string `json:"reason" binding:"required,max=500" example:"Section reserved for majors"`
}

// ApproveAllRequest lists the requests to approve
type ApproveAllRequest struct {
	RequestIDs []int64 `json:"requestIds" binding:"required,min=1,dive,gt=0"`
}

// ReviewResult reports the outcome of an approval or rejection
type ReviewResult struct {
	Success   bool                 `json:"success" example:"true"`
	RequestID int64                `json:"requestId" example:"7"`
	Status    models.RequestStatus `json:"status" example:"APPROVED"`
}

// EligibilityResponse answers whether a student may take a course
type EligibilityResponse struct {
	StudentID              int64   `json:"studentId" example:"5"`
	CourseID               int64   `json:"courseId" example:"12"`
	Eligible               bool    `json:"eligible" example:"false"`
	MissingPrerequisiteIDs []int64 `json:"missingPrerequisiteIds,omitempty"`
}
