package dto

import "github.com/yigit/unischedule/internal/app/models"

// SessionRequest is one meeting of a section
type SessionRequest struct {
	Day           models.Weekday    `json:"day" binding:"required" swaggertype:"string" example:"Monday"`
	StartTime     *models.ClockTime `json:"startTime" binding:"required" swaggertype:"string" example:"09:00"`
	EndTime       *models.ClockTime `json:"endTime" binding:"required" swaggertype:"string" example:"10:30"`
	Room          *string           `json:"room,omitempty" binding:"omitempty,room" example:"LAB-2"`
	SessionType   string            `json:"sessionType,omitempty" binding:"omitempty,max=20" example:"Lab"`
	CourseID      *int64            `json:"courseId,omitempty" binding:"omitempty,gt=0"`
	SectionNumber *string           `json:"sectionNumber,omitempty" binding:"omitempty,sectionnumber"`
}

// CreateSectionRequest describes a section to schedule
type CreateSectionRequest struct {
	CourseID            int64            `json:"courseId" binding:"required,gt=0" example:"12"`
	AdditionalCourseIDs []int64          `json:"additionalCourseIds,omitempty" binding:"omitempty,dive,gt=0"`
	InstructorID        int64            `json:"instructorId" binding:"required,gt=0" example:"3"`
	SectionNumber       string           `json:"sectionNumber" binding:"required,sectionnumber" example:"001"`
	SessionType         string           `json:"sessionType,omitempty" binding:"omitempty,max=20" example:"Lecture"`
	Semester            models.Term      `json:"semester" binding:"required,oneof=FALL SPRING SUMMER" example:"FALL"`
	AcademicYear        int              `json:"academicYear" binding:"required,min=2000,max=2100" example:"2025"`
	Room                string           `json:"room,omitempty" binding:"omitempty,room" example:"R101"`
	Capacity            int              `json:"capacity,omitempty" binding:"omitempty,min=1,max=1000" example:"40"`
	Sessions            []SessionRequest `json:"sessions" binding:"required,min=1,dive"`
}

// BatchCreateSectionsRequest schedules several sections at once
type BatchCreateSectionsRequest struct {
	Sections []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

// ConflictInfo names the collision that blocked a section
type ConflictInfo struct {
	Kind   string `json:"kind" example:"ROOM"`
	Reason string `json:"reason" example:"room R101 is already booked on Monday 09:00-10:30 by CS101 section 001"`
	// Index is the position of the offending section in a batch
	Index *int `json:"index,omitempty"`
}

// CreateSectionResponse reports the outcome of scheduling one section
type CreateSectionResponse struct {
	Created  bool            `json:"created" example:"true"`
	ID       *int64          `json:"id,omitempty" example:"41"`
	Section  *models.Section `json:"section,omitempty"`
	Conflict *ConflictInfo   `json:"conflict,omitempty"`
}

// BatchCreateSectionsResponse reports the outcome of a batch; nothing is created when
// any section conflicts.
type BatchCreateSectionsResponse struct {
	Created  bool          `json:"created" example:"true"`
	IDs      []int64       `json:"ids,omitempty"`
	Conflict *ConflictInfo `json:"conflict,omitempty"`
}

// TimetableResponse is the weekly timetable of a term
type TimetableResponse struct {
	Semester     models.Term            `json:"semester" example:"FALL"`
	AcademicYear int                    `json:"academicYear" example:"2025"`
	TotalEntries int                    `json:"totalEntries" example:"18"`
	Days         models.WeeklyTimetable `json:"days"`
}
