package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session is one meeting of a section on a given day. The pointer fields override the
// section defaults when set.
type Session struct {
	Day           Weekday   `json:"day"`
	Start         ClockTime `json:"startTime"`
	End           ClockTime `json:"endTime"`
	Room          *string   `json:"room,omitempty"`
	SessionType   string    `json:"sessionType,omitempty"`
	CourseID      *int64    `json:"courseId,omitempty"`
	SectionNumber *string   `json:"sectionNumber,omitempty"`
}

// Section is a scheduled meeting pattern of one or more courses taught by an instructor
// in a given semester.
//
// A section always owns at least one Session. A single-slot section has exactly one;
// IsWeekly is set once sessions fall on more than one distinct day. Sections built with
// several courses are persisted as one row per course sharing MeetingGroupID.
type Section struct {
	ID                int64     `json:"id" db:"id"`
	MeetingGroupID    uuid.UUID `json:"meetingGroupId" db:"meeting_group_id"`
	CourseIDs         []int64   `json:"courseIds"`
	InstructorID      int64     `json:"instructorId" db:"instructor_id"`
	SectionNumber     string    `json:"sectionNumber" db:"section_number"`
	SessionType       string    `json:"sessionType,omitempty" db:"session_type"`
	Semester          Term      `json:"semester" db:"semester"`
	AcademicYear      int       `json:"academicYear" db:"academic_year"`
	Room              *string   `json:"room,omitempty" db:"room"`
	Capacity          int       `json:"capacity" db:"capacity"`
	CurrentEnrollment int       `json:"currentEnrollment" db:"current_enrollment"`
	IsWeekly          bool      `json:"isWeekly" db:"is_weekly"`
	Sessions          []Session `json:"sessions"`
	CreatedBy         int64     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`

	// CourseCodes is filled by the repository for display purposes
	CourseCodes map[int64]string `json:"-"`
}

// PrimaryCourseID returns the first course of the section
func (s *Section) PrimaryCourseID() int64 {
	if len(s.CourseIDs) == 0 {
		return 0
	}
	return s.CourseIDs[0]
}

// HasCapacity reports whether one more student fits
func (s *Section) HasCapacity() bool {
	return s.CurrentEnrollment < s.Capacity
}

// Days returns the distinct days the section meets on, in week order
func (s *Section) Days() []Weekday {
	seen := make(map[Weekday]bool)
	for _, session := range s.Sessions {
		seen[session.Day] = true
	}
	days := make([]Weekday, 0, len(seen))
	for _, d := range AllWeekdays {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days
}

// WeeklySchedule groups the sessions by day, each day ordered by start time
func (s *Section) WeeklySchedule() map[Weekday][]Session {
	schedule := make(map[Weekday][]Session)
	for _, session := range s.Sessions {
		schedule[session.Day] = append(schedule[session.Day], session)
	}
	for day := range schedule {
		sessions := schedule[day]
		sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Start < sessions[j].Start })
	}
	return schedule
}

// Entries flattens the section into one entry per (session, course) with session
// overrides applied over the section defaults.
func (s *Section) Entries() []TimetableEntry {
	entries := make([]TimetableEntry, 0, len(s.Sessions)*len(s.CourseIDs))
	for _, session := range s.Sessions {
		room := ""
		if s.Room != nil {
			room = *s.Room
		}
		if session.Room != nil {
			room = *session.Room
		}
		sessionType := s.SessionType
		if session.SessionType != "" {
			sessionType = session.SessionType
		}
		sectionNumber := s.SectionNumber
		if session.SectionNumber != nil {
			sectionNumber = *session.SectionNumber
		}
		courses := s.CourseIDs
		if session.CourseID != nil {
			courses = []int64{*session.CourseID}
		}
		for _, courseID := range courses {
			entries = append(entries, TimetableEntry{
				SectionID:      s.ID,
				MeetingGroupID: s.MeetingGroupID,
				CourseID:       courseID,
				CourseCode:     s.CourseCodes[courseID],
				InstructorID:   s.InstructorID,
				SectionNumber:  sectionNumber,
				SessionType:    sessionType,
				Room:           room,
				Semester:       s.Semester,
				AcademicYear:   s.AcademicYear,
				Day:            session.Day,
				Start:          session.Start,
				End:            session.End,
			})
		}
	}
	return entries
}

// EntriesOn returns the flattened entries that fall on day
func (s *Section) EntriesOn(day Weekday) []TimetableEntry {
	var out []TimetableEntry
	for _, e := range s.Entries() {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
