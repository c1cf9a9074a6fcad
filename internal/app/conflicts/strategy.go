package conflicts

import (
	"fmt"
	"strings"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// Strategy decides whether a candidate entry collides with a persisted one. Entries
// handed to a strategy always share semester, academic year and day.
type Strategy interface {
	Kind() apperrors.ConflictKind
	Collides(candidate, existing models.TimetableEntry) bool
	Describe(candidate, existing models.TimetableEntry) string
}

// RoomConflict fires when both entries use the same room at overlapping times.
// Candidates without a room never conflict.
type RoomConflict struct{}

func (RoomConflict) Kind() apperrors.ConflictKind { return apperrors.ConflictRoom }

func (RoomConflict) Collides(candidate, existing models.TimetableEntry) bool {
	room := strings.TrimSpace(candidate.Room)
	if room == "" {
		return false
	}
	return strings.EqualFold(room, strings.TrimSpace(existing.Room)) && entriesOverlap(candidate, existing)
}

func (RoomConflict) Describe(candidate, existing models.TimetableEntry) string {
	return fmt.Sprintf("room %s is already booked on %s by %s section %s",
		existing.Room, existing.Slot(), existing.CourseLabel(), existing.SectionNumber)
}

// InstructorConflict fires when the same instructor would teach two overlapping
// meetings, whatever the rooms.
type InstructorConflict struct{}

func (InstructorConflict) Kind() apperrors.ConflictKind { return apperrors.ConflictInstructor }

func (InstructorConflict) Collides(candidate, existing models.TimetableEntry) bool {
	return candidate.InstructorID == existing.InstructorID && entriesOverlap(candidate, existing)
}

func (InstructorConflict) Describe(candidate, existing models.TimetableEntry) string {
	return fmt.Sprintf("instructor #%d already teaches %s section %s on %s",
		existing.InstructorID, existing.CourseLabel(), existing.SectionNumber, existing.Slot())
}

// ExactDuplicate fires only on an identical row. It does not use Overlaps: the same
// course at the same time is allowed under a different section number or session type.
type ExactDuplicate struct{}

func (ExactDuplicate) Kind() apperrors.ConflictKind { return apperrors.ConflictDuplicate }

func (ExactDuplicate) Collides(candidate, existing models.TimetableEntry) bool {
	return candidate.CourseID == existing.CourseID &&
		candidate.InstructorID == existing.InstructorID &&
		candidate.Semester == existing.Semester &&
		candidate.AcademicYear == existing.AcademicYear &&
		candidate.Day == existing.Day &&
		candidate.SectionNumber == existing.SectionNumber &&
		strings.EqualFold(candidate.SessionType, existing.SessionType) &&
		candidate.Start == existing.Start &&
		candidate.End == existing.End &&
		candidate.Room == existing.Room
}

func (ExactDuplicate) Describe(candidate, existing models.TimetableEntry) string {
	return fmt.Sprintf("%s section %s on %s already exists (section #%d)",
		existing.CourseLabel(), existing.SectionNumber, existing.Slot(), existing.SectionID)
}

// DefaultStrategies is the order section creation checks in
func DefaultStrategies() []Strategy {
	return []Strategy{RoomConflict{}, InstructorConflict{}, ExactDuplicate{}}
}
