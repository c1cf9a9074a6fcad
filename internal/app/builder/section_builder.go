// Package builder assembles candidate sections step by step. It validates the shape of
// a section but never looks at other sections; conflict checks belong to the caller.
package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/unischedule/internal/app/conflicts"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SectionInserter persists a built section and returns its id
type SectionInserter interface {
	Insert(ctx context.Context, section *models.Section) (int64, error)
}

// SectionBuilder accumulates the parts of a section. The zero value is not usable; use
// NewSectionBuilder.
type SectionBuilder struct {
	courseIDs     []int64
	instructorID  int64
	sectionNumber string
	sessionType   string
	semester      models.Term
	year          int
	room          *string
	capacity      int
	sessions      []models.Session
	allowNoRoom   bool
}

// NewSectionBuilder creates an empty builder
func NewSectionBuilder() *SectionBuilder {
	return &SectionBuilder{}
}

// WithCourse sets the primary course
func (b *SectionBuilder) WithCourse(courseID int64) *SectionBuilder {
	if len(b.courseIDs) == 0 {
		b.courseIDs = []int64{courseID}
	} else {
		b.courseIDs[0] = courseID
	}
	return b
}

// WithAdditionalCourses groups more courses into the same meeting pattern
func (b *SectionBuilder) WithAdditionalCourses(courseIDs ...int64) *SectionBuilder {
	if len(b.courseIDs) == 0 {
		// keep slot 0 for the primary course
		b.courseIDs = []int64{0}
	}
	b.courseIDs = append(b.courseIDs, courseIDs...)
	return b
}

func (b *SectionBuilder) WithInstructor(instructorID int64) *SectionBuilder {
	b.instructorID = instructorID
	return b
}

func (b *SectionBuilder) WithSectionNumber(number string) *SectionBuilder {
	b.sectionNumber = strings.TrimSpace(number)
	return b
}

func (b *SectionBuilder) WithSemester(semester models.Term, year int) *SectionBuilder {
	b.semester = semester
	b.year = year
	return b
}

// WithRoom sets the default room; sessions may override it
func (b *SectionBuilder) WithRoom(room string) *SectionBuilder {
	room = strings.TrimSpace(room)
	if room == "" {
		b.room = nil
		return b
	}
	b.room = &room
	return b
}

func (b *SectionBuilder) WithCapacity(capacity int) *SectionBuilder {
	b.capacity = capacity
	return b
}

// WithSessionType marks the section as e.g. a lab. Unless the section number already
// ends with it, a normalized suffix is appended at build time ("001" + "lab" -> "001-Lab").
func (b *SectionBuilder) WithSessionType(sessionType string) *SectionBuilder {
	b.sessionType = strings.TrimSpace(sessionType)
	return b
}

// AllowUnassignedRoom lets sessions be built without any room
func (b *SectionBuilder) AllowUnassignedRoom() *SectionBuilder {
	b.allowNoRoom = true
	return b
}

// AddTimeSlot adds a meeting using the section defaults. Calling it for more than one
// distinct day makes the section weekly.
func (b *SectionBuilder) AddTimeSlot(day models.Weekday, start, end models.ClockTime) *SectionBuilder {
	return b.AddSession(models.Session{Day: day, Start: start, End: end})
}

// AddSession adds a meeting with per-session overrides
func (b *SectionBuilder) AddSession(session models.Session) *SectionBuilder {
	b.sessions = append(b.sessions, session)
	return b
}

// Build validates the accumulated parts and returns the section
func (b *SectionBuilder) Build() (*models.Section, error) {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(b.courseIDs) == 0 || b.courseIDs[0] <= 0 {
		fail("course is required")
	}
	seenCourse := make(map[int64]bool)
	for _, id := range b.courseIDs {
		if id > 0 && seenCourse[id] {
			fail("course %d is listed twice", id)
		}
		seenCourse[id] = true
	}
	if b.instructorID <= 0 {
		fail("instructor is required")
	}
	if !b.semester.Valid() {
		fail("semester must be one of FALL, SPRING, SUMMER")
	}
	if !validation.ValidAcademicYear(b.year) {
		fail("academic year must be between %d and %d", validation.MinAcademicYear, validation.MaxAcademicYear)
	}
	if b.capacity <= 0 || b.capacity > validation.MaxCapacity {
		fail("capacity must be between 1 and %d", validation.MaxCapacity)
	}
	if b.room != nil && !validation.ValidRoom(*b.room) {
		fail("invalid room %q", *b.room)
	}

	sectionNumber := b.sectionNumberWithType()
	if !validation.ValidSectionNumber(sectionNumber) {
		fail("invalid section number %q", sectionNumber)
	}

	if len(b.sessions) == 0 {
		fail("at least one time slot is required")
	}
	sessions := make([]models.Session, len(b.sessions))
	copy(sessions, b.sessions)
	for i, s := range sessions {
		if !s.Day.Valid() {
			fail("session %d: invalid day", i+1)
			continue
		}
		if !s.Start.Valid() || !s.End.Valid() {
			fail("session %d: invalid time", i+1)
			continue
		}
		if s.Start >= s.End {
			fail("session %d: start %s must be before end %s", i+1, s.Start, s.End)
		}
		if s.Room != nil {
			room := strings.TrimSpace(*s.Room)
			if room == "" {
				sessions[i].Room = nil
			} else if !validation.ValidRoom(room) {
				fail("session %d: invalid room %q", i+1, room)
			} else {
				sessions[i].Room = &room
			}
		}
		if sessions[i].Room == nil && b.room == nil && !b.allowNoRoom {
			fail("session %d: room is required", i+1)
		}
		sessions[i].SessionType = normalizeSessionType(s.SessionType)
		if s.CourseID != nil && !seenCourse[*s.CourseID] {
			fail("session %d: course %d is not part of the section", i+1, *s.CourseID)
		}
		if s.SectionNumber != nil && !validation.ValidSectionNumber(*s.SectionNumber) {
			fail("session %d: invalid section number %q", i+1, *s.SectionNumber)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Day != sessions[j].Day {
			return sessions[i].Day < sessions[j].Day
		}
		return sessions[i].Start < sessions[j].Start
	})
	for i := 1; i < len(sessions); i++ {
		prev, cur := sessions[i-1], sessions[i]
		if prev.Day == cur.Day && conflicts.Overlaps(prev.Start, prev.End, cur.Start, cur.End) {
			fail("sessions on %s overlap (%s-%s and %s-%s)", cur.Day, prev.Start, prev.End, cur.Start, cur.End)
		}
	}

	if len(problems) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, strings.Join(problems, "; ")).
			WithDetails(map[string]interface{}{"problems": problems})
	}

	section := &models.Section{
		MeetingGroupID: uuid.New(),
		CourseIDs:      append([]int64(nil), b.courseIDs...),
		InstructorID:   b.instructorID,
		SectionNumber:  sectionNumber,
		SessionType:    normalizeSessionType(b.sessionType),
		Semester:       b.semester,
		AcademicYear:   b.year,
		Room:           b.room,
		Capacity:       b.capacity,
		Sessions:       sessions,
	}
	section.IsWeekly = len(section.Days()) > 1
	return section, nil
}

// Create builds the section and persists it through inserter
func (b *SectionBuilder) Create(ctx context.Context, inserter SectionInserter) (*models.Section, error) {
	section, err := b.Build()
	if err != nil {
		return nil, err
	}
	id, err := inserter.Insert(ctx, section)
	if err != nil {
		return nil, err
	}
	section.ID = id
	return section, nil
}

func (b *SectionBuilder) sectionNumberWithType() string {
	sessionType := normalizeSessionType(b.sessionType)
	if sessionType == "" || b.sectionNumber == "" {
		return b.sectionNumber
	}
	suffix := "-" + sessionType
	if strings.HasSuffix(strings.ToLower(b.sectionNumber), strings.ToLower(suffix)) {
		return b.sectionNumber
	}
	return b.sectionNumber + suffix
}

// normalizeSessionType turns " LAB " into "Lab"
func normalizeSessionType(sessionType string) string {
	sessionType = strings.TrimSpace(sessionType)
	if sessionType == "" {
		return ""
	}
	// a Caser keeps state and must not be shared
	return cases.Title(language.English).String(strings.ToLower(sessionType))
}
