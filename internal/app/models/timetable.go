package models

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// TimetableEntry is one concrete meeting: a section, a course, a day and a time range.
type TimetableEntry struct {
	SectionID      int64     `json:"sectionId"`
	MeetingGroupID uuid.UUID `json:"meetingGroupId"`
	CourseID       int64     `json:"courseId"`
	CourseCode     string    `json:"courseCode,omitempty"`
	InstructorID   int64     `json:"instructorId"`
	SectionNumber  string    `json:"sectionNumber"`
	SessionType    string    `json:"sessionType,omitempty"`
	Room           string    `json:"room,omitempty"`
	Semester       Term      `json:"semester"`
	AcademicYear   int       `json:"academicYear"`
	Day            Weekday   `json:"day"`
	Start          ClockTime `json:"startTime"`
	End            ClockTime `json:"endTime"`
}

// CourseLabel names the course for messages, preferring the code
func (e TimetableEntry) CourseLabel() string {
	if e.CourseCode != "" {
		return e.CourseCode
	}
	return fmt.Sprintf("course #%d", e.CourseID)
}

// Slot renders "Monday 09:00-10:30"
func (e TimetableEntry) Slot() string {
	return fmt.Sprintf("%s %s-%s", e.Day, e.Start, e.End)
}

type entryKey struct {
	sectionID int64
	day       Weekday
	start     ClockTime
	end       ClockTime
	courseID  int64
}

func (e TimetableEntry) key() entryKey {
	return entryKey{sectionID: e.SectionID, day: e.Day, start: e.Start, end: e.End, courseID: e.CourseID}
}

// WeeklyTimetable buckets entries by day
type WeeklyTimetable map[Weekday][]TimetableEntry

// BuildWeeklyTimetable expands every section into per-day entries. Entries sharing
// (section, day, start, end, course) are emitted once even if a section is passed more
// than once, and each day is sorted by start time.
func BuildWeeklyTimetable(sections []*Section) WeeklyTimetable {
	timetable := make(WeeklyTimetable)
	seen := make(map[entryKey]bool)
	for _, section := range sections {
		if section == nil {
			continue
		}
		for _, entry := range section.Entries() {
			k := entry.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			timetable[entry.Day] = append(timetable[entry.Day], entry)
		}
	}
	for day := range timetable {
		entries := timetable[day]
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Start != entries[j].Start {
				return entries[i].Start < entries[j].Start
			}
			return entries[i].SectionID < entries[j].SectionID
		})
	}
	return timetable
}

// Count returns the number of entries across all days
func (t WeeklyTimetable) Count() int {
	n := 0
	for _, entries := range t {
		n += len(entries)
	}
	return n
}
