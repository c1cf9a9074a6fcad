package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/yigit/unischedule/internal/app/models"
)

func init() {
	color.NoColor = true
}

func TestRenderTimetable(t *testing.T) {
	room := "LAB-2"
	section := &models.Section{
		ID:            7,
		CourseIDs:     []int64{1},
		CourseCodes:   map[int64]string{1: "CENG201"},
		InstructorID:  3,
		SectionNumber: "001",
		Semester:      models.TermFall,
		AcademicYear:  2025,
		Capacity:      30,
		IsWeekly:      true,
		Sessions: []models.Session{
			{Day: models.Wednesday, Start: models.Clock(13, 0), End: models.Clock(15, 0), Room: &room, SessionType: "Lab"},
			{Day: models.Monday, Start: models.Clock(9, 0), End: models.Clock(10, 30)},
		},
	}

	var buf bytes.Buffer
	renderTimetable(&buf, models.TermFall, 2025, models.BuildWeeklyTimetable([]*models.Section{section}))
	out := buf.String()

	monday, wednesday := strings.Index(out, "Monday"), strings.Index(out, "Wednesday")
	if monday < 0 || wednesday < 0 || monday > wednesday {
		t.Fatalf("expected Monday before Wednesday:\n%s", out)
	}
	for _, want := range []string{"2 meetings", "09:00-10:30", "13:00-15:00", "CENG201", "LAB-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tuesday") {
		t.Errorf("empty days should be skipped:\n%s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderTimetable(&buf, models.TermSpring, 2026, models.WeeklyTimetable{})
	renderSections(&buf, nil)
	renderAudit(&buf, nil)
	out := buf.String()
	if strings.Count(out, "no sections scheduled") != 2 || !strings.Contains(out, "no audit records") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderSections(t *testing.T) {
	room := "R101"
	var buf bytes.Buffer
	renderSections(&buf, []*models.Section{{
		ID:                41,
		CourseIDs:         []int64{1, 2},
		CourseCodes:       map[int64]string{1: "CENG101"},
		SectionNumber:     "002",
		InstructorID:      3,
		Room:              &room,
		Capacity:          40,
		CurrentEnrollment: 12,
		Sessions:          []models.Session{{Day: models.Friday, Start: models.Clock(10, 0), End: models.Clock(11, 0)}},
	}})
	out := buf.String()
	for _, want := range []string{"CENG101+#2", "12/40", "Fri 10:00-11:00", "R101"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}
