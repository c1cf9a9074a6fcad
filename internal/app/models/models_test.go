package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{in: "09:00", want: Clock(9, 0)},
		{in: "9:05", want: Clock(9, 5)},
		{in: "23:59:00", want: Clock(23, 59)},
		{in: "24:00", want: MinutesPerDay},
		{in: "24:01", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if s := Clock(7, 5).String(); s != "07:05" {
		t.Fatalf("unexpected clock string %q", s)
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]Weekday{"Monday": Monday, "wed": Wednesday, "7": Sunday, " friday ": Friday} {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"0", "8", "funday", "mo"} {
		if _, err := ParseWeekday(bad); err == nil {
			t.Errorf("ParseWeekday(%q) expected error", bad)
		}
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	var s Session
	if err := json.Unmarshal([]byte(`{"day":"Tuesday","startTime":"13:30","endTime":"15:00","room":"B2"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Day != Tuesday || s.Start != Clock(13, 30) || s.End != Clock(15, 0) || *s.Room != "B2" {
		t.Fatalf("unexpected session: %+v", s)
	}
	out, err := json.Marshal(WeeklyTimetable{Monday: nil})
	if err != nil {
		t.Fatalf("marshal timetable: %v", err)
	}
	if string(out) != `{"Monday":null}` {
		t.Fatalf("unexpected timetable json %s", out)
	}
}

func TestEntriesApplySessionOverrides(t *testing.T) {
	section := &Section{
		ID:             10,
		MeetingGroupID: uuid.New(),
		CourseIDs:      []int64{1, 2},
		InstructorID:   7,
		SectionNumber:  "001",
		SessionType:    "Lecture",
		Room:           strPtr("R101"),
		Sessions: []Session{
			{Day: Monday, Start: Clock(9, 0), End: Clock(10, 30)},
			{Day: Wednesday, Start: Clock(13, 0), End: Clock(15, 0), Room: strPtr("LAB1"), SessionType: "Lab", CourseID: intPtr(2), SectionNumber: strPtr("001-Lab")},
		},
		CourseCodes: map[int64]string{1: "CS101", 2: "CS102"},
	}
	entries := section.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries (2 courses on Monday, 1 override on Wednesday), got %d", len(entries))
	}
	lab := entries[2]
	if lab.Day != Wednesday || lab.Room != "LAB1" || lab.SessionType != "Lab" || lab.CourseID != 2 || lab.SectionNumber != "001-Lab" {
		t.Fatalf("override not applied: %+v", lab)
	}
	if entries[0].Room != "R101" || entries[0].CourseCode != "CS101" || entries[1].CourseCode != "CS102" {
		t.Fatalf("defaults not applied: %+v", entries[:2])
	}
	if days := section.Days(); len(days) != 2 || days[0] != Monday || days[1] != Wednesday {
		t.Fatalf("unexpected days %v", days)
	}
}

func TestBuildWeeklyTimetableExpandsWeeklySections(t *testing.T) {
	weekly := &Section{
		ID:            1,
		CourseIDs:     []int64{100},
		SectionNumber: "001",
		Room:          strPtr("R101"),
		IsWeekly:      true,
		Sessions: []Session{
			{Day: Monday, Start: Clock(9, 0), End: Clock(10, 30)},
			{Day: Wednesday, Start: Clock(11, 0), End: Clock(12, 30), Room: strPtr("R202")},
		},
	}
	single := &Section{
		ID:            2,
		CourseIDs:     []int64{200},
		SectionNumber: "002",
		Sessions:      []Session{{Day: Monday, Start: Clock(8, 0), End: Clock(9, 0)}},
	}

	// the weekly section is passed twice to exercise de-duplication
	tt := BuildWeeklyTimetable([]*Section{weekly, single, weekly, nil})
	if tt.Count() != 3 {
		t.Fatalf("expected 3 entries, got %d", tt.Count())
	}
	monday := tt[Monday]
	if len(monday) != 2 || monday[0].SectionID != 2 || monday[1].SectionID != 1 {
		t.Fatalf("monday not sorted by start: %+v", monday)
	}
	wed := tt[Wednesday]
	if len(wed) != 1 || wed[0].Room != "R202" || wed[0].Start != Clock(11, 0) || wed[0].End != Clock(12, 30) {
		t.Fatalf("unexpected wednesday entry: %+v", wed)
	}
	if monday[1].Room != "R101" {
		t.Fatalf("expected default room on monday, got %q", monday[1].Room)
	}
}

func TestGradePolicy(t *testing.T) {
	policy := NewGradePolicy([]string{"F", "ff"})
	cases := map[string]bool{"AA": true, "C": true, "F": false, "FF": false, " ff ": false, "": false}
	for grade, want := range cases {
		g := grade
		if got := policy.Passed(&g); got != want {
			t.Errorf("Passed(%q) = %v, want %v", grade, got, want)
		}
	}
	if policy.Passed(nil) {
		t.Fatalf("missing grade must not pass")
	}
}
