package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/yigit/unischedule/internal/app/models"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	muted   = color.New(color.FgYellow)
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// renderTimetable prints one table per day that has meetings, Monday first
func renderTimetable(w io.Writer, semester models.Term, year int, timetable models.WeeklyTimetable) {
	heading.Fprintf(w, "Weekly timetable %s %d (%d meetings)\n", semester, year, timetable.Count())
	if timetable.Count() == 0 {
		muted.Fprintln(w, "no sections scheduled")
		return
	}

	for _, day := range models.AllWeekdays {
		entries := timetable[day]
		if len(entries) == 0 {
			continue
		}
		heading.Fprintf(w, "\n%s\n", day)
		table := newTable(w, "Time", "Course", "Section", "Type", "Room", "Instructor")
		for _, e := range entries {
			table.Append([]string{
				fmt.Sprintf("%s-%s", e.Start, e.End),
				e.CourseLabel(),
				e.SectionNumber,
				e.SessionType,
				orDash(e.Room),
				strconv.FormatInt(e.InstructorID, 10),
			})
		}
		table.Render()
	}
}

// renderSections prints one row per section
func renderSections(w io.Writer, sections []*models.Section) {
	if len(sections) == 0 {
		muted.Fprintln(w, "no sections scheduled")
		return
	}

	table := newTable(w, "ID", "Courses", "Section", "Instructor", "Room", "Seats", "Meetings")
	for _, s := range sections {
		var meetings []string
		for _, session := range s.Sessions {
			meetings = append(meetings, fmt.Sprintf("%.3s %s-%s", session.Day, session.Start, session.End))
		}
		room := ""
		if s.Room != nil {
			room = *s.Room
		}
		table.Append([]string{
			strconv.FormatInt(s.ID, 10),
			courseList(s),
			s.SectionNumber,
			strconv.FormatInt(s.InstructorID, 10),
			orDash(room),
			fmt.Sprintf("%d/%d", s.CurrentEnrollment, s.Capacity),
			strings.Join(meetings, ", "),
		})
	}
	table.Render()
}

// renderAudit prints an audit trail oldest first
func renderAudit(w io.Writer, logs []*models.AuditLog) {
	if len(logs) == 0 {
		muted.Fprintln(w, "no audit records")
		return
	}

	table := newTable(w, "When", "Actor", "Action", "Details")
	for _, l := range logs {
		table.Append([]string{
			l.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(l.ActorUserID, 10),
			l.Action,
			string(l.Details),
		})
	}
	table.Render()
}

func courseList(s *models.Section) string {
	labels := make([]string, 0, len(s.CourseIDs))
	for _, id := range s.CourseIDs {
		if code, ok := s.CourseCodes[id]; ok {
			labels = append(labels, code)
			continue
		}
		labels = append(labels, "#"+strconv.FormatInt(id, 10))
	}
	return strings.Join(labels, "+")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
