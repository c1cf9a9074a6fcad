// Package conflicts detects room, instructor and duplicate collisions between a
// candidate section and the sections already persisted for the same term.
package conflicts

import "github.com/yigit/unischedule/internal/app/models"

// Overlaps reports whether the half-open ranges [startA, endA) and [startB, endB)
// intersect. Ranges that only touch (endA == startB) do not overlap.
func Overlaps(startA, endA, startB, endB models.ClockTime) bool {
	return startA < endB && startB < endA
}

// entriesOverlap applies Overlaps to two entries on the same day
func entriesOverlap(a, b models.TimetableEntry) bool {
	return a.Day == b.Day && Overlaps(a.Start, a.End, b.Start, b.End)
}
