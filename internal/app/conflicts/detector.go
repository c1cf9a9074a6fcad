package conflicts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// SessionFinder returns the persisted timetable entries of one day of a term
type SessionFinder interface {
	ListSessionsByDay(ctx context.Context, semester models.Term, year int, day models.Weekday) ([]models.TimetableEntry, error)
}

// Result is the outcome of a detection run
type Result struct {
	Conflict bool
	Kind     apperrors.ConflictKind
	Reason   string
	// Existing is the persisted entry that was hit
	Existing models.TimetableEntry
}

// Err converts a conflicting result into a *apperrors.ConflictError
func (r Result) Err() error {
	if !r.Conflict {
		return nil
	}
	return apperrors.NewSchedulingConflict(r.Kind, r.Reason)
}

// Detector runs strategies against persisted sections. It never writes.
type Detector struct {
	finder SessionFinder
}

// NewDetector creates a detector reading from finder
func NewDetector(finder SessionFinder) *Detector {
	return &Detector{finder: finder}
}

// Detect runs a single strategy. excludeID skips one persisted section (the one being
// edited); pass 0 when creating.
func (d *Detector) Detect(ctx context.Context, strategy Strategy, candidate *models.Section, excludeID int64) (Result, error) {
	return d.CheckAll(ctx, candidate, excludeID, strategy)
}

// CheckAll runs strategies in order (DefaultStrategies when none are given) and stops
// at the first conflict.
func (d *Detector) CheckAll(ctx context.Context, candidate *models.Section, excludeID int64, strategies ...Strategy) (Result, error) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	existing, err := d.load(ctx, candidate)
	if err != nil {
		return Result{}, err
	}

	entries := candidate.Entries()
	for _, strategy := range strategies {
		for _, c := range entries {
			for _, e := range existing[c.Day] {
				if skip(c, e, excludeID) {
					continue
				}
				if strategy.Collides(c, e) {
					return Result{
						Conflict: true,
						Kind:     strategy.Kind(),
						Reason:   strategy.Describe(c, e),
						Existing: e,
					}, nil
				}
			}
		}
	}
	return Result{}, nil
}

func (d *Detector) load(ctx context.Context, candidate *models.Section) (map[models.Weekday][]models.TimetableEntry, error) {
	byDay := make(map[models.Weekday][]models.TimetableEntry)
	for _, day := range candidate.Days() {
		entries, err := d.finder.ListSessionsByDay(ctx, candidate.Semester, candidate.AcademicYear, day)
		if err != nil {
			return nil, fmt.Errorf("loading %s sessions: %w", day, err)
		}
		byDay[day] = entries
	}
	return byDay, nil
}

// skip leaves out the excluded section and meetings of the candidate's own group
func skip(candidate, existing models.TimetableEntry, excludeID int64) bool {
	if excludeID != 0 && existing.SectionID == excludeID {
		return true
	}
	return candidate.MeetingGroupID != uuid.Nil && candidate.MeetingGroupID == existing.MeetingGroupID
}

// BatchConflict locates a conflict inside a batch
type BatchConflict struct {
	Index  int
	Result Result
}

// CheckBatch runs the default strategies for every candidate against the persisted
// sections and against the candidates before it, so the whole batch can be refused
// before anything is written.
func CheckBatch(ctx context.Context, finder SessionFinder, candidates []*models.Section) (*BatchConflict, error) {
	for i, candidate := range candidates {
		detector := NewDetector(pendingFinder{base: finder, pending: candidates[:i]})
		result, err := detector.CheckAll(ctx, candidate, 0)
		if err != nil {
			return nil, err
		}
		if result.Conflict {
			return &BatchConflict{Index: i, Result: result}, nil
		}
	}
	return nil, nil
}

// pendingFinder layers not-yet-persisted sections over a finder
type pendingFinder struct {
	base    SessionFinder
	pending []*models.Section
}

func (f pendingFinder) ListSessionsByDay(ctx context.Context, semester models.Term, year int, day models.Weekday) ([]models.TimetableEntry, error) {
	entries, err := f.base.ListSessionsByDay(ctx, semester, year, day)
	if err != nil {
		return nil, err
	}
	for _, section := range f.pending {
		if section.Semester != semester || section.AcademicYear != year {
			continue
		}
		entries = append(entries, section.EntriesOn(day)...)
	}
	return entries, nil
}
