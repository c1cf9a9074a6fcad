package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/builder"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

type catalog struct {
	store    *memStore
	cs101    int64
	ee101    int64
	turing   int64
	hopper   int64
	audit    *fakeAudit
	sections *SectionService
}

func newCatalog() *catalog {
	store := newMemStore()
	c := &catalog{store: store, audit: &fakeAudit{}}
	c.cs101 = store.addCourse("CS101")
	c.ee101 = store.addCourse("EE101")
	c.turing = store.addInstructor(900)
	c.hopper = store.addInstructor(901)
	c.sections = NewSectionService(store, c.audit, config.SchedulingConfig{MaxBatchSize: 5}, zerolog.Nop())
	return c
}

func (c *catalog) section(courseID, instructorID int64, number, room string, day models.Weekday, start, end models.ClockTime) *builder.SectionBuilder {
	return builder.NewSectionBuilder().
		WithCourse(courseID).
		WithInstructor(instructorID).
		WithSectionNumber(number).
		WithSemester(models.TermFall, 2025).
		WithRoom(room).
		WithCapacity(30).
		AddTimeSlot(day, start, end)
}

func TestCreateSectionPersists(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	section, err := c.sections.CreateSection(ctx, 1, c.section(c.cs101, c.turing, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 30)))
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	if section.ID == 0 {
		t.Fatal("expected the section to get an id")
	}
	if section.CreatedBy != 1 {
		t.Errorf("CreatedBy = %d, want 1", section.CreatedBy)
	}
	if len(c.store.data.locks) != 1 || c.store.data.locks[0] != string(models.TermFall) {
		t.Errorf("expected one term lock, got %v", c.store.data.locks)
	}
	if len(c.audit.actions) != 1 || c.audit.actions[0] != models.AuditActionSectionCreated {
		t.Errorf("expected a section audit record, got %v", c.audit.actions)
	}

	stored, err := c.sections.GetSection(ctx, section.ID)
	if err != nil {
		t.Fatalf("GetSection: %v", err)
	}
	if stored.CourseCodes[c.cs101] != "CS101" {
		t.Errorf("course code not resolved: %v", stored.CourseCodes)
	}
}

func TestCreateSectionRoomConflict(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	if _, err := c.sections.CreateSection(ctx, 1, c.section(c.cs101, c.turing, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 30))); err != nil {
		t.Fatalf("first section: %v", err)
	}

	_, err := c.sections.CreateSection(ctx, 1, c.section(c.ee101, c.hopper, "001", "R101", models.Monday, models.Clock(10, 0), models.Clock(11, 0)))
	conflict, ok := apperrors.AsConflict(err)
	if !ok {
		t.Fatalf("expected a conflict, got %v", err)
	}
	if conflict.Kind != apperrors.ConflictRoom {
		t.Errorf("Kind = %s, want ROOM", conflict.Kind)
	}
	if len(c.store.data.sections) != 1 {
		t.Errorf("conflicting section must not be stored, have %d rows", len(c.store.data.sections))
	}

	if _, err := c.sections.CreateSection(ctx, 1, c.section(c.ee101, c.hopper, "001", "R101", models.Monday, models.Clock(10, 30), models.Clock(11, 30))); err != nil {
		t.Errorf("back-to-back booking should be accepted: %v", err)
	}
}

func TestCreateSectionInstructorConflict(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	if _, err := c.sections.CreateSection(ctx, 1, c.section(c.cs101, c.turing, "001", "R101", models.Tuesday, models.Clock(13, 0), models.Clock(14, 0))); err != nil {
		t.Fatalf("first section: %v", err)
	}
	_, err := c.sections.CreateSection(ctx, 1, c.section(c.ee101, c.turing, "002", "R202", models.Tuesday, models.Clock(13, 30), models.Clock(15, 0)))
	conflict, ok := apperrors.AsConflict(err)
	if !ok || conflict.Kind != apperrors.ConflictInstructor {
		t.Fatalf("expected an instructor conflict, got %v", err)
	}
}

func TestCreateSectionUnknownReferences(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	_, err := c.sections.CreateSection(ctx, 1, c.section(9999, c.turing, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 0)))
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}

	_, err = c.sections.CreateSection(ctx, 1, c.section(c.cs101, 9999, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 0)))
	if !errors.Is(err, apperrors.ErrInstructorNotFound) {
		t.Errorf("expected ErrInstructorNotFound, got %v", err)
	}
	if len(c.store.data.sections) != 0 {
		t.Errorf("nothing should be stored, have %d rows", len(c.store.data.sections))
	}
}

func TestCreateSectionValidationFailsBeforeStorage(t *testing.T) {
	c := newCatalog()

	_, err := c.sections.CreateSection(context.Background(), 1, c.section(c.cs101, c.turing, "001", "R101", models.Monday, models.Clock(11, 0), models.Clock(10, 0)))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if c.store.txs != 0 {
		t.Errorf("validation failures should not open a transaction")
	}
}

func TestCreateSectionsIsAtomic(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	batch := []*builder.SectionBuilder{
		c.section(c.cs101, c.turing, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 0)),
		c.section(c.ee101, c.hopper, "001", "R102", models.Monday, models.Clock(9, 0), models.Clock(10, 0)),
		c.section(c.ee101, c.turing, "002", "R103", models.Monday, models.Clock(9, 30), models.Clock(10, 30)),
	}
	_, err := c.sections.CreateSections(ctx, 1, batch)

	var batchErr *BatchConflictError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected a batch conflict, got %v", err)
	}
	if batchErr.Index != 2 || batchErr.Conflict.Kind != apperrors.ConflictInstructor {
		t.Errorf("unexpected conflict %+v", batchErr)
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Error("batch conflicts should unwrap to ErrConflict")
	}
	if len(c.store.data.sections) != 0 {
		t.Errorf("a conflicting batch must store nothing, have %d rows", len(c.store.data.sections))
	}

	created, err := c.sections.CreateSections(ctx, 1, batch[:2])
	if err != nil {
		t.Fatalf("clean batch: %v", err)
	}
	if len(created) != 2 || created[0].ID == 0 || created[1].ID == 0 {
		t.Errorf("expected two stored sections, got %+v", created)
	}
	if len(c.audit.actions) != 2 {
		t.Errorf("expected one audit record per section, got %d", len(c.audit.actions))
	}
}

func TestCreateSectionsLimits(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	if _, err := c.sections.CreateSections(ctx, 1, nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("empty batch: expected validation error, got %v", err)
	}

	var batch []*builder.SectionBuilder
	for i := 0; i < 6; i++ {
		batch = append(batch, c.section(c.cs101, c.turing, "001", "R101", models.Friday, models.Clock(8+i, 0), models.Clock(9+i, 0)))
	}
	if _, err := c.sections.CreateSections(ctx, 1, batch); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("oversized batch: expected validation error, got %v", err)
	}
}

func TestWeeklyTimetableForGroupedSection(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	b := c.section(c.cs101, c.turing, "001", "R101", models.Wednesday, models.Clock(9, 0), models.Clock(10, 0)).
		WithAdditionalCourses(c.ee101)
	if _, err := c.sections.CreateSection(ctx, 1, b); err != nil {
		t.Fatalf("CreateSection: %v", err)
	}

	timetable, err := c.sections.GetWeeklyTimetable(ctx, models.TermFall, 2025)
	if err != nil {
		t.Fatalf("GetWeeklyTimetable: %v", err)
	}
	entries := timetable[models.Wednesday]
	if len(entries) != 2 {
		t.Fatalf("expected one entry per course, got %d", len(entries))
	}
	if entries[0].MeetingGroupID != entries[1].MeetingGroupID {
		t.Error("grouped courses should share a meeting group")
	}

	if _, err := c.sections.GetWeeklyTimetable(ctx, models.Term("WINTER"), 2025); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("unknown semester: expected validation error, got %v", err)
	}
}
