package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/builder"
	"github.com/yigit/unischedule/internal/app/conflicts"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// BatchConflictError reports the batch entry that blocked a batch
type BatchConflictError struct {
	Index    int
	Conflict *apperrors.ConflictError
}

func (e *BatchConflictError) Error() string {
	return fmt.Sprintf("section %d of the batch: %v", e.Index+1, e.Conflict)
}

func (e *BatchConflictError) Unwrap() error {
	return e.Conflict
}

// SectionService creates sections and reads the timetable
type SectionService struct {
	store        repositories.Store
	effects      sideEffects
	maxBatchSize int
	logger       zerolog.Logger
}

// NewSectionService creates a new section service
func NewSectionService(store repositories.Store, audit AuditRecorder, cfg config.SchedulingConfig, logger zerolog.Logger) *SectionService {
	logger = logger.With().Str("service", "sections").Logger()
	return &SectionService{
		store:        store,
		effects:      sideEffects{audit: audit, logger: logger},
		maxBatchSize: cfg.MaxBatchSize,
		logger:       logger,
	}
}

// CreateSection builds the section and persists it unless it collides with a persisted
// one. Conflicts come back as *apperrors.ConflictError.
func (s *SectionService) CreateSection(ctx context.Context, actorID int64, b *builder.SectionBuilder) (*models.Section, error) {
	section, err := b.Build()
	if err != nil {
		return nil, err
	}
	section.CreatedBy = actorID

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Sections().LockTerm(ctx, section.Semester, section.AcademicYear); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, section); err != nil {
			return err
		}

		result, err := conflicts.NewDetector(tx.Sections()).CheckAll(ctx, section, 0)
		if err != nil {
			return err
		}
		if result.Conflict {
			return result.Err()
		}

		id, err := tx.Sections().Insert(ctx, section)
		if err != nil {
			return err
		}
		section.ID = id
		return nil
	})
	if err != nil {
		if conflict, ok := apperrors.AsConflict(err); ok {
			s.logger.Info().Str("kind", string(conflict.Kind)).Str("reason", conflict.Reason).
				Str("sectionNumber", section.SectionNumber).Msg("Section rejected")
		}
		return nil, err
	}

	s.logger.Info().Int64("sectionID", section.ID).Int64("actorID", actorID).
		Str("semester", string(section.Semester)).Int("year", section.AcademicYear).Msg("Section created")
	s.effects.record(ctx, actorID, models.AuditActionSectionCreated, models.AuditEntitySection, section.ID, section)
	return section, nil
}

// CreateSections creates a batch atomically. Every entry is checked against persisted
// sections and against the entries before it; any conflict leaves nothing written.
func (s *SectionService) CreateSections(ctx context.Context, actorID int64, builders []*builder.SectionBuilder) ([]*models.Section, error) {
	if len(builders) == 0 {
		return nil, apperrors.NewValidationError("batch is empty")
	}
	if s.maxBatchSize > 0 && len(builders) > s.maxBatchSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("batch holds %d sections, the limit is %d", len(builders), s.maxBatchSize))
	}

	sections := make([]*models.Section, 0, len(builders))
	for i, b := range builders {
		section, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("section %d of the batch: %w", i+1, err)
		}
		section.CreatedBy = actorID
		sections = append(sections, section)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		for _, term := range distinctTerms(sections) {
			if err := tx.Sections().LockTerm(ctx, term.semester, term.year); err != nil {
				return err
			}
		}
		for i, section := range sections {
			if err := s.checkReferences(ctx, tx, section); err != nil {
				return fmt.Errorf("section %d of the batch: %w", i+1, err)
			}
		}

		found, err := conflicts.CheckBatch(ctx, tx.Sections(), sections)
		if err != nil {
			return err
		}
		if found != nil {
			return &BatchConflictError{Index: found.Index, Conflict: apperrors.NewSchedulingConflict(found.Result.Kind, found.Result.Reason)}
		}

		for i, section := range sections {
			id, err := tx.Sections().Insert(ctx, section)
			if err != nil {
				var conflict *apperrors.ConflictError
				if errors.As(err, &conflict) {
					return &BatchConflictError{Index: i, Conflict: conflict}
				}
				return err
			}
			section.ID = id
		}
		return nil
	})
	if err != nil {
		for i := range sections {
			sections[i].ID = 0
		}
		return nil, err
	}

	s.logger.Info().Int("count", len(sections)).Int64("actorID", actorID).Msg("Section batch created")
	for _, section := range sections {
		s.effects.record(ctx, actorID, models.AuditActionSectionCreated, models.AuditEntitySection, section.ID, section)
	}
	return sections, nil
}

// checkReferences verifies the courses and the instructor exist and fills course codes
func (s *SectionService) checkReferences(ctx context.Context, tx repositories.Store, section *models.Section) error {
	section.CourseCodes = make(map[int64]string, len(section.CourseIDs))
	for _, id := range section.CourseIDs {
		course, err := tx.Courses().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return apperrors.NewCustomError(apperrors.ErrCourseNotFound, fmt.Sprintf("course %d not found", id))
			}
			return err
		}
		section.CourseCodes[id] = course.Code
	}
	if _, err := tx.Instructors().GetByID(ctx, section.InstructorID); err != nil {
		if errors.Is(err, apperrors.ErrInstructorNotFound) {
			return apperrors.NewCustomError(apperrors.ErrInstructorNotFound, fmt.Sprintf("instructor %d not found", section.InstructorID))
		}
		return err
	}
	return nil
}

type term struct {
	semester models.Term
	year     int
}

// distinctTerms returns the terms of sections in a fixed order so that concurrent
// batches take their locks in the same sequence
func distinctTerms(sections []*models.Section) []term {
	seen := make(map[term]bool)
	var terms []term
	for _, s := range sections {
		t := term{semester: s.Semester, year: s.AcademicYear}
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].year != terms[j].year {
			return terms[i].year < terms[j].year
		}
		return terms[i].semester < terms[j].semester
	})
	return terms
}

// GetSection returns one section with its sessions
func (s *SectionService) GetSection(ctx context.Context, id int64) (*models.Section, error) {
	return s.store.Sections().FindByID(ctx, id)
}

// ListBySemester returns the sections of a term
func (s *SectionService) ListBySemester(ctx context.Context, semester models.Term, year int) ([]*models.Section, error) {
	if !semester.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown semester %q", semester))
	}
	return s.store.Sections().ListBySemester(ctx, semester, year)
}

// GetWeeklyTimetable returns the term's meetings bucketed by day
func (s *SectionService) GetWeeklyTimetable(ctx context.Context, semester models.Term, year int) (models.WeeklyTimetable, error) {
	if !semester.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown semester %q", semester))
	}
	return s.store.Sections().WeeklyTimetable(ctx, semester, year)
}
