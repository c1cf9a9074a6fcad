package services

import (
	"context"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
)

// PrerequisiteService decides whether a student may take a course
type PrerequisiteService struct {
	store  repositories.Store
	grades models.GradePolicy
}

// NewPrerequisiteService creates a prerequisite checker using the given failing grades
func NewPrerequisiteService(store repositories.Store, failingGrades []string) *PrerequisiteService {
	return &PrerequisiteService{store: store, grades: models.NewGradePolicy(failingGrades)}
}

// IsEligible reports whether the student passed every prerequisite of the course
func (s *PrerequisiteService) IsEligible(ctx context.Context, studentID, courseID int64) (bool, error) {
	missing, err := s.MissingPrerequisites(ctx, studentID, courseID)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// MissingPrerequisites returns the prerequisite course ids the student has not passed
func (s *PrerequisiteService) MissingPrerequisites(ctx context.Context, studentID, courseID int64) ([]int64, error) {
	return s.missing(ctx, s.store, studentID, courseID)
}

func (s *PrerequisiteService) missing(ctx context.Context, store repositories.Store, studentID, courseID int64) ([]int64, error) {
	if _, err := store.Students().GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	course, err := store.Courses().GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(course.PrerequisiteIDs) == 0 {
		return nil, nil
	}

	completed, err := store.Enrollments().CompletedCourses(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return missingPrerequisites(course.PrerequisiteIDs, completed, s.grades), nil
}

// missingPrerequisites is a set-coverage test: repeated completions of one course count
// once, and only passing grades count at all.
func missingPrerequisites(required []int64, completed []models.CompletedCourse, grades models.GradePolicy) []int64 {
	passed := make(map[int64]bool, len(completed))
	for _, c := range completed {
		if grades.Passed(c.FinalGrade) {
			passed[c.CourseID] = true
		}
	}

	var missing []int64
	seen := make(map[int64]bool, len(required))
	for _, id := range required {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !passed[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
