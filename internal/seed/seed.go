package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/unischedule/internal/app/models"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type demoCourse struct {
	course  appModels.Course
	prereqs []string
}

var demoCourses = []demoCourse{
	{course: appModels.Course{Code: "CENG101", Name: "Introduction to Programming", CreditHours: 4, Department: "Computer Engineering"}},
	{course: appModels.Course{Code: "MATH101", Name: "Calculus I", CreditHours: 4, Department: "Mathematics"}},
	{course: appModels.Course{Code: "CENG201", Name: "Data Structures", CreditHours: 4, Department: "Computer Engineering"}, prereqs: []string{"CENG101"}},
	{course: appModels.Course{Code: "CENG301", Name: "Algorithms", CreditHours: 3, Department: "Computer Engineering"}, prereqs: []string{"CENG201", "MATH101"}},
}

type demoUser struct {
	email, firstName, lastName string
	role                       appModels.RoleType
}

var (
	demoAdmin      = demoUser{"admin@unischedule.edu", "System", "Admin", appModels.RoleAdmin}
	demoInstructor = demoUser{"a.turing@unischedule.edu", "Alan", "Turing", appModels.RoleInstructor}
	demoStudent    = demoUser{"student@unischedule.edu", "Ada", "Lovelace", appModels.RoleStudent}
)

// CreateDemoData creates a small catalog (courses with prerequisites) plus an admin, an
// instructor and a student. Existing rows are reused, so it is safe to run on every start.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	store := appRepos.NewPostgresStore(dbPool)
	lgr.Info().Msg("Checking/Creating demo data (courses, users)...")

	var finalErr error

	ids := make(map[string]int64, len(demoCourses))
	for _, dc := range demoCourses {
		course := dc.course
		id, err := ensureCourse(ctx, store.Courses(), &course)
		if err != nil {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating demo course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		ids[course.Code] = id
	}
	for _, dc := range demoCourses {
		for _, code := range dc.prereqs {
			courseID, prereqID := ids[dc.course.Code], ids[code]
			if courseID == 0 || prereqID == 0 {
				continue
			}
			if err := store.Courses().AddPrerequisite(ctx, courseID, prereqID); err != nil {
				lgr.Error().Err(err).Str("course", dc.course.Code).Str("prerequisite", code).Msg("Error linking prerequisite")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if _, err := ensureUser(ctx, dbPool, demoAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo admin")
		finalErr = errors.Join(finalErr, err)
	}

	if userID, err := ensureUser(ctx, dbPool, demoInstructor); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo instructor user")
		finalErr = errors.Join(finalErr, err)
	} else if _, err := store.Instructors().GetByUserID(ctx, userID); errors.Is(err, apperrors.ErrInstructorNotFound) {
		_, err = store.Instructors().Create(ctx, &appModels.Instructor{UserID: userID, Department: "Computer Engineering", Title: "Professor"})
		finalErr = errors.Join(finalErr, err)
	} else if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if userID, err := ensureUser(ctx, dbPool, demoStudent); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo student user")
		finalErr = errors.Join(finalErr, err)
	} else if _, err := store.Students().GetByUserID(ctx, userID); errors.Is(err, apperrors.ErrStudentNotFound) {
		_, err = store.Students().Create(ctx, &appModels.Student{UserID: userID, Identifier: "20250001"})
		finalErr = errors.Join(finalErr, err)
	} else if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Int("courses", len(ids)).Msg("Demo data ready")
	}
	return finalErr
}

func ensureCourse(ctx context.Context, courses appRepos.CourseRepository, course *appModels.Course) (int64, error) {
	existing, err := courses.GetByCode(ctx, course.Code)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		return 0, err
	}
	return courses.Create(ctx, course)
}

// ensureUser upserts by email and returns the user id
func ensureUser(ctx context.Context, conn db.DBTX, u demoUser) (int64, error) {
	sql, args, err := psql.Insert("users").
		Columns("email", "first_name", "last_name", "role_type").
		Values(u.email, u.firstName, u.lastName, string(u.role)).
		Suffix("ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building user upsert SQL: %w", err)
	}

	var id int64
	if err := conn.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, apperrors.NewPersistenceError("upsert demo user", err)
	}
	return id, nil
}
