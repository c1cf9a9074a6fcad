package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
)

// PostgresCourseRepository handles database operations for courses
type PostgresCourseRepository struct {
	db db.DBTX
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(conn db.DBTX) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: conn}
}

// Create inserts a course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := psql.Insert("courses").
		Columns("code", "name", "credit_hours", "department").
		Values(strings.ToUpper(strings.TrimSpace(course.Code)), course.Name, course.CreditHours, course.Department).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building create course SQL: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return 0, apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("course %s already exists", course.Code))
		}
		return 0, apperrors.NewPersistenceError("create course", err)
	}
	return course.ID, nil
}

func (r *PostgresCourseRepository) get(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := psql.Select("id", "code", "name", "credit_hours", "department").
		From("courses").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get course SQL: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Code, &course.Name, &course.CreditHours, &course.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, apperrors.NewPersistenceError("get course", err)
	}

	course.PrerequisiteIDs, err = r.PrerequisiteIDs(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetByID retrieves a course with its prerequisites
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.get(ctx, squirrel.Eq{"id": id})
}

// GetByCode retrieves a course by its catalog code
func (r *PostgresCourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.get(ctx, squirrel.Eq{"code": strings.ToUpper(strings.TrimSpace(code))})
}

// PrerequisiteIDs returns the distinct prerequisite course ids of a course
func (r *PostgresCourseRepository) PrerequisiteIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT prerequisite_id FROM course_prerequisites WHERE course_id = $1 ORDER BY prerequisite_id`, courseID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list prerequisites", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewPersistenceError("scan prerequisite", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list prerequisites", err)
	}
	return ids, nil
}

// AddPrerequisite records that prerequisiteID must be passed before courseID
func (r *PostgresCourseRepository) AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_prerequisites (course_id, prerequisite_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		courseID, prerequisiteID)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.NewPersistenceError("add prerequisite", err)
	}
	return nil
}

// PostgresInstructorRepository handles database operations for instructors
type PostgresInstructorRepository struct {
	db db.DBTX
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(conn db.DBTX) *PostgresInstructorRepository {
	return &PostgresInstructorRepository{db: conn}
}

// Create inserts an instructor
func (r *PostgresInstructorRepository) Create(ctx context.Context, instructor *models.Instructor) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO instructors (user_id, department, title) VALUES ($1, $2, $3) RETURNING id`,
		instructor.UserID, instructor.Department, instructor.Title).Scan(&instructor.ID)
	if err != nil {
		return 0, apperrors.NewPersistenceError("create instructor", err)
	}
	return instructor.ID, nil
}

func (r *PostgresInstructorRepository) get(ctx context.Context, column string, value int64) (*models.Instructor, error) {
	sql, args, err := psql.Select("id", "user_id", "department", "title").
		From("instructors").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get instructor SQL: %w", err)
	}

	var instructor models.Instructor
	err = r.db.QueryRow(ctx, sql, args...).Scan(&instructor.ID, &instructor.UserID, &instructor.Department, &instructor.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, apperrors.NewPersistenceError("get instructor", err)
	}
	return &instructor, nil
}

// GetByID retrieves an instructor
func (r *PostgresInstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	return r.get(ctx, "id", id)
}

// GetByUserID retrieves the instructor profile of a user
func (r *PostgresInstructorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error) {
	return r.get(ctx, "user_id", userID)
}

// PostgresStudentRepository handles database operations for students
type PostgresStudentRepository struct {
	db db.DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(conn db.DBTX) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: conn}
}

// Create inserts a student
func (r *PostgresStudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO students (user_id, identifier) VALUES ($1, $2) RETURNING id`,
		student.UserID, student.Identifier).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_identifier_key") {
			return 0, apperrors.NewCustomError(apperrors.ErrConflict, "student identifier already exists")
		}
		return 0, apperrors.NewPersistenceError("create student", err)
	}
	return student.ID, nil
}

func (r *PostgresStudentRepository) get(ctx context.Context, column string, value int64) (*models.Student, error) {
	sql, args, err := psql.Select("id", "user_id", "identifier").
		From("students").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get student SQL: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.UserID, &student.Identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.NewPersistenceError("get student", err)
	}
	return &student, nil
}

// GetByID retrieves a student
func (r *PostgresStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.get(ctx, "id", id)
}

// GetByUserID retrieves the student profile of a user
func (r *PostgresStudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.get(ctx, "user_id", userID)
}
