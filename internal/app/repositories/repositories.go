package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/db"
)

// SectionRepository persists sections and reads them back as timetable entries
type SectionRepository interface {
	Insert(ctx context.Context, section *models.Section) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Section, error)
	ListBySemester(ctx context.Context, semester models.Term, year int) ([]*models.Section, error)
	ListSessionsByDay(ctx context.Context, semester models.Term, year int, day models.Weekday) ([]models.TimetableEntry, error)
	WeeklyTimetable(ctx context.Context, semester models.Term, year int) (models.WeeklyTimetable, error)
	HasCapacity(ctx context.Context, id int64) (bool, error)
	IncrementEnrollment(ctx context.Context, id int64) error
	LockTerm(ctx context.Context, semester models.Term, year int) error
}

// RequestFilter selects enrollment requests for listing
type RequestFilter struct {
	Status    *models.RequestStatus
	SectionID *int64
	Page      int
	Size      int
}

// EnrollmentRepository stores enrollment requests and the enrollments they produce
type EnrollmentRepository interface {
	CreateRequest(ctx context.Context, request *models.EnrollmentRequest) (int64, error)
	GetRequest(ctx context.Context, id int64) (*models.EnrollmentRequest, error)
	GetRequestForUpdate(ctx context.Context, id int64) (*models.EnrollmentRequest, error)
	UpdateReview(ctx context.Context, request *models.EnrollmentRequest) error
	ListRequests(ctx context.Context, filter RequestFilter) ([]*models.EnrollmentRequest, dto.PaginationInfo, error)
	PendingRequestExists(ctx context.Context, studentID, sectionID int64) (bool, error)

	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error)
	IsEnrolled(ctx context.Context, studentID, sectionID int64) (bool, error)
	EnrolledEntries(ctx context.Context, studentID int64, semester models.Term, year int) ([]models.TimetableEntry, error)
	CompletedCourses(ctx context.Context, studentID int64) ([]models.CompletedCourse, error)
}

// CourseRepository is the course catalog
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	PrerequisiteIDs(ctx context.Context, courseID int64) ([]int64, error)
	AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) error
}

// InstructorRepository is the instructor directory
type InstructorRepository interface {
	Create(ctx context.Context, instructor *models.Instructor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error)
}

// StudentRepository is the student directory
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// Store groups the repositories that must share a transaction
type Store interface {
	Sections() SectionRepository
	Enrollments() EnrollmentRepository
	Courses() CourseRepository
	Instructors() InstructorRepository
	Students() StudentRepository
	// WithinTx runs fn with a Store bound to one transaction. The transaction commits
	// when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// PostgresStore implements Store on a pool or on an open transaction
type PostgresStore struct {
	db       db.DBTX
	beginner db.TxBeginner
}

// NewPostgresStore creates a store on the pool
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool, beginner: pool}
}

func (s *PostgresStore) Sections() SectionRepository       { return NewSectionRepository(s.db) }
func (s *PostgresStore) Enrollments() EnrollmentRepository { return NewEnrollmentRepository(s.db) }
func (s *PostgresStore) Courses() CourseRepository         { return NewCourseRepository(s.db) }
func (s *PostgresStore) Instructors() InstructorRepository { return NewInstructorRepository(s.db) }
func (s *PostgresStore) Students() StudentRepository       { return NewStudentRepository(s.db) }

// WithinTx implements Store. Nested calls open a savepoint.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return db.WithTransaction(ctx, s.beginner, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{db: tx, beginner: tx})
	})
}

// Repositories holds the repositories used outside of transactions
type Repositories struct {
	Store                  *PostgresStore
	NotificationRepository *NotificationRepository
	AuditLogRepository     *AuditLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Store:                  NewPostgresStore(pool),
		NotificationRepository: NewNotificationRepository(pool),
		AuditLogRepository:     NewAuditLogRepository(pool),
	}
}
