package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
	"github.com/yigit/unischedule/internal/pkg/helpers"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

const (
	constraintOnePendingRequest = "enrollment_requests_one_pending"
	constraintStudentSection    = "enrollments_student_section_key"
)

// PostgresEnrollmentRepository handles enrollment requests and enrollments
type PostgresEnrollmentRepository struct {
	db db.DBTX
}

// NewEnrollmentRepository creates an enrollment repository on a pool or a transaction
func NewEnrollmentRepository(conn db.DBTX) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: conn}
}

func selectRequests() squirrel.SelectBuilder {
	return psql.Select("id", "student_id", "section_id", "status", "requested_at",
		"reviewed_at", "reviewed_by", "rejection_reason").
		From("enrollment_requests")
}

func scanRequest(row pgx.Row) (*models.EnrollmentRequest, error) {
	var req models.EnrollmentRequest
	err := row.Scan(&req.ID, &req.StudentID, &req.SectionID, &req.Status, &req.RequestedAt,
		&req.ReviewedAt, &req.ReviewedBy, &req.RejectionReason)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest inserts a pending request
func (r *PostgresEnrollmentRepository) CreateRequest(ctx context.Context, request *models.EnrollmentRequest) (int64, error) {
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now().UTC()
	}

	sql, args, err := psql.Insert("enrollment_requests").
		Columns("student_id", "section_id", "status", "requested_at").
		Values(request.StudentID, request.SectionID, request.Status, request.RequestedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building create request SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&request.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintOnePendingRequest) {
			return 0, apperrors.ErrPendingRequestExists
		}
		logger.Error().Err(err).Int64("studentID", request.StudentID).Msg("Error creating enrollment request")
		return 0, apperrors.NewPersistenceError("create enrollment request", err)
	}
	return request.ID, nil
}

func (r *PostgresEnrollmentRepository) getRequest(ctx context.Context, id int64, forUpdate bool) (*models.EnrollmentRequest, error) {
	builder := selectRequests().Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get request SQL: %w", err)
	}

	req, err := scanRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.NewPersistenceError("get enrollment request", err)
	}
	return req, nil
}

// GetRequest loads a request
func (r *PostgresEnrollmentRepository) GetRequest(ctx context.Context, id int64) (*models.EnrollmentRequest, error) {
	return r.getRequest(ctx, id, false)
}

// GetRequestForUpdate loads a request and locks its row until the transaction ends
func (r *PostgresEnrollmentRepository) GetRequestForUpdate(ctx context.Context, id int64) (*models.EnrollmentRequest, error) {
	return r.getRequest(ctx, id, true)
}

// UpdateReview stores the review outcome. Only pending rows are updated.
func (r *PostgresEnrollmentRepository) UpdateReview(ctx context.Context, request *models.EnrollmentRequest) error {
	sql, args, err := psql.Update("enrollment_requests").
		Set("status", request.Status).
		Set("reviewed_at", request.ReviewedAt).
		Set("reviewed_by", request.ReviewedBy).
		Set("rejection_reason", request.RejectionReason).
		Where(squirrel.Eq{"id": request.ID, "status": models.RequestPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update review SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("update enrollment request", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRequest(ctx, request.ID); err != nil {
			return err
		}
		return apperrors.ErrRequestNotPending
	}
	return nil
}

// ListRequests returns a page of requests, oldest first
func (r *PostgresEnrollmentRepository) ListRequests(ctx context.Context, filter RequestFilter) ([]*models.EnrollmentRequest, dto.PaginationInfo, error) {
	where := squirrel.Eq{}
	if filter.Status != nil {
		where["status"] = *filter.Status
	}
	if filter.SectionID != nil {
		where["section_id"] = *filter.SectionID
	}

	countSql, countArgs, err := psql.Select("count(*)").From("enrollment_requests").Where(where).ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("building count requests SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, apperrors.NewPersistenceError("count enrollment requests", err)
	}

	pagination := helpers.NewPaginationInfo(total, filter.Page, filter.Size)
	if total == 0 {
		return []*models.EnrollmentRequest{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	sql, args, err := selectRequests().Where(where).
		OrderBy("requested_at", "id").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("building list requests SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, apperrors.NewPersistenceError("list enrollment requests", err)
	}
	defer rows.Close()

	requests := []*models.EnrollmentRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, apperrors.NewPersistenceError("scan enrollment request", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, apperrors.NewPersistenceError("list enrollment requests", err)
	}
	return requests, pagination, nil
}

// PendingRequestExists reports whether the student already waits on the section
func (r *PostgresEnrollmentRepository) PendingRequestExists(ctx context.Context, studentID, sectionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollment_requests WHERE student_id = $1 AND section_id = $2 AND status = $3)`,
		studentID, sectionID, models.RequestPending).Scan(&exists)
	if err != nil {
		return false, apperrors.NewPersistenceError("check pending request", err)
	}
	return exists, nil
}

// CreateEnrollment inserts an enrollment
func (r *PostgresEnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentEnrolled
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}

	sql, args, err := psql.Insert("enrollments").
		Columns("student_id", "section_id", "status", "final_grade", "enrolled_at").
		Values(enrollment.StudentID, enrollment.SectionID, enrollment.Status, enrollment.FinalGrade, enrollment.EnrolledAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building create enrollment SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintStudentSection) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, apperrors.NewPersistenceError("create enrollment", err)
	}
	return enrollment.ID, nil
}

// IsEnrolled reports whether the student holds an active seat in the section
func (r *PostgresEnrollmentRepository) IsEnrolled(ctx context.Context, studentID, sectionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND section_id = $2 AND status = $3)`,
		studentID, sectionID, models.EnrollmentEnrolled).Scan(&exists)
	if err != nil {
		return false, apperrors.NewPersistenceError("check enrollment", err)
	}
	return exists, nil
}

// EnrolledEntries returns the meetings of every section the student is currently
// enrolled in for the term.
func (r *PostgresEnrollmentRepository) EnrolledEntries(ctx context.Context, studentID int64, semester models.Term, year int) ([]models.TimetableEntry, error) {
	sql, args, err := selectEntries().
		Join("enrollments e ON e.section_id = ss.section_id").
		Where(squirrel.Eq{
			"e.student_id":     studentID,
			"e.status":         models.EnrollmentEnrolled,
			"ss.semester":      semester,
			"ss.academic_year": year,
		}).
		OrderBy("ss.day", "ss.start_minute").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building enrolled entries SQL: %w", err)
	}
	return queryEntries(ctx, r.db, sql, args...)
}

// CompletedCourses returns every completion record of the student, duplicates included
func (r *PostgresEnrollmentRepository) CompletedCourses(ctx context.Context, studentID int64) ([]models.CompletedCourse, error) {
	sql, args, err := psql.Select("s.course_id", "e.final_grade").
		From("enrollments e").
		Join("sections s ON s.id = e.section_id").
		Where(squirrel.Eq{"e.student_id": studentID, "e.status": models.EnrollmentCompleted}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building completed courses SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list completed courses", err)
	}
	defer rows.Close()

	var completed []models.CompletedCourse
	for rows.Next() {
		var c models.CompletedCourse
		if err := rows.Scan(&c.CourseID, &c.FinalGrade); err != nil {
			return nil, apperrors.NewPersistenceError("scan completed course", err)
		}
		completed = append(completed, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list completed courses", err)
	}
	return completed, nil
}
