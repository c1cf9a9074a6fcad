package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/conflicts"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// BulkApprovalFailure is one request ApproveAll could not approve
type BulkApprovalFailure struct {
	RequestID int64  `json:"requestId"`
	Reason    string `json:"reason"`
}

// BulkApprovalResult tallies an ApproveAll run
type BulkApprovalResult struct {
	Approved int                   `json:"approved"`
	Failed   int                   `json:"failed"`
	Failures []BulkApprovalFailure `json:"failures,omitempty"`
}

// EnrollmentService runs the request, review and enrollment workflow
type EnrollmentService struct {
	store                repositories.Store
	prerequisites        *PrerequisiteService
	effects              sideEffects
	enforcePrerequisites bool
	logger               zerolog.Logger
	now                  func() time.Time
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	store repositories.Store,
	prerequisites *PrerequisiteService,
	notifier Notifier,
	audit AuditRecorder,
	cfg config.SchedulingConfig,
	logger zerolog.Logger,
) *EnrollmentService {
	logger = logger.With().Str("service", "enrollment").Logger()
	return &EnrollmentService{
		store:                store,
		prerequisites:        prerequisites,
		effects:              sideEffects{notifier: notifier, audit: audit, logger: logger},
		enforcePrerequisites: cfg.EnforcePrerequisites,
		logger:               logger,
		now:                  time.Now,
	}
}

// StudentForUser resolves the student profile of an authenticated user
func (s *EnrollmentService) StudentForUser(ctx context.Context, userID int64) (*models.Student, error) {
	return s.store.Students().GetByUserID(ctx, userID)
}

// CreateRequest files a pending request for studentID to join sectionID. It refuses
// when a request is already pending, the student already holds a seat, the section is
// full, the section overlaps the student's enrolled timetable, or a prerequisite is
// missing.
func (s *EnrollmentService) CreateRequest(ctx context.Context, actorID, studentID, sectionID int64) (*models.EnrollmentRequest, error) {
	section, err := s.store.Sections().FindByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Students().GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	enrollments := s.store.Enrollments()
	pending, err := enrollments.PendingRequestExists(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ErrPendingRequestExists
	}
	enrolled, err := enrollments.IsEnrolled(ctx, studentID, sectionID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	hasCapacity, err := s.store.Sections().HasCapacity(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !hasCapacity {
		return nil, apperrors.ErrSectionFull
	}

	if err := s.checkStudentSchedule(ctx, studentID, section); err != nil {
		return nil, err
	}

	if s.enforcePrerequisites && s.prerequisites != nil {
		for _, courseID := range section.CourseIDs {
			missing, err := s.prerequisites.MissingPrerequisites(ctx, studentID, courseID)
			if err != nil {
				return nil, err
			}
			if len(missing) > 0 {
				return nil, apperrors.NewCustomError(apperrors.ErrPrerequisitesNotMet,
					fmt.Sprintf("missing prerequisites for course %d", courseID)).
					WithDetails(map[string]interface{}{"courseId": courseID, "missingPrerequisiteIds": missing})
			}
		}
	}

	request := &models.EnrollmentRequest{
		StudentID:   studentID,
		SectionID:   sectionID,
		Status:      models.RequestPending,
		RequestedAt: s.now(),
	}
	id, err := enrollments.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = id

	s.logger.Info().Int64("requestID", id).Int64("studentID", studentID).Int64("sectionID", sectionID).Msg("Enrollment request created")
	s.effects.record(ctx, actorID, models.AuditActionRequestCreated, models.AuditEntityEnrollmentRequest, id, request)
	return request, nil
}

// checkStudentSchedule rejects a section whose meetings overlap a section the student
// is enrolled in for the same term
func (s *EnrollmentService) checkStudentSchedule(ctx context.Context, studentID int64, section *models.Section) error {
	enrolled, err := s.store.Enrollments().EnrolledEntries(ctx, studentID, section.Semester, section.AcademicYear)
	if err != nil {
		return err
	}
	if len(enrolled) == 0 {
		return nil
	}

	for _, candidate := range section.Entries() {
		for _, existing := range enrolled {
			if existing.SectionID == section.ID || existing.Day != candidate.Day {
				continue
			}
			if conflicts.Overlaps(candidate.Start, candidate.End, existing.Start, existing.End) {
				return apperrors.NewCustomError(apperrors.ErrScheduleConflict,
					fmt.Sprintf("overlaps %s section %s on %s", existing.CourseLabel(), existing.SectionNumber, existing.Slot())).
					WithDetails(map[string]interface{}{"sectionId": existing.SectionID})
			}
		}
	}
	return nil
}

// ApproveRequest turns a pending request into an enrollment. The enrollment row, the
// seat count and the review stamp change together or not at all.
func (s *EnrollmentService) ApproveRequest(ctx context.Context, requestID, reviewerID int64) (*models.EnrollmentRequest, error) {
	var approved *models.EnrollmentRequest
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		request, err := lockPending(ctx, tx, requestID)
		if err != nil {
			return err
		}

		now := s.now()
		if _, err := tx.Enrollments().CreateEnrollment(ctx, &models.Enrollment{
			StudentID:  request.StudentID,
			SectionID:  request.SectionID,
			Status:     models.EnrollmentEnrolled,
			EnrolledAt: now,
		}); err != nil {
			return err
		}
		if err := tx.Sections().IncrementEnrollment(ctx, request.SectionID); err != nil {
			return err
		}

		request.Status = models.RequestApproved
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewerID
		if err := tx.Enrollments().UpdateReview(ctx, request); err != nil {
			return err
		}
		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", requestID).Int64("reviewerID", reviewerID).Msg("Enrollment request approved")
	s.afterReview(ctx, approved, reviewerID, models.AuditActionRequestApproved,
		"Enrollment approved", fmt.Sprintf("Your enrollment request for section %d was approved.", approved.SectionID))
	return approved, nil
}

// RejectRequest closes a pending request with the reviewer's reason
func (s *EnrollmentService) RejectRequest(ctx context.Context, requestID, reviewerID int64, reason string) (*models.EnrollmentRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required")
	}

	var rejected *models.EnrollmentRequest
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		request, err := lockPending(ctx, tx, requestID)
		if err != nil {
			return err
		}

		now := s.now()
		request.Status = models.RequestRejected
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewerID
		request.RejectionReason = &reason
		if err := tx.Enrollments().UpdateReview(ctx, request); err != nil {
			return err
		}
		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", requestID).Int64("reviewerID", reviewerID).Msg("Enrollment request rejected")
	s.afterReview(ctx, rejected, reviewerID, models.AuditActionRequestRejected,
		"Enrollment rejected", fmt.Sprintf("Your enrollment request for section %d was rejected: %s", rejected.SectionID, reason))
	return rejected, nil
}

// ApproveAll approves each request on its own; one failure does not stop the rest
func (s *EnrollmentService) ApproveAll(ctx context.Context, requestIDs []int64, reviewerID int64) BulkApprovalResult {
	var result BulkApprovalResult
	for _, id := range requestIDs {
		if _, err := s.ApproveRequest(ctx, id, reviewerID); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BulkApprovalFailure{RequestID: id, Reason: err.Error()})
			continue
		}
		result.Approved++
	}
	s.logger.Info().Int("approved", result.Approved).Int("failed", result.Failed).Msg("Bulk approval finished")
	return result
}

// ListRequests pages through requests, optionally filtered by status and section
func (s *EnrollmentService) ListRequests(ctx context.Context, filter repositories.RequestFilter) ([]*models.EnrollmentRequest, dto.PaginationInfo, error) {
	if filter.Status != nil {
		switch *filter.Status {
		case models.RequestPending, models.RequestApproved, models.RequestRejected:
		default:
			return nil, dto.PaginationInfo{}, apperrors.NewValidationError(fmt.Sprintf("unknown request status %q", *filter.Status))
		}
	}
	return s.store.Enrollments().ListRequests(ctx, filter)
}

// lockPending reads the request under a row lock and requires it to be pending
func lockPending(ctx context.Context, tx repositories.Store, requestID int64) (*models.EnrollmentRequest, error) {
	request, err := tx.Enrollments().GetRequestForUpdate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, apperrors.NewCustomError(apperrors.ErrRequestNotPending,
			fmt.Sprintf("request %d is %s", requestID, request.Status))
	}
	return request, nil
}

// afterReview notifies the student and records the audit entry once the review committed
func (s *EnrollmentService) afterReview(ctx context.Context, request *models.EnrollmentRequest, reviewerID int64, action, title, body string) {
	s.effects.record(ctx, reviewerID, action, models.AuditEntityEnrollmentRequest, request.ID, request)

	student, err := s.store.Students().GetByID(ctx, request.StudentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			s.logger.Warn().Err(err).Int64("studentID", request.StudentID).Msg("Could not resolve student for notification")
		}
		return
	}
	s.effects.notify(ctx, title, body, []int64{student.UserID}, models.NotificationCategoryEnrollment)
}
