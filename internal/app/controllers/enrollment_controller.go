package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/helpers"
)

// EnrollmentWorkflow is the part of services.EnrollmentService the controller uses
type EnrollmentWorkflow interface {
	StudentForUser(ctx context.Context, userID int64) (*models.Student, error)
	CreateRequest(ctx context.Context, actorID, studentID, sectionID int64) (*models.EnrollmentRequest, error)
	ApproveRequest(ctx context.Context, requestID, reviewerID int64) (*models.EnrollmentRequest, error)
	RejectRequest(ctx context.Context, requestID, reviewerID int64, reason string) (*models.EnrollmentRequest, error)
	ApproveAll(ctx context.Context, requestIDs []int64, reviewerID int64) services.BulkApprovalResult
	ListRequests(ctx context.Context, filter repositories.RequestFilter) ([]*models.EnrollmentRequest, dto.PaginationInfo, error)
}

// EligibilityChecker answers prerequisite questions
type EligibilityChecker interface {
	MissingPrerequisites(ctx context.Context, studentID, courseID int64) ([]int64, error)
}

// EnrollmentController handles enrollment request endpoints
type EnrollmentController struct {
	workflow      EnrollmentWorkflow
	prerequisites EligibilityChecker
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(workflow EnrollmentWorkflow, prerequisites EligibilityChecker) *EnrollmentController {
	return &EnrollmentController{
		workflow:      workflow,
		prerequisites: prerequisites,
	}
}

// CreateRequest files an enrollment request for the authenticated student
// @Summary Request a seat in a section
// @Description Refused when the section is full, overlaps the student's timetable, a request is already pending, or prerequisites are missing
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequestRequest true "Section to join"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentRequestResult} "Request filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Section or student not found"
// @Failure 409 {object} dto.ErrorResponse "Section full, schedule conflict or duplicate request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment-requests [post]
func (c *EnrollmentController) CreateRequest(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.CreateEnrollmentRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.workflow.StudentForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	request, err := c.workflow.CreateRequest(ctx.Request.Context(), userID, student.ID, req.SectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.EnrollmentRequestResult{Success: true, ID: &request.ID}, "Enrollment request created"))
}

// ListRequests pages through enrollment requests
// @Summary List enrollment requests
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param sectionId query int false "Filter by section"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.EnrollmentRequest}} "Requests retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment-requests [get]
func (c *EnrollmentController) ListRequests(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := repositories.RequestFilter{Page: page, Size: size}

	if status := ctx.Query("status"); status != "" {
		s := models.RequestStatus(status)
		filter.Status = &s
	}
	if sectionID := ctx.Query("sectionId"); sectionID != "" {
		id, err := strconv.ParseInt(sectionID, 10, 64)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("sectionId must be a number"))
			return
		}
		filter.SectionID = &id
	}

	requests, pagination, err := c.workflow.ListRequests(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{Items: requests, Pagination: pagination}, ""))
}

// ApproveRequest approves a pending request
// @Summary Approve an enrollment request
// @Description Creates the enrollment, takes a seat and stamps the review in one transaction
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResult} "Request approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already reviewed or section full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment-requests/{id}/approve [post]
func (c *EnrollmentController) ApproveRequest(ctx *gin.Context) {
	reviewerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	request, err := c.workflow.ApproveRequest(ctx.Request.Context(), id, reviewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ReviewResult{Success: true, RequestID: request.ID, Status: request.Status}, "Enrollment request approved"))
}

// RejectRequest rejects a pending request
// @Summary Reject an enrollment request
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.RejectEnrollmentRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResult} "Request rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment-requests/{id}/reject [post]
func (c *EnrollmentController) RejectRequest(ctx *gin.Context) {
	reviewerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	request, err := c.workflow.RejectRequest(ctx.Request.Context(), id, reviewerID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ReviewResult{Success: true, RequestID: request.ID, Status: request.Status}, "Enrollment request rejected"))
}

// ApproveAll approves several requests, each on its own
// @Summary Approve many enrollment requests
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApproveAllRequest true "Request IDs"
// @Success 200 {object} dto.APIResponse{data=services.BulkApprovalResult} "Approval tally"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollment-requests/approve-all [post]
func (c *EnrollmentController) ApproveAll(ctx *gin.Context) {
	reviewerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.ApproveAllRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result := c.workflow.ApproveAll(ctx.Request.Context(), req.RequestIDs, reviewerID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// GetEligibility reports whether a student passed the prerequisites of a course
// @Summary Check prerequisite eligibility
// @Description Students may only check themselves
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.EligibilityResponse} "Eligibility"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - another student's record"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{studentId}/eligibility/{courseId} [get]
func (c *EnrollmentController) GetEligibility(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}

	if middleware.CurrentRole(ctx) == models.RoleStudent {
		userID, _ := middleware.CurrentUserID(ctx)
		student, err := c.workflow.StudentForUser(ctx.Request.Context(), userID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		if student.ID != studentID {
			middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("students may only check their own eligibility"))
			return
		}
	}

	missing, err := c.prerequisites.MissingPrerequisites(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EligibilityResponse{
		StudentID:              studentID,
		CourseID:               courseID,
		Eligible:               len(missing) == 0,
		MissingPrerequisiteIDs: missing,
	}, ""))
}
