package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/builder"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// SectionScheduler is the part of services.SectionService the controller uses
type SectionScheduler interface {
	CreateSection(ctx context.Context, actorID int64, b *builder.SectionBuilder) (*models.Section, error)
	CreateSections(ctx context.Context, actorID int64, builders []*builder.SectionBuilder) ([]*models.Section, error)
	GetSection(ctx context.Context, id int64) (*models.Section, error)
	ListBySemester(ctx context.Context, semester models.Term, year int) ([]*models.Section, error)
	GetWeeklyTimetable(ctx context.Context, semester models.Term, year int) (models.WeeklyTimetable, error)
}

// SectionController handles section scheduling endpoints
type SectionController struct {
	sections        SectionScheduler
	defaultCapacity int
	requireRoom     bool
}

// NewSectionController creates a new SectionController
func NewSectionController(sections SectionScheduler, cfg config.SchedulingConfig) *SectionController {
	return &SectionController{
		sections:        sections,
		defaultCapacity: cfg.DefaultCapacity,
		requireRoom:     cfg.RequireRoom,
	}
}

// CreateSection schedules one section
// @Summary Schedule a section
// @Description Validates the section, checks room, instructor and duplicate conflicts, and stores it
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section to schedule"
// @Success 201 {object} dto.APIResponse{data=dto.CreateSectionResponse} "Section created"
// @Failure 400 {object} dto.ErrorResponse "Invalid section"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Failure 409 {object} dto.APIResponse{data=dto.CreateSectionResponse} "Scheduling conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.CreateSectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.sections.CreateSection(ctx.Request.Context(), actorID, c.builderFor(req))
	if err != nil {
		if conflict, ok := apperrors.AsConflict(err); ok {
			ctx.JSON(http.StatusConflict, conflictResponse(dto.CreateSectionResponse{
				Conflict: &dto.ConflictInfo{Kind: string(conflict.Kind), Reason: conflict.Reason},
			}, conflict))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreateSectionResponse{
		Created: true,
		ID:      &section.ID,
		Section: section,
	}, "Section created"))
}

// CreateSectionsBatch schedules several sections at once
// @Summary Schedule a batch of sections
// @Description Stores every section or none; the first conflict is reported with its position
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchCreateSectionsRequest true "Sections to schedule"
// @Success 201 {object} dto.APIResponse{data=dto.BatchCreateSectionsResponse} "Sections created"
// @Failure 400 {object} dto.ErrorResponse "Invalid batch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.APIResponse{data=dto.BatchCreateSectionsResponse} "Scheduling conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/batch [post]
func (c *SectionController) CreateSectionsBatch(ctx *gin.Context) {
	actorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.BatchCreateSectionsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	builders := make([]*builder.SectionBuilder, 0, len(req.Sections))
	for _, section := range req.Sections {
		builders = append(builders, c.builderFor(section))
	}

	sections, err := c.sections.CreateSections(ctx.Request.Context(), actorID, builders)
	if err != nil {
		var batchErr *services.BatchConflictError
		if errors.As(err, &batchErr) {
			index := batchErr.Index
			ctx.JSON(http.StatusConflict, conflictResponse(dto.BatchCreateSectionsResponse{
				Conflict: &dto.ConflictInfo{Kind: string(batchErr.Conflict.Kind), Reason: batchErr.Conflict.Reason, Index: &index},
			}, batchErr.Conflict))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ids := make([]int64, 0, len(sections))
	for _, section := range sections {
		ids = append(ids, section.ID)
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.BatchCreateSectionsResponse{Created: true, IDs: ids}, "Sections created"))
}

// GetSection retrieves a section by ID
// @Summary Get section by ID
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.APIResponse{data=models.Section} "Section retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid section ID"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	section, err := c.sections.GetSection(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(section, ""))
}

// ListSections lists the sections of a term
// @Summary List sections of a term
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param semester query string true "FALL, SPRING or SUMMER"
// @Param year query int true "Academic year"
// @Success 200 {object} dto.APIResponse{data=[]models.Section} "Sections retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	semester, year, ok := termQuery(ctx)
	if !ok {
		return
	}

	sections, err := c.sections.ListBySemester(ctx.Request.Context(), semester, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sections, ""))
}

// GetTimetable returns the weekly timetable of a term
// @Summary Weekly timetable
// @Description Every meeting of the term bucketed by day and ordered by start time
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param semester query string true "FALL, SPRING or SUMMER"
// @Param year query int true "Academic year"
// @Success 200 {object} dto.APIResponse{data=dto.TimetableResponse} "Timetable retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /timetable [get]
func (c *SectionController) GetTimetable(ctx *gin.Context) {
	semester, year, ok := termQuery(ctx)
	if !ok {
		return
	}

	timetable, err := c.sections.GetWeeklyTimetable(ctx.Request.Context(), semester, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TimetableResponse{
		Semester:     semester,
		AcademicYear: year,
		TotalEntries: timetable.Count(),
		Days:         timetable,
	}, ""))
}

// builderFor turns a request into a builder, filling configured defaults
func (c *SectionController) builderFor(req dto.CreateSectionRequest) *builder.SectionBuilder {
	capacity := req.Capacity
	if capacity == 0 {
		capacity = c.defaultCapacity
	}

	b := builder.NewSectionBuilder().
		WithCourse(req.CourseID).
		WithInstructor(req.InstructorID).
		WithSectionNumber(req.SectionNumber).
		WithSessionType(req.SessionType).
		WithSemester(req.Semester, req.AcademicYear).
		WithRoom(req.Room).
		WithCapacity(capacity)
	if len(req.AdditionalCourseIDs) > 0 {
		b.WithAdditionalCourses(req.AdditionalCourseIDs...)
	}
	if !c.requireRoom {
		b.AllowUnassignedRoom()
	}
	for _, s := range req.Sessions {
		b.AddSession(models.Session{
			Day:           s.Day,
			Start:         *s.StartTime,
			End:           *s.EndTime,
			Room:          s.Room,
			SessionType:   s.SessionType,
			CourseID:      s.CourseID,
			SectionNumber: s.SectionNumber,
		})
	}
	return b
}

func conflictResponse(data interface{}, conflict *apperrors.ConflictError) dto.APIResponse {
	return dto.APIResponse{
		Success:   false,
		Message:   conflict.Reason,
		Data:      data,
		Error:     dto.NewErrorDetail(dto.ErrorCodeSchedulingConflict, conflict.Reason),
		Timestamp: time.Now(),
	}
}

// pathID parses a positive int64 path parameter, writing a 400 when it is not one
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// termQuery reads ?semester=&year=
func termQuery(ctx *gin.Context) (models.Term, int, bool) {
	semester, err := models.ParseTerm(ctx.Query("semester"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).WithField("semester")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", 0, false
	}
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "year must be a number").WithField("year")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", 0, false
	}
	return semester, year, true
}
