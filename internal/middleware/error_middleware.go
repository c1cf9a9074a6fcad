package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps an application error to its HTTP status and error body
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	if conflict, ok := apperrors.AsConflict(err); ok {
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeSchedulingConflict, conflict.Reason).
			WithDetails(map[string]interface{}{"kind": conflict.Kind})
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()), err)
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrInstructorNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrSectionNotFound,
		apperrors.ErrRequestNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrSectionFull):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeSectionFull, err.Error())
	case errors.Is(err, apperrors.ErrScheduleConflict):
		return http.StatusConflict, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, err.Error()), err)
	case errors.Is(err, apperrors.ErrPrerequisitesNotMet):
		return http.StatusConflict, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodePrerequisites, err.Error()), err)
	case errors.Is(err, apperrors.ErrRequestNotPending):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeRequestNotPending, err.Error())
	case errors.Is(err, apperrors.ErrPendingRequestExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodePendingRequestExists, err.Error())
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeAlreadyEnrolled, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())

	case errors.Is(err, apperrors.ErrPersistence):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage failure").
			WithSeverity(dto.ErrorSeverityCritical)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// withCustomDetails copies CustomError details into the response
func withCustomDetails(detail *dto.ErrorDetail, err error) *dto.ErrorDetail {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && len(custom.Details) > 0 {
		return detail.WithDetails(custom.Details)
	}
	return detail
}
