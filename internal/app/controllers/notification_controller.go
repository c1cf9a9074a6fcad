package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

// Inbox reads the notifications written by the enrollment workflow
type Inbox interface {
	ListForUser(ctx context.Context, userID int64, unreadOnly bool, limit uint64) ([]*models.Notification, error)
}

// NotificationController serves the caller's inbox
type NotificationController struct {
	inbox Inbox
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(inbox Inbox) *NotificationController {
	return &NotificationController{inbox: inbox}
}

// ListMine returns the newest notifications of the authenticated user
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Maximum number of notifications" default(50)
// @Success 200 {object} dto.APIResponse{data=[]models.Notification} "Notifications retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications [get]
func (c *NotificationController) ListMine(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	unreadOnly := false
	if raw := ctx.Query("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("unread must be true or false"))
			return
		}
		unreadOnly = parsed
	}

	limit := defaultInboxLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("limit must be a positive number"))
			return
		}
		limit = min(parsed, maxInboxLimit)
	}

	notifications, err := c.inbox.ListForUser(ctx.Request.Context(), userID, unreadOnly, uint64(limit))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications, ""))
}
