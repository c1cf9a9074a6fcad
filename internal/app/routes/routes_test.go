package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/controllers"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/auth"
)

func TestRouteAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-test", AccessTokenExp: time.Hour, TokenIssuer: "test"})

	// Services are never reached: every request below stops in middleware or input parsing
	router := gin.New()
	SetupRouter(router, Controllers{
		Sections:      controllers.NewSectionController(nil, config.SchedulingConfig{DefaultCapacity: 40}),
		Enrollment:    controllers.NewEnrollmentController(nil, nil),
		Notifications: controllers.NewNotificationController(nil),
	}, middleware.NewAuthMiddleware(jwtService))

	token := func(role models.RoleType) string {
		tok, _, err := jwtService.GenerateAccessToken(10, "user@example.com", role)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		return "Bearer " + tok
	}

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"no token", http.MethodGet, "/api/v1/timetable?semester=FALL&year=2025", "", http.StatusUnauthorized},
		{"student cannot create sections", http.MethodPost, "/api/v1/sections", token(models.RoleStudent), http.StatusForbidden},
		{"instructor cannot create sections", http.MethodPost, "/api/v1/sections/batch", token(models.RoleInstructor), http.StatusForbidden},
		{"student cannot review", http.MethodPost, "/api/v1/enrollment-requests/1/approve", token(models.RoleStudent), http.StatusForbidden},
		{"student cannot list requests", http.MethodGet, "/api/v1/enrollment-requests", token(models.RoleStudent), http.StatusForbidden},
		{"admin cannot file requests", http.MethodPost, "/api/v1/enrollment-requests", token(models.RoleAdmin), http.StatusForbidden},
		{"authenticated reaches handler", http.MethodGet, "/api/v1/timetable?semester=FALL", token(models.RoleStudent), http.StatusBadRequest},
		{"instructor reaches review handler", http.MethodPost, "/api/v1/enrollment-requests/abc/approve", token(models.RoleInstructor), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}
