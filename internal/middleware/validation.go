package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/validation"
)

// RegisterValidators adds the scheduling rules to gin's validator so DTOs can use
// `binding:"sectionnumber"` and `binding:"room"`
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("sectionnumber", func(fl validator.FieldLevel) bool {
		return validation.ValidSectionNumber(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("room", func(fl validator.FieldLevel) bool {
		return validation.ValidRoom(fl.Field().String())
	})
}

// BindJSON binds the body into obj and writes a 400 when binding fails
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// ValidateRequest binds and validates the body before the handler runs. The handler
// reads the result with c.MustGet("validatedBody").
func ValidateRequest[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := new(T)
		if !BindJSON(c, obj) {
			return
		}
		c.Set("validatedBody", obj)
		c.Next()
	}
}
