package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/timz-app/timz-api/internal/constants"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/service"
	"github.com/timz-app/timz-api/pkg/logger"
)

// AuthMiddleware bridges the HTTP layer to the access guard: it pulls the
// bearer token out of the Authorization header and stores the resolved
// principal in the request context.
type AuthMiddleware struct {
	guard *service.Guard
}

func NewAuthMiddleware(guard *service.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// RequireAuth authenticates the request, rejecting with the status mapped
// from the guard's error kind.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c)
	}
}

// RequireRoles authenticates and additionally requires at least one of the
// allowed roles.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := m.authenticate(c)
		if user == nil {
			return
		}
		if !user.HasAnyRole(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				constants.BuildErrorResponse(apperrors.ErrForbidden.Message, nil))
			return
		}
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) *model.User {
	token, ok := bearerToken(c)
	if !ok {
		logger.GetLogger().Warn("Missing or malformed Authorization header",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			constants.BuildErrorResponse("Unauthorized", nil))
		return nil
	}

	user, err := m.guard.Resolve(c.Request.Context(), token)
	if err != nil {
		logger.GetLogger().Warn("Credential rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err),
			constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return nil
	}

	c.Set(constants.CtxKeyPrincipal, user)
	c.Set(constants.CtxKeyUserID, user.ID)
	return user
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Principal returns the authenticated user stored by RequireAuth.
func Principal(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(constants.CtxKeyPrincipal)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
