package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/timz-app/timz-api/config"
	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/repository"
	"github.com/timz-app/timz-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	tokens *service.TokenService
	guard  *service.Guard
	repo   *repository.UserRepository
	user   *model.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.ProfileClient{}, &model.ProfilePro{}))

	repo := repository.NewUserRepository(db)
	tokens := service.NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key",
		ExpirationTime: time.Hour,
		Issuer:         "timz-api",
	})

	user := &model.User{
		Email:        "client@example.com",
		PasswordHash: "irrelevant",
		FullName:     "Test Client",
		Roles:        []model.Role{model.RoleClient},
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	return &authFixture{
		tokens: tokens,
		guard:  service.NewGuard(tokens, repo),
		repo:   repo,
		user:   user,
	}
}

func (f *authFixture) token(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Issue(f.user.ID, f.user.Roles, f.user.TokenVersion)
	require.NoError(t, err)
	return token
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		user, ok := Principal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	fixture := newAuthFixture(t)
	router := protectedRouter(NewAuthMiddleware(fixture.guard).RequireAuth())

	rec := doRequest(router, "Bearer "+fixture.token(t))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fixture.user.ID.String())
}

func TestRequireAuthMissingHeader(t *testing.T) {
	fixture := newAuthFixture(t)
	router := protectedRouter(NewAuthMiddleware(fixture.guard).RequireAuth())

	rec := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, "Bearer")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	fixture := newAuthFixture(t)
	router := protectedRouter(NewAuthMiddleware(fixture.guard).RequireAuth())

	rec := doRequest(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRevokedToken(t *testing.T) {
	fixture := newAuthFixture(t)
	router := protectedRouter(NewAuthMiddleware(fixture.guard).RequireAuth())

	token := fixture.token(t)
	require.NoError(t, fixture.repo.IncrementTokenVersion(context.Background(), fixture.user.ID))

	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	fixture := newAuthFixture(t)
	mw := NewAuthMiddleware(fixture.guard)

	allowed := protectedRouter(mw.RequireRoles(model.RoleClient, model.RoleAdmin))
	rec := doRequest(allowed, "Bearer "+fixture.token(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	adminOnly := protectedRouter(mw.RequireRoles(model.RoleAdmin))
	rec = doRequest(adminOnly, "Bearer "+fixture.token(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(adminOnly, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
