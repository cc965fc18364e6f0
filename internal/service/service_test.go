package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/timz-app/timz-api/internal/model"
	"github.com/timz-app/timz-api/internal/repository"
)

// setupTestDB opens an in-memory sqlite database. The pool is pinned to a
// single connection so transactions see the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ProfileClient{},
		&model.ProfilePro{},
		&model.Category{},
		&model.ServiceGroup{},
		&model.Service{},
	))
	return db
}

type testStack struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	guard    *Guard
	auth     *AuthService
	users    *UserService
	catalog  *CatalogService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	hasher := NewPasswordHasher()
	tokens := newTestTokenService(time.Hour)

	return &testStack{
		db:       db,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		guard:    NewGuard(tokens, userRepo),
		auth:     NewAuthService(userRepo, hasher, tokens),
		users:    NewUserService(userRepo),
		catalog:  NewCatalogService(catalogRepo),
	}
}
