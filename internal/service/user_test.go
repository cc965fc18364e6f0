package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timz-app/timz-api/internal/dto"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
)

func signupUser(t *testing.T, stack *testStack, req *dto.SignupRequest) *model.User {
	t.Helper()

	resp, err := stack.auth.Signup(context.Background(), req)
	require.NoError(t, err)

	user, err := stack.userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	return user
}

func signupAdmin(t *testing.T, stack *testStack) *model.User {
	t.Helper()
	return signupUser(t, stack, &dto.SignupRequest{
		Email:    "admin@example.com",
		Password: "secret-password",
		FullName: "Test Admin",
		Roles:    []model.Role{model.RoleAdmin},
	})
}

func TestUserUpdate(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Before",
		Roles:    []model.Role{model.RoleClient},
	})

	name := "After"
	phone := "+34600111222"
	updated, err := stack.users.Update(ctx, user, user.ID, &dto.UpdateUserRequest{
		FullName: &name,
		Phone:    &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "+34600111222", updated.Phone)
	// Email is immutable through updates.
	assert.Equal(t, "client@example.com", updated.Email)
}

func TestUserUpdateForbiddenForOtherUsers(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	owner := signupUser(t, stack, &dto.SignupRequest{
		Email:    "owner@example.com",
		Password: "secret-password",
		FullName: "Owner",
		Roles:    []model.Role{model.RoleClient},
	})
	other := signupUser(t, stack, &dto.SignupRequest{
		Email:    "other@example.com",
		Password: "secret-password",
		FullName: "Other",
		Roles:    []model.Role{model.RoleClient},
	})

	name := "Hijacked"
	_, err := stack.users.Update(ctx, other, owner.ID, &dto.UpdateUserRequest{FullName: &name})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// An admin may update anyone.
	admin := signupAdmin(t, stack)
	updated, err := stack.users.Update(ctx, admin, owner.ID, &dto.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.FullName)
}

func TestUserDeleteAdminOnly(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	err := stack.users.Delete(ctx, user, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	admin := signupAdmin(t, stack)
	require.NoError(t, stack.users.Delete(ctx, admin, user.ID))

	_, err = stack.userRepo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = stack.users.Delete(ctx, admin, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAddRoleProvisionsProfile(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	updated, err := stack.users.AddRole(ctx, user, user.ID, &dto.AddRoleRequest{
		Role:         model.RolePro,
		BusinessName: "Side Hustle",
	})
	require.NoError(t, err)
	assert.True(t, updated.HasRole(model.RoleClient))
	assert.True(t, updated.HasRole(model.RolePro))

	stored, err := stack.userRepo.GetByIDWithProfiles(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ProfilePro)
	assert.Equal(t, "Side Hustle", stored.ProfilePro.BusinessName)
}

func TestAddRoleAlreadyHeld(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	_, err := stack.users.AddRole(ctx, user, user.ID, &dto.AddRoleRequest{Role: model.RoleClient})
	assert.ErrorIs(t, err, apperrors.ErrRoleAlreadyHeld)
}

func TestAddRoleProWithoutBusinessName(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	_, err := stack.users.AddRole(ctx, user, user.ID, &dto.AddRoleRequest{Role: model.RolePro})
	assert.ErrorIs(t, err, apperrors.ErrIncompleteProfile)

	// Nothing was written: no extra role, no orphan profile row.
	stored, err := stack.userRepo.GetByIDWithProfiles(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasRole(model.RolePro))
	assert.Nil(t, stored.ProfilePro)
}

func TestRemoveRole(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:        "both@example.com",
		Password:     "secret-password",
		FullName:     "Both Roles",
		Roles:        []model.Role{model.RoleClient, model.RolePro},
		BusinessName: "Timz Cleaning",
	})

	require.NoError(t, stack.users.RemoveRole(ctx, user, user.ID, model.RolePro))

	stored, err := stack.userRepo.GetByIDWithProfiles(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasRole(model.RoleClient))
	assert.False(t, stored.HasRole(model.RolePro))
	assert.Nil(t, stored.ProfilePro)
	assert.NotNil(t, stored.ProfileClient)
}

func TestRemoveRoleNotPresent(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	err := stack.users.RemoveRole(ctx, user, user.ID, model.RolePro)
	assert.ErrorIs(t, err, apperrors.ErrRoleNotPresent)
}

func TestRemoveLastRoleDeletesUser(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	require.NoError(t, stack.users.RemoveRole(ctx, user, user.ID, model.RoleClient))

	_, err := stack.userRepo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetProfileNotFound(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	// A client has no pro profile row.
	_, err := stack.users.GetProfilePro(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	profile, err := stack.users.GetProfileClient(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
}

func TestUpdateProfileClient(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})
	other := signupUser(t, stack, &dto.SignupRequest{
		Email:    "other@example.com",
		Password: "secret-password",
		FullName: "Other",
		Roles:    []model.Role{model.RoleClient},
	})

	phone := "+34600111222"
	_, err := stack.users.UpdateProfileClient(ctx, other, user.ID, &dto.UpdateProfileClientRequest{Phone: &phone})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := stack.users.UpdateProfileClient(ctx, user, user.ID, &dto.UpdateProfileClientRequest{
		Phone:   &phone,
		Address: &model.Address{City: "Madrid", Country: "ES"},
	})
	require.NoError(t, err)
	assert.Equal(t, "+34600111222", updated.Phone)

	stored, err := stack.users.GetProfileClient(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Madrid", stored.Address.Data().City)
}

func TestUpdateProfilePro(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:        "pro@example.com",
		Password:     "secret-password",
		FullName:     "Pro",
		Roles:        []model.Role{model.RolePro},
		BusinessName: "Old Name",
	})

	// The business name can change but never to empty.
	empty := ""
	_, err := stack.users.UpdateProfilePro(ctx, user, user.ID, &dto.UpdateProfileProRequest{BusinessName: &empty})
	assert.ErrorIs(t, err, apperrors.ErrIncompleteProfile)

	name := "New Name"
	website := "https://new.example"
	updated, err := stack.users.UpdateProfilePro(ctx, user, user.ID, &dto.UpdateProfileProRequest{
		BusinessName: &name,
		Website:      &website,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.BusinessName)
	assert.Equal(t, "https://new.example", updated.Website)
}

func TestRoleAddRemoveRoundTrip(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	user := signupUser(t, stack, &dto.SignupRequest{
		Email:    "client@example.com",
		Password: "secret-password",
		FullName: "Client",
		Roles:    []model.Role{model.RoleClient},
	})

	_, err := stack.users.AddRole(ctx, user, user.ID, &dto.AddRoleRequest{
		Role:         model.RolePro,
		BusinessName: "Round Trip",
	})
	require.NoError(t, err)
	require.NoError(t, stack.users.RemoveRole(ctx, user, user.ID, model.RolePro))

	stored, err := stack.userRepo.GetByIDWithProfiles(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleClient}, []model.Role(stored.Roles))
	assert.Nil(t, stored.ProfilePro)
}
