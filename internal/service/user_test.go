package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

func TestRegisterIdempotentOnEmail(t *testing.T) {
	users := repository.NewMemoryUsers()
	svc := NewUserService(users)
	ctx := context.Background()

	first, err := svc.Register(ctx, &models.User{Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, first.InsertedID)

	second, err := svc.Register(ctx, &models.User{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Nil(t, second.InsertedID)
	assert.Equal(t, "User already exist!", second.Message)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterDefaultsRoleNone(t *testing.T) {
	users := repository.NewMemoryUsers()
	svc := NewUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Email: "bob@example.com"})
	require.NoError(t, err)

	u, err := users.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleNone, u.Role)
}

func TestHasRoleExactMatch(t *testing.T) {
	users := repository.NewMemoryUsers()
	svc := NewUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	isAdmin, err := svc.HasRole(ctx, "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// No hierarchy: admin is not a surveyor.
	isSurveyor, err := svc.HasRole(ctx, "admin@example.com", models.RoleSurveyor)
	require.NoError(t, err)
	assert.False(t, isSurveyor)

	// Unknown user is simply false.
	unknown, err := svc.HasRole(ctx, "ghost@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, unknown)
}

func TestSetRoleValidation(t *testing.T) {
	users := repository.NewMemoryUsers()
	svc := NewUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.User{Email: "carol@example.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetRole(ctx, "carol@example.com", "supreme-leader"), ErrInvalidRole)
	require.NoError(t, svc.SetRole(ctx, "carol@example.com", models.RoleProUser))

	u, err := users.FindByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleProUser, u.Role)
}

func TestPromoteToSurveyor(t *testing.T) {
	users := repository.NewMemoryUsers()
	svc := NewUserService(users)
	ctx := context.Background()

	res, err := svc.Register(ctx, &models.User{Email: "dave@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToSurveyor(ctx, *res.InsertedID))
	u, err := users.FindByEmail(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSurveyor, u.Role)

	assert.ErrorIs(t, svc.PromoteToSurveyor(ctx, "64f000000000000000000000"), ErrNotFound)
}
