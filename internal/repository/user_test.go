package repository

import (
	"context"
	"testing"

	"gastronet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Handle:   "chef_mario",
		Email:    "mario@example.com",
		Password: "x",
		Role:     models.RoleEmployee,
	}
	require.NoError(t, repo.Create(ctx, user))

	dup := &models.User{
		Handle:   "chef_mario",
		Email:    "other@example.com",
		Password: "x",
		Role:     models.RoleEmployee,
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserGetByEmailMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserGetByHandle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "chef_mario")

	user, err := repo.GetByHandle(ctx, "chef_mario")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	user, err = repo.GetByHandle(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mario := createTestUser(t, db, "chef_mario")
	mario.DisplayName = "Mario Rossi"
	require.NoError(t, db.Save(mario).Error)
	createTestUser(t, db, "luca")

	results, err := repo.Search(ctx, "mario", 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "chef_mario", results[0].Handle)
}

func TestUserDeleteIsSoft(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "chef_mario")
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	require.Error(t, err)

	// The row survives with a deleted_at stamp.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).
		Where("id = ? AND deleted_at IS NOT NULL", user.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
