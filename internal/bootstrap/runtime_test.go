package bootstrap

import (
	"testing"

	"gastronet/internal/config"
	"gastronet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestEnsureDevRootAdminCreatesAccount(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootHandle:    "Gastronet_Root",
		DevRootEmail:     "Root@Gastronet.local",
		DevRootPassword:  "bootstrap-secret",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var root models.User
	require.NoError(t, db.First(&root, 1).Error)
	assert.True(t, root.IsAdmin)
	assert.Equal(t, "gastronet_root", root.Handle)
	assert.Equal(t, "root@gastronet.local", root.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("bootstrap-secret")))
}

func TestEnsureDevRootAdminRepairsExisting(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.User{
		ID:       1,
		Handle:   "demoted",
		Email:    "demoted@example.com",
		Password: "x",
		Role:     models.RoleEmployee,
	}).Error)

	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootPassword:  "bootstrap-secret",
	}
	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var root models.User
	require.NoError(t, db.First(&root, 1).Error)
	assert.True(t, root.IsAdmin)
	// Without force, existing credentials survive.
	assert.Equal(t, "demoted", root.Handle)
}

func TestEnsureDevRootAdminSkipsOutsideDevelopment(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{
		Env:              "production",
		DevBootstrapRoot: true,
		DevRootPassword:  "bootstrap-secret",
	}
	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureDevRootAdminRequiresPassword(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
	}
	assert.Error(t, ensureDevRootAdmin(cfg, db))
}
