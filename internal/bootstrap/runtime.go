// Package bootstrap wires runtime dependencies (database, cache, built-in
// data) so entry points share one initialization path.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gastronet/internal/cache"
	"gastronet/internal/config"
	"gastronet/internal/database"
	"gastronet/internal/models"
	"gastronet/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns inserts the permanent supplier directory entries.
	SeedBuiltIns bool
}

// InitRuntime connects to the database and Redis and optionally seeds
// built-in data. The Redis client may be nil if the server is unreachable;
// callers degrade to cache-less operation.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}

	if opts.SeedBuiltIns {
		if err := seed.Suppliers(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in suppliers: %w", err)
		}
	}

	return db, r, nil
}

// ensureDevRootAdmin creates or repairs the admin account with ID 1. Only
// active in development with DEV_BOOTSTRAP_ROOT set.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	handle := strings.TrimSpace(strings.ToLower(cfg.DevRootHandle))
	if handle == "" {
		handle = "gastronet_root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@gastronet.local"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				ID:       1,
				Handle:   handle,
				Email:    email,
				Password: string(hashedPassword),
				Role:     models.RoleRestaurantOwner,
				IsAdmin:  true,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{"is_admin": true}
			if cfg.DevRootForceCredentials {
				updates["handle"] = handle
				updates["email"] = email
				updates["password"] = string(hashedPassword)
			}
			if err := tx.Model(&models.User{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Creating with an explicit ID can leave the sequence behind.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('users', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM users), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset users sequence: %w", err)
			}
		}

		return nil
	}); err != nil {
		return err
	}

	slog.Info("development root admin ensured", "user_id", 1, "email", email)
	return nil
}
