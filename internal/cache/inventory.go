package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	SupplierKeyPrefix = "suppliers:all"
)

const (
	UserTTL     = 5 * time.Minute
	SupplierTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SupplierListKey() string {
	return SupplierKeyPrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSuppliers(ctx context.Context) {
	Invalidate(ctx, SupplierListKey())
}
