package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coreauth "dealspot/internal/core/auth"
	"dealspot/internal/domain"
	"dealspot/pkg/utils"
)

// 每个测试独立的内存库，名字隔离避免共享缓存串库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Deal{}, &domain.Vote{}, &domain.Comment{}))
	return db
}

func newTestJWTer() *coreauth.JWTer {
	return &coreauth.JWTer{Secret: []byte("test-secret"), Issuer: "dealspot-test", TTL: time.Hour}
}

func seedUser(t *testing.T, db *gorm.DB, role domain.Role) *domain.User {
	t.Helper()
	id := utils.NewID()
	u := &domain.User{
		ID:           id,
		Username:     "u" + id[:8],
		Email:        id[:8] + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedDeal(t *testing.T, db *gorm.DB, authorID string, status domain.DealStatus) *domain.Deal {
	t.Helper()
	d := &domain.Deal{
		ID:          utils.NewID(),
		Title:       "Casque bluetooth en promo",
		Description: "Bonne affaire sur un casque correct",
		Price:       29.99,
		URL:         "https://example.com/deal",
		Category:    "High-Tech",
		Status:      status,
		AuthorID:    authorID,
	}
	require.NoError(t, db.Create(d).Error)
	return d
}

func dealByID(t *testing.T, db *gorm.DB, id string) *domain.Deal {
	t.Helper()
	var d domain.Deal
	require.NoError(t, db.First(&d, "id = ?", id).Error)
	return &d
}
