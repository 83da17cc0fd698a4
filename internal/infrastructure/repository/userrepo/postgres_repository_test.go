package userrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mert-chat/internal/domain/user"
	"mert-chat/internal/infrastructure/database/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities.All()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func repositories(t *testing.T) map[string]user.Repository {
	return map[string]user.Repository{
		"gorm":     NewPostgresRepository(newTestDB(t)),
		"inmemory": NewInMemoryRepository(),
	}
}

func TestCreateIfAbsentIsIdempotent(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := &user.Profile{
				UserID:      "u1",
				Email:       "u1@example.com",
				DisplayName: "User One",
				PhotoURL:    "https://example.com/u1.png",
				CreatedAt:   created,
				LastActive:  created,
			}
			inserted, err := repo.CreateIfAbsent(ctx, first)
			require.NoError(t, err)
			assert.True(t, inserted)
			assert.NotZero(t, first.ID)

			second := &user.Profile{UserID: "u1", Email: "changed@example.com", CreatedAt: created.Add(time.Hour), LastActive: created.Add(time.Hour)}
			inserted, err = repo.CreateIfAbsent(ctx, second)
			require.NoError(t, err)
			assert.False(t, inserted)

			stored, err := repo.FindByUserID(ctx, "u1")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, "u1@example.com", stored.Email)
			assert.Equal(t, "User One", stored.DisplayName)
			assert.Zero(t, stored.ChatCount)
			assert.True(t, stored.CreatedAt.Equal(created))
		})
	}
}

func TestTouchLastActive(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			updated, err := repo.TouchLastActive(ctx, "ghost", created)
			require.NoError(t, err)
			assert.False(t, updated)

			_, err = repo.CreateIfAbsent(ctx, &user.Profile{UserID: "u1", CreatedAt: created, LastActive: created})
			require.NoError(t, err)

			later := created.Add(2 * time.Hour)
			updated, err = repo.TouchLastActive(ctx, "u1", later)
			require.NoError(t, err)
			assert.True(t, updated)

			stored, err := repo.FindByUserID(ctx, "u1")
			require.NoError(t, err)
			assert.True(t, stored.LastActive.Equal(later))
			assert.True(t, stored.CreatedAt.Equal(created))
		})
	}
}

func TestFindByUserIDMissing(t *testing.T) {
	repo := NewPostgresRepository(newTestDB(t))
	profile, err := repo.FindByUserID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
