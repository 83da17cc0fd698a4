package conversationrepo

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

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/infrastructure/database/entities"
	"mert-chat/internal/utils/platformerrors"
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

func createConversation(t *testing.T, repo conversation.Repository, userID, title string, at time.Time) *conversation.Conversation {
	t.Helper()
	conv, err := conversation.NewConversation(userID, title, at)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), conv))
	require.NotZero(t, conv.ID)
	return conv
}

func appendTurn(t *testing.T, repo conversation.Repository, conv *conversation.Conversation, n int, at time.Time) {
	t.Helper()
	prompt, completion := 10+n, 5+n
	userMsg, err := conversation.NewMessage(conv.ID, conversation.RoleUser, fmt.Sprintf("q%d", n), &prompt, at)
	require.NoError(t, err)
	assistantMsg, err := conversation.NewMessage(conv.ID, conversation.RoleAssistant, fmt.Sprintf("a%d", n), &completion, at)
	require.NoError(t, err)
	require.NoError(t, repo.AppendExchange(context.Background(), conversation.Exchange{
		ConversationID:   conv.ID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		At:               at,
	}))
}

// Both implementations must behave the same way.
func repositories(t *testing.T) map[string]conversation.Repository {
	return map[string]conversation.Repository{
		"gorm":     NewPostgresRepository(newTestDB(t)),
		"inmemory": NewInMemoryRepository(),
	}
}

func TestFindLatestByUser(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			latest, err := repo.FindLatestByUser(ctx, "u1")
			require.NoError(t, err)
			assert.Nil(t, latest)

			older := createConversation(t, repo, "u1", "older", base)
			newer := createConversation(t, repo, "u1", "newer", base.Add(time.Minute))
			createConversation(t, repo, "u2", "other user", base.Add(time.Hour))

			latest, err = repo.FindLatestByUser(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, newer.PublicID, latest.PublicID)

			appendTurn(t, repo, older, 1, base.Add(2*time.Minute))
			latest, err = repo.FindLatestByUser(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, older.PublicID, latest.PublicID)
			assert.Equal(t, 2, latest.MessageCount)
		})
	}
}

func TestAppendExchangeAndRecentMessages(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			conv := createConversation(t, repo, "u1", "hello", base)

			for i := 1; i <= 8; i++ {
				appendTurn(t, repo, conv, i, base.Add(time.Duration(i)*time.Second))
			}

			recent, err := repo.ListRecentMessages(ctx, conv.ID, 10)
			require.NoError(t, err)
			require.Len(t, recent, 10)
			// newest first; same-timestamp pairs keep assistant after user
			assert.Equal(t, "a8", recent[0].Content)
			assert.Equal(t, "q8", recent[1].Content)
			assert.Equal(t, "q4", recent[9].Content)

			chronological := conversation.Chronological(recent)
			assert.Equal(t, "q4", chronological[0].Content)
			assert.Equal(t, "a8", chronological[9].Content)

			all, err := repo.ListMessages(ctx, conv.ID)
			require.NoError(t, err)
			require.Len(t, all, 16)
			assert.Equal(t, "q1", all[0].Content)
			assert.Equal(t, conversation.RoleUser, all[0].Role)
			require.NotNil(t, all[0].TokenCount)
			assert.Equal(t, 11, *all[0].TokenCount)

			found, err := repo.FindByPublicID(ctx, conv.PublicID)
			require.NoError(t, err)
			assert.Equal(t, 16, found.MessageCount)
			assert.True(t, found.UpdatedAt.Equal(base.Add(8*time.Second)))
		})
	}
}

func TestAppendExchangeUnknownConversation(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			userMsg, _ := conversation.NewMessage(999, conversation.RoleUser, "q", nil, time.Now())
			assistantMsg, _ := conversation.NewMessage(999, conversation.RoleAssistant, "a", nil, time.Now())
			err := repo.AppendExchange(context.Background(), conversation.Exchange{
				ConversationID:   999,
				UserMessage:      userMsg,
				AssistantMessage: assistantMsg,
				At:               time.Now(),
			})
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
		})
	}
}

func TestAppendExchangeRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresRepository(db)
	conv := createConversation(t, repo, "u1", "hello", time.Now().UTC())

	userMsg, _ := conversation.NewMessage(conv.ID, conversation.RoleUser, "q", nil, time.Now().UTC())
	assistantMsg, _ := conversation.NewMessage(conv.ID, conversation.RoleAssistant, "a", nil, time.Now().UTC())
	// a duplicate public id makes the second insert fail
	assistantMsg.PublicID = userMsg.PublicID

	err := repo.AppendExchange(context.Background(), conversation.Exchange{
		ConversationID:   conv.ID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		At:               time.Now().UTC(),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.Message{}).Count(&count).Error)
	assert.Zero(t, count)

	found, err := repo.FindByPublicID(context.Background(), conv.PublicID)
	require.NoError(t, err)
	assert.Zero(t, found.MessageCount)
}

func TestListByUserAndFindByPublicID(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 5; i++ {
				createConversation(t, repo, "u1", fmt.Sprintf("c%d", i), base.Add(time.Duration(i)*time.Minute))
			}

			list, err := repo.ListByUser(ctx, "u1", 3)
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, "c4", list[0].Title)
			assert.Equal(t, "c2", list[2].Title)

			_, err = repo.FindByPublicID(ctx, "conv_missing")
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
		})
	}
}
