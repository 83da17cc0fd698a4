package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/infrastructure/database/entities"
	"mert-chat/internal/utils/platformerrors"
)

// PostgresRepository persists conversations and messages via GORM.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ conversation.Repository = (*PostgresRepository)(nil)

// FindLatestByUser returns the most recently updated conversation of userID, or nil.
func (r *PostgresRepository) FindLatestByUser(ctx context.Context, userID string) (*conversation.Conversation, error) {
	var rows []entities.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, repoError(ctx, err, "find latest conversation", "1a3c5e7f-9b0d-4e2a-8c4e-6f8a0b2c4d01")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].EtoD(), nil
}

// Create inserts conv and assigns its database id.
func (r *PostgresRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	row := entities.NewConversation(conv)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return repoError(ctx, err, "create conversation", "2b4d6f8a-0c1e-4f3b-9d5f-7a9b1c3d5e02")
	}
	conv.ID = row.ID
	return nil
}

// ListRecentMessages returns up to limit messages, newest first. Ties on created_at break by id.
func (r *PostgresRepository) ListRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	var rows []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, repoError(ctx, err, "list recent messages", "3c5e7a9b-1d2f-4a4c-8e6a-8b0c2d4e6f03")
	}
	return toMessages(rows), nil
}

// AppendExchange writes both messages and advances the conversation in one transaction.
func (r *PostgresRepository) AppendExchange(ctx context.Context, exchange conversation.Exchange) error {
	userRow := entities.NewMessage(exchange.UserMessage)
	assistantRow := entities.NewMessage(exchange.AssistantMessage)
	userRow.ConversationID = exchange.ConversationID
	assistantRow.ConversationID = exchange.ConversationID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userRow).Error; err != nil {
			return err
		}
		if err := tx.Create(assistantRow).Error; err != nil {
			return err
		}
		result := tx.Model(&entities.Conversation{}).
			Where("id = ?", exchange.ConversationID).
			Updates(map[string]any{
				"updated_at":    exchange.At,
				"message_count": gorm.Expr("message_count + ?", 2),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return repoError(ctx, err, "append exchange", "4d6f8b0c-2e3a-4b5d-9f7b-9c1d3e5f7a04")
	}
	exchange.UserMessage.ID = userRow.ID
	exchange.AssistantMessage.ID = assistantRow.ID
	return nil
}

// ListByUser returns userID's conversations, most recently updated first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
	var rows []entities.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, repoError(ctx, err, "list conversations", "5e7a9c1d-3f4b-4c6e-8a8c-0d2e4f6a8b05")
	}
	result := make([]*conversation.Conversation, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}

// FindByPublicID returns a NOT_FOUND platform error when absent.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var row entities.Conversation
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		return nil, repoError(ctx, err, "find conversation", "6f8b0d2e-4a5c-4d7f-9b9d-1e3f5a7b9c06")
	}
	return row.EtoD(), nil
}

// ListMessages returns all messages of a conversation, oldest first.
func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var rows []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, repoError(ctx, err, "list messages", "7a9c1e3f-5b6d-4e8a-8c0e-2f4a6b8c0d07")
	}
	return toMessages(rows), nil
}

func toMessages(rows []entities.Message) []*conversation.Message {
	result := make([]*conversation.Message, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result
}

func repoError(ctx context.Context, err error, message, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, message+": not found", err, code)
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, message, err, code)
}
