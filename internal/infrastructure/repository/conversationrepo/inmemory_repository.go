package conversationrepo

import (
	"context"
	"sort"
	"sync"

	"mert-chat/internal/domain/conversation"
	"mert-chat/internal/utils/platformerrors"
)

// InMemoryRepository is a thread-safe repository for local runs and tests.
type InMemoryRepository struct {
	mu            sync.RWMutex
	nextConvID    uint
	nextMessageID uint
	conversations map[uint]*conversation.Conversation
	messages      map[uint][]*conversation.Message
}

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		conversations: make(map[uint]*conversation.Conversation),
		messages:      make(map[uint][]*conversation.Message),
	}
}

var _ conversation.Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) FindLatestByUser(_ context.Context, userID string) (*conversation.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.byUser(userID)
	if len(owned) == 0 {
		return nil, nil
	}
	copied := *owned[0]
	return &copied, nil
}

func (r *InMemoryRepository) Create(_ context.Context, conv *conversation.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextConvID++
	conv.ID = r.nextConvID
	stored := *conv
	r.conversations[conv.ID] = &stored
	return nil
}

func (r *InMemoryRepository) ListRecentMessages(_ context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.messages[conversationID]
	result := make([]*conversation.Message, 0, limit)
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		copied := *all[i]
		result = append(result, &copied)
	}
	return result, nil
}

func (r *InMemoryRepository) AppendExchange(ctx context.Context, exchange conversation.Exchange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[exchange.ConversationID]
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"append exchange: conversation not found", nil, "8b0d2f4a-6c7e-4f9b-9d1f-3a5b7c9d1e08")
	}
	for _, msg := range []*conversation.Message{exchange.UserMessage, exchange.AssistantMessage} {
		r.nextMessageID++
		msg.ID = r.nextMessageID
		msg.ConversationID = conv.ID
		stored := *msg
		r.messages[conv.ID] = append(r.messages[conv.ID], &stored)
	}
	conv.UpdatedAt = exchange.At
	conv.MessageCount += 2
	return nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.byUser(userID)
	if len(owned) > limit {
		owned = owned[:limit]
	}
	result := make([]*conversation.Conversation, 0, len(owned))
	for _, conv := range owned {
		copied := *conv
		result = append(result, &copied)
	}
	return result, nil
}

func (r *InMemoryRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, conv := range r.conversations {
		if conv.PublicID == publicID {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"find conversation: not found", nil, "9c1e3a5b-7d8f-4a0c-8e2a-4b6c8d0e2f09")
}

func (r *InMemoryRepository) ListMessages(_ context.Context, conversationID uint) ([]*conversation.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.messages[conversationID]
	result := make([]*conversation.Message, 0, len(all))
	for _, msg := range all {
		copied := *msg
		result = append(result, &copied)
	}
	return result, nil
}

// ConversationCount returns how many conversations userID owns.
func (r *InMemoryRepository) ConversationCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser(userID))
}

// byUser sorts by updated_at desc then id desc. Callers hold the lock.
func (r *InMemoryRepository) byUser(userID string) []*conversation.Conversation {
	var owned []*conversation.Conversation
	for _, conv := range r.conversations {
		if conv.UserID == userID {
			owned = append(owned, conv)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].UpdatedAt.Equal(owned[j].UpdatedAt) {
			return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	return owned
}
