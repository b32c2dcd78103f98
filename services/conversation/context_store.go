package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"coachline/models"

	"github.com/go-redis/redis/v8"
)

const contextKeyPrefix = "conv:ctx:"

// ContextStore keeps per-conversation booking drafts. Entries are created on
// the first turn of a conversation and cleared on successful commit; the
// Redis implementation additionally expires them by TTL so long-lived
// processes never accumulate stale drafts.
type ContextStore interface {
	Get(ctx context.Context, conversationID string) (*models.BookingDraft, error)
	Set(ctx context.Context, conversationID string, draft *models.BookingDraft) error
	Clear(ctx context.Context, conversationID string) error
}

// RedisContextStore stores drafts as JSON blobs with a TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, conversationID string) (*models.BookingDraft, error) {
	key := contextKeyPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.BookingDraft{}, nil
	}
	if err != nil {
		return nil, err
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *RedisContextStore) Set(ctx context.Context, conversationID string, draft *models.BookingDraft) error {
	key := contextKeyPrefix + conversationID
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, conversationID string) error {
	key := contextKeyPrefix + conversationID
	return s.client.Del(ctx, key).Err()
}

// MemoryContextStore is an in-process store used in tests and when Redis is
// not configured.
type MemoryContextStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *MemoryContextStore) Get(_ context.Context, conversationID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft := s.drafts[conversationID]
	return &draft, nil
}

func (s *MemoryContextStore) Set(_ context.Context, conversationID string, draft *models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[conversationID] = *draft
	return nil
}

func (s *MemoryContextStore) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, conversationID)
	return nil
}
