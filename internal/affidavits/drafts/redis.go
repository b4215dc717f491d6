package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldTemplateID = "template_id"
	fieldSignature  = "placed_signature"
	fieldMarkup     = "edited_markup"
	fieldSelections = "selections"
	fieldUpdatedAt  = "updated_at"
)

// RedisStore keeps each draft in a hash keyed by company and job.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
	now func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttlOrDefault(ttl), now: time.Now}
}

func draftKey(tenantID, jobID uuid.UUID) string {
	return fmt.Sprintf("affidavit:draft:%s:%s", tenantID, jobID)
}

func (s *RedisStore) Get(ctx context.Context, tenantID, jobID uuid.UUID) (*Draft, error) {
	fields, err := s.rdb.HGetAll(ctx, draftKey(tenantID, jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	draft := Draft{
		TemplateID:   fields[fieldTemplateID],
		EditedMarkup: fields[fieldMarkup],
	}
	if raw := fields[fieldSignature]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &draft.PlacedSignature); err != nil {
			return nil, fmt.Errorf("decode draft signature: %w", err)
		}
	}
	if raw := fields[fieldSelections]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &draft.Selections); err != nil {
			return nil, fmt.Errorf("decode draft selections: %w", err)
		}
	}
	if raw := fields[fieldUpdatedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			draft.UpdatedAt = ts
		}
	}
	return &draft, nil
}

// Save replaces the draft and restarts its TTL.
func (s *RedisStore) Save(ctx context.Context, tenantID, jobID uuid.UUID, draft Draft) error {
	selections, err := json.Marshal(draft.Selections)
	if err != nil {
		return fmt.Errorf("encode draft selections: %w", err)
	}
	signature := ""
	if draft.PlacedSignature != nil {
		raw, err := json.Marshal(draft.PlacedSignature)
		if err != nil {
			return fmt.Errorf("encode draft signature: %w", err)
		}
		signature = string(raw)
	}

	key := draftKey(tenantID, jobID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldTemplateID, draft.TemplateID,
			fieldSignature, signature,
			fieldMarkup, draft.EditedMarkup,
			fieldSelections, string(selections),
			fieldUpdatedAt, s.now().UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	if err := s.rdb.Del(ctx, draftKey(tenantID, jobID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
