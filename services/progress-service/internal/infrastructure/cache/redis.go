package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ComplianceCache хранит посчитанные снимки compliance. Источник правды - БД,
// кеш сбрасывается при любой записи прогресса, записи на курс и ревью внешних
// сертификаций. Сброс увеличивает поколение пользователя (compliance:gen:user:N),
// а Set пишет снимок под WATCH этого ключа: если поколение ушло вперёд,
// запись отбрасывается.
type ComplianceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewComplianceCache(client *redis.Client, ttl time.Duration) *ComplianceCache {
	return &ComplianceCache{client: client, ttl: ttl}
}

func complianceKey(userID uint) string {
	return fmt.Sprintf("compliance:user:%d", userID)
}

func generationKey(userID uint) string {
	return fmt.Sprintf("compliance:gen:user:%d", userID)
}

// Get возвращает (nil, nil), если в кеше ничего нет.
func (c *ComplianceCache) Get(ctx context.Context, userID uint) (*domain.ComplianceSnapshot, error) {
	val, err := c.client.Get(ctx, complianceKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap domain.ComplianceSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Generation - текущее поколение; отсутствующий ключ означает 0.
func (c *ComplianceCache) Generation(ctx context.Context, userID uint) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return gen, nil
}

// Set сохраняет снимок, только если поколение всё ещё равно gen.
// Устаревший снимок ошибкой не считается.
func (c *ComplianceCache) Set(ctx context.Context, snap *domain.ComplianceSnapshot, gen int64) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	genKey := generationKey(snap.UserID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, complianceKey(snap.UserID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	// Invalidate успел между WATCH и EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *ComplianceCache) Invalidate(ctx context.Context, userID uint) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, complianceKey(userID))
		return nil
	})
	return err
}
