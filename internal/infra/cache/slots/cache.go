package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrCache возвращается при ошибках работы с Redis
	ErrCache = errors.New("slots.cache: redis error")

	// ErrDecode возвращается, если сохраненное значение повреждено
	ErrDecode = errors.New("slots.cache: decode error")
)

const keyPrefix = "slots"

// Cache кеш вычисленных слотов в Redis.
// Инвалидация по компании выполняется увеличением версии: старые ключи
// перестают читаться и истекают по TTL.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New создает кеш слотов
func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version текущая версия расписания компании
func (c *Cache) Version(ctx context.Context, companyID int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(companyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Version company=%d: %w", ErrCache, companyID, err)
	}
	return v, nil
}

// Get возвращает сохраненный результат; found=false при промахе
func (c *Cache) Get(ctx context.Context, q domain.SlotQuery) (*domain.CachedDay, bool, error) {
	data, err := c.client.Get(ctx, entryKey(q)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %w", ErrCache, err)
	}

	var day domain.CachedDay
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &day, true, nil
}

// Set сохраняет результат на время TTL
func (c *Cache) Set(ctx context.Context, q domain.SlotQuery, day *domain.CachedDay) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := c.client.Set(ctx, entryKey(q), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %w", ErrCache, err)
	}
	return nil
}

// InvalidateCompany делает недействительными все сохраненные слоты компании
func (c *Cache) InvalidateCompany(ctx context.Context, companyID int64) error {
	if err := c.client.Incr(ctx, versionKey(companyID)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateCompany company=%d: %w", ErrCache, companyID, err)
	}
	return nil
}

func versionKey(companyID int64) string {
	return fmt.Sprintf("%s:ver:%d", keyPrefix, companyID)
}

func entryKey(q domain.SlotQuery) string {
	return fmt.Sprintf("%s:%d:v%d:%s:%s:d%d:s%d:l%d",
		keyPrefix, q.CompanyID, q.Version, q.Timezone, q.Date, q.DurationMinutes, q.ServiceID, q.Limit)
}
