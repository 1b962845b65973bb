package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/types"
)

const (
	keyPrefix    = "slots:"
	genKeyPrefix = "slots-gen:"
)

// ErrCacheMiss возвращается, если в кэше нет актуальных слотов
var ErrCacheMiss = errors.New("slots.cache: miss")

// Cache кэш рассчитанных слотов владельца расписания в Redis
// С nil-клиентом кэш выключен: Get всегда промах, запись и сброс ничего не делают
//
// Записи адресуются поколением владельца. Invalidate увеличивает поколение,
// поэтому запись, рассчитанная до сброса, попадает под старый ключ и больше не читается.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш слотов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type entry struct {
	Date  string      `json:"date"`
	Slots []slotEntry `json:"slots"`
}

type slotEntry struct {
	StartsAt     time.Time `json:"startsAt"`
	DisplayLabel string    `json:"displayLabel"`
}

// Enabled возвращает true, если кэш подключен к Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Generation возвращает текущее поколение кэша владельца
// Поколение читается до расчета слотов и передается в Get и Set
func (c *Cache) Generation(ctx context.Context, ownerID string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}

	gen, err := c.client.Get(ctx, genKey(ownerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", genKey(ownerID), err)
	}

	return gen, nil
}

// Get возвращает слоты поколения gen, рассчитанные для даты today
// Запись, рассчитанная в другой день, считается промахом
func (c *Cache) Get(ctx context.Context, ownerID string, gen int64, today types.Date) ([]domain.BookableSlot, error) {
	if !c.Enabled() {
		return nil, ErrCacheMiss
	}

	k := key(ownerID, gen)
	raw, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", k, err)
	}

	return decode(raw, today)
}

// Set сохраняет слоты владельца под поколением gen с TTL
func (c *Cache) Set(ctx context.Context, ownerID string, gen int64, today types.Date, slots []domain.BookableSlot) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := encode(today, slots)
	if err != nil {
		return err
	}

	k := key(ownerID, gen)
	if err := c.client.Set(ctx, k, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", k, err)
	}

	return nil
}

// Invalidate сбрасывает слоты владельца (после изменения правил или встреч)
// Старые записи истекают по TTL
func (c *Cache) Invalidate(ctx context.Context, ownerID string) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.client.Incr(ctx, genKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", genKey(ownerID), err)
	}

	return nil
}

// Close закрывает соединение с Redis, если оно есть
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func key(ownerID string, gen int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, ownerID, gen)
}

func genKey(ownerID string) string {
	return genKeyPrefix + ownerID
}

func encode(today types.Date, slots []domain.BookableSlot) ([]byte, error) {
	e := entry{Date: today.String(), Slots: make([]slotEntry, len(slots))}
	for i, s := range slots {
		e.Slots[i] = slotEntry{StartsAt: s.StartsAt, DisplayLabel: s.DisplayLabel}
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal slots: %w", err)
	}
	return payload, nil
}

func decode(raw []byte, today types.Date) ([]domain.BookableSlot, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal slots: %w", err)
	}

	if e.Date != today.String() {
		return nil, ErrCacheMiss
	}

	slots := make([]domain.BookableSlot, len(e.Slots))
	for i, s := range e.Slots {
		slots[i] = domain.BookableSlot{StartsAt: s.StartsAt, DisplayLabel: s.DisplayLabel}
	}
	return slots, nil
}
