package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/lrucache"
	"github.com/nrgaliy/Studio-BookingService/pkg/logger"
	"github.com/nrgaliy/Studio-BookingService/pkg/metrics"
)

// InvalidateChannel канал Redis pub/sub для инвалидации каталога между инстансами
const InvalidateChannel = "studio-booking:catalog-invalidate"

// DefaultCapacity ёмкость кеша каталога по умолчанию
const DefaultCapacity = 10

// DayInputs входные данные построения каталога на день: окно работы и
// стартовые времена занятых слотов. Сам каталог не кешируется, потому что
// для сегодняшней даты разметка прошедших слотов зависит от текущего времени.
type DayInputs struct {
	Window           domain.OperatingWindow
	UnavailableTimes []string
}

// invalidateMessage сообщение в канале инвалидации
type invalidateMessage struct {
	StudioID int64  `json:"studio_id"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// CatalogCache in-process LRU-кеш входных данных каталога доступности
// с межинстансовой инвалидацией через Redis pub/sub.
type CatalogCache struct {
	cache   *lrucache.Cache[string, DayInputs]
	rdb     *redis.Client
	logs    *logger.Logger
	metrics *metrics.Metrics
}

// NewCatalogCache создает кеш каталога и подписывается на канал инвалидации
func NewCatalogCache(ctx context.Context, rdb *redis.Client, logs *logger.Logger, m *metrics.Metrics, capacity int) *CatalogCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &CatalogCache{
		cache:   lrucache.New[string, DayInputs](capacity),
		rdb:     rdb,
		logs:    logs,
		metrics: m,
	}

	if rdb != nil {
		go c.listenInvalidations(ctx)
	}

	return c
}

func cacheKey(studioID int64, date string) string {
	return strconv.FormatInt(studioID, 10) + ":" + date
}

// Get возвращает закешированные входные данные каталога
func (c *CatalogCache) Get(studioID int64, date string) (DayInputs, bool) {
	inputs, ok := c.cache.Get(cacheKey(studioID, date))
	if c.metrics != nil {
		if ok {
			c.metrics.ObserveCache("hit")
		} else {
			c.metrics.ObserveCache("miss")
		}
	}
	return inputs, ok
}

// Put сохраняет входные данные каталога
func (c *CatalogCache) Put(studioID int64, date string, inputs DayInputs) {
	c.cache.Put(cacheKey(studioID, date), inputs)
}

// Invalidate удаляет запись локально и рассылает инвалидацию остальным
// инстансам через Redis. Вызывается после создания или отмены бронирования
// и после изменения расписания студии.
func (c *CatalogCache) Invalidate(ctx context.Context, studioID int64, date string) {
	c.invalidateLocal(studioID, date)

	if c.rdb == nil {
		return
	}

	payload, err := json.Marshal(invalidateMessage{StudioID: studioID, Date: date})
	if err != nil {
		c.logs.Error("catalog cache: marshal invalidate message: %v", err)
		return
	}

	if err := c.rdb.Publish(ctx, InvalidateChannel, payload).Err(); err != nil {
		// Локальная инвалидация уже прошла, теряется только рассылка
		c.logs.Warn("catalog cache: publish invalidate for studio=%d date=%s: %v", studioID, date, err)
	}
}

func (c *CatalogCache) invalidateLocal(studioID int64, date string) {
	if c.cache.Remove(cacheKey(studioID, date)) {
		c.logs.Debug("catalog cache: invalidated studio=%d date=%s", studioID, date)
		if c.metrics != nil {
			c.metrics.ObserveCache("invalidate")
		}
	}
}

// listenInvalidations слушает канал Redis и применяет инвалидации,
// опубликованные другими инстансами сервиса
func (c *CatalogCache) listenInvalidations(ctx context.Context) {
	pubsub := c.rdb.Subscribe(ctx, InvalidateChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var m invalidateMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				c.logs.Warn("catalog cache: bad invalidate payload %q: %v", msg.Payload, err)
				continue
			}
			c.invalidateLocal(m.StudioID, m.Date)
		}
	}
}

// ParseKey разбирает ключ кеша обратно в studioID и дату.
// Используется в тестах и диагностике.
func ParseKey(key string) (int64, string, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid cache key %q", key)
	}
	studioID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid cache key %q: %v", key, err)
	}
	return studioID, parts[1], nil
}
