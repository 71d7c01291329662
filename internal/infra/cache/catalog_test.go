package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/logger"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

func newTestCache(t *testing.T, capacity int) *CatalogCache {
	t.Helper()

	logs, err := logger.New("", "error")
	require.NoError(t, err)

	// Без Redis работает только локальная инвалидация
	return NewCatalogCache(context.Background(), nil, logs, nil, capacity)
}

func dayInputs(unavailable ...string) DayInputs {
	return DayInputs{
		Window: domain.OperatingWindow{
			Start: types.TimeString("09:00"),
			End:   types.TimeString("22:00"),
		},
		UnavailableTimes: unavailable,
	}
}

func TestCatalogCache_PutGet(t *testing.T) {
	c := newTestCache(t, 10)

	_, ok := c.Get(7, "2026-04-11")
	assert.False(t, ok)

	c.Put(7, "2026-04-11", dayInputs("10:00", "10:30"))

	got, ok := c.Get(7, "2026-04-11")
	require.True(t, ok)
	assert.Equal(t, []string{"10:00", "10:30"}, got.UnavailableTimes)

	// Та же дата другой студии — отдельная запись
	_, ok = c.Get(8, "2026-04-11")
	assert.False(t, ok)
}

func TestCatalogCache_InvalidateLocal(t *testing.T) {
	c := newTestCache(t, 10)

	c.Put(7, "2026-04-11", dayInputs())
	c.Put(7, "2026-04-12", dayInputs())

	c.Invalidate(context.Background(), 7, "2026-04-11")

	_, ok := c.Get(7, "2026-04-11")
	assert.False(t, ok)

	// Соседняя дата не задета
	_, ok = c.Get(7, "2026-04-12")
	assert.True(t, ok)
}

func TestCatalogCache_EvictsAtCapacity(t *testing.T) {
	c := newTestCache(t, 2)

	c.Put(7, "2026-04-11", dayInputs())
	c.Put(7, "2026-04-12", dayInputs())
	c.Put(7, "2026-04-13", dayInputs())

	_, ok := c.Get(7, "2026-04-11")
	assert.False(t, ok)
	_, ok = c.Get(7, "2026-04-13")
	assert.True(t, ok)
}

func TestParseKey(t *testing.T) {
	studioID, date, err := ParseKey(cacheKey(42, "2026-04-11"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), studioID)
	assert.Equal(t, "2026-04-11", date)

	_, _, err = ParseKey("no-separator")
	assert.Error(t, err)

	_, _, err = ParseKey("abc:2026-04-11")
	assert.Error(t, err)
}
