package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
)

func newTestCache(t *testing.T) (*Availability, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewAvailability(client), mr
}

func sampleSlots() *domain.DaySlots {
	return &domain.DaySlots{
		Working:   true,
		Morning:   []string{"09:00 AM", "09:30 AM"},
		Afternoon: []string{"02:00 PM"},
		Evening:   []string{},
	}
}

func TestSlotsRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	if _, ok := c.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.SetSlots(ctx, 1, 2, date, sampleSlots())

	got, ok := c.GetSlots(ctx, 1, 2, date)
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if !got.Working || len(got.Morning) != 2 || got.Morning[0] != "09:00 AM" {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	// Outro serviço no mesmo dia é outra chave
	if _, ok := c.GetSlots(ctx, 1, 3, date); ok {
		t.Fatalf("expected miss for different service")
	}
}

func TestSlotsExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	c.SetSlots(ctx, 1, 2, date, sampleSlots())
	mr.FastForward(slotsTTL + time.Second)

	if _, ok := c.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("expected entry to expire after TTL")
	}
}

func TestInvalidateDay(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	otherDay := date.AddDate(0, 0, 1)

	// Mesmo profissional, serviços diferentes, dias diferentes
	c.SetSlots(ctx, 1, 2, date, sampleSlots())
	c.SetSlots(ctx, 1, 3, date, sampleSlots())
	c.SetSlots(ctx, 1, 2, otherDay, sampleSlots())
	c.SetSlots(ctx, 9, 2, date, sampleSlots())

	c.InvalidateDay(ctx, 1, date)

	if _, ok := c.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("expected service 2 to be invalidated")
	}
	if _, ok := c.GetSlots(ctx, 1, 3, date); ok {
		t.Fatalf("expected service 3 to be invalidated")
	}
	if _, ok := c.GetSlots(ctx, 1, 2, otherDay); !ok {
		t.Fatalf("expected other day to survive")
	}
	if _, ok := c.GetSlots(ctx, 9, 2, date); !ok {
		t.Fatalf("expected other professional to survive")
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Availability
	ctx := context.Background()
	date := time.Now()

	// Nenhuma chamada pode entrar em pânico com cache desligado
	c.SetSlots(ctx, 1, 2, date, sampleSlots())
	c.InvalidateDay(ctx, 1, date)
	c.InvalidateProfessional(ctx, 1)
	c.InvalidateRange(ctx, date, date)
	if _, ok := c.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("nil cache must always miss")
	}

	disabled := NewAvailability(nil)
	disabled.SetSlots(ctx, 1, 2, date, sampleSlots())
	if _, ok := disabled.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("cache without client must always miss")
	}
}

func TestInvalidateProfessional(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	otherDay := date.AddDate(0, 0, 7)

	c.SetSlots(ctx, 1, 2, date, sampleSlots())
	c.SetSlots(ctx, 1, 3, otherDay, sampleSlots())
	c.SetSlots(ctx, 9, 2, date, sampleSlots())

	c.InvalidateProfessional(ctx, 1)

	if _, ok := c.GetSlots(ctx, 1, 2, date); ok {
		t.Fatalf("expected all days of professional 1 to be invalidated")
	}
	if _, ok := c.GetSlots(ctx, 1, 3, otherDay); ok {
		t.Fatalf("expected all days of professional 1 to be invalidated")
	}
	if _, ok := c.GetSlots(ctx, 9, 2, date); !ok {
		t.Fatalf("expected other professional to survive")
	}
}

func TestInvalidateRange(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	outside := day1.AddDate(0, 0, 5)

	// Profissionais diferentes dentro e fora do intervalo
	c.SetSlots(ctx, 1, 2, day1, sampleSlots())
	c.SetSlots(ctx, 9, 2, day2, sampleSlots())
	c.SetSlots(ctx, 1, 2, outside, sampleSlots())

	// Bloqueio das 10h do dia 1 às 9h do dia 2: cobre os dois dias
	from := day1.Add(10 * time.Hour)
	to := day2.Add(9 * time.Hour)
	c.InvalidateRange(ctx, from, to)

	if _, ok := c.GetSlots(ctx, 1, 2, day1); ok {
		t.Fatalf("expected first day to be invalidated")
	}
	if _, ok := c.GetSlots(ctx, 9, 2, day2); ok {
		t.Fatalf("expected second day to be invalidated for every professional")
	}
	if _, ok := c.GetSlots(ctx, 1, 2, outside); !ok {
		t.Fatalf("expected day outside the range to survive")
	}
}
