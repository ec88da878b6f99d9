package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
)

const slotsTTL = 2 * time.Minute

// Availability guarda resultados de FindSlots no Redis por
// (profissional, serviço, data). O cache é melhor-esforço: qualquer
// erro de Redis vira cache miss e a consulta segue para o banco.
// Com client nil o cache fica desligado.
type Availability struct {
	client *redis.Client
}

func NewAvailability(client *redis.Client) *Availability {
	return &Availability{client: client}
}

func slotsKey(professionalID, serviceID uint, date time.Time) string {
	return fmt.Sprintf("slots:%d:%d:%s", professionalID, serviceID, date.Format("2006-01-02"))
}

func (c *Availability) GetSlots(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date time.Time,
) (*domain.DaySlots, bool) {

	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, slotsKey(professionalID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots domain.DaySlots
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return &slots, true
}

func (c *Availability) SetSlots(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
	date time.Time,
	slots *domain.DaySlots,
) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, slotsKey(professionalID, serviceID, date), raw, slotsTTL)
}

// InvalidateDay apaga todas as entradas do profissional na data,
// independente do serviço consultado. Chamado em toda escrita de
// ciclo de vida que toca a agenda do dia.
func (c *Availability) InvalidateDay(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) {
	if c == nil || c.client == nil {
		return
	}
	c.deleteByPattern(ctx, fmt.Sprintf("slots:%d:*:%s", professionalID, date.Format("2006-01-02")))
}

// InvalidateProfessional apaga todas as entradas do profissional, em
// qualquer data. Chamado quando a grade de expediente é substituída.
func (c *Availability) InvalidateProfessional(
	ctx context.Context,
	professionalID uint,
) {
	if c == nil || c.client == nil {
		return
	}
	c.deleteByPattern(ctx, fmt.Sprintf("slots:%d:*", professionalID))
}

// InvalidateRange apaga as entradas de todos os profissionais nos dias
// cobertos por [from, to]. Chamado em escritas de bloqueio de agenda,
// que valem para a empresa inteira.
func (c *Availability) InvalidateRange(
	ctx context.Context,
	from time.Time,
	to time.Time,
) {
	if c == nil || c.client == nil {
		return
	}

	// Compara por data, não por instante: um bloqueio de 10h de um dia
	// às 9h do seguinte cobre os dois dias.
	last := to.Format("2006-01-02")
	for day := from; ; day = day.AddDate(0, 0, 1) {
		ds := day.Format("2006-01-02")
		c.deleteByPattern(ctx, fmt.Sprintf("slots:*:*:%s", ds))
		if ds >= last {
			return
		}
	}
}

func (c *Availability) deleteByPattern(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			c.client.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
