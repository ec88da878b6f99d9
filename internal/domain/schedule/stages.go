package schedule

import (
	"sort"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

// StageDraft é a linha do tempo concreta de uma etapa, antes da persistência.
type StageDraft struct {
	ServiceStageID       uint
	Sequence             int
	StartsAt             time.Time
	EndsAt               time.Time
	OccupiesProfessional bool
}

// PlanStages materializa as etapas do serviço a partir do instante de
// início: cada etapa ocupa [cursor, cursor+duração) e o cursor avança
// até o fim da última etapa, que define o fim do agendamento.
// Serviço sem etapas nunca pode ser agendado.
func PlanStages(stages []models.ServiceStage, start time.Time) ([]StageDraft, int, error) {
	if len(stages) == 0 {
		return nil, 0, httperr.ErrBusiness("empty_service_definition")
	}

	ordered := make([]models.ServiceStage, len(stages))
	copy(ordered, stages)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	drafts := make([]StageDraft, 0, len(ordered))
	cursor := start
	total := 0

	for _, st := range ordered {
		end := cursor.Add(time.Duration(st.DurationMin) * time.Minute)
		drafts = append(drafts, StageDraft{
			ServiceStageID:       st.ID,
			Sequence:             st.Sequence,
			StartsAt:             cursor,
			EndsAt:               end,
			OccupiesProfessional: st.OccupiesProfessional,
		})
		cursor = end
		total += st.DurationMin
	}

	return drafts, total, nil
}
