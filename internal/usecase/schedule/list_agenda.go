package schedule

import (
	"context"
	"time"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

type AgendaEntry struct {
	ID          uint   `json:"id"`
	PublicID    string `json:"public_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	State       string `json:"state"`
	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`
	Completed   bool   `json:"completed"`
	Absent      bool   `json:"absent"`
}

type ListAgenda struct {
	repo domain.Repository
}

func NewListAgenda(repo domain.Repository) *ListAgenda {
	return &ListAgenda{repo: repo}
}

// Execute lista a agenda do profissional no dia, com cliente e serviço
// hidratados (inclui cancelados, para o painel do profissional).
func (uc *ListAgenda) Execute(
	ctx context.Context,
	companyID uint,
	professionalID uint,
	date time.Time,
) ([]AgendaEntry, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	day := timezone.Midnight(date.In(timezone.Location(company.Timezone)))

	appointments, err := uc.repo.ListAgendaForDay(ctx, professionalID, day)
	if err != nil {
		return nil, err
	}

	out := make([]AgendaEntry, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]
		out = append(out, AgendaEntry{
			ID:          ap.ID,
			PublicID:    ap.PublicID,
			Date:        ap.Date.Format("2006-01-02"),
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			State:       ap.State.Name,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			Completed:   ap.Completed,
			Absent:      ap.Absent,
		})
	}

	return out, nil
}
