package schedule

import (
	"testing"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

func TestPlanStagesEmptyService(t *testing.T) {
	_, _, err := PlanStages(nil, time.Now())
	if !httperr.IsBusiness(err, "empty_service_definition") {
		t.Fatalf("expected empty_service_definition, got %v", err)
	}
}

func TestPlanStagesTimeline(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	// Fora de ordem de propósito: o plano ordena por sequence
	stages := []models.ServiceStage{
		{ID: 30, Sequence: 3, DurationMin: 15, OccupiesProfessional: true},
		{ID: 10, Sequence: 1, DurationMin: 30, OccupiesProfessional: true},
		{ID: 20, Sequence: 2, DurationMin: 45, OccupiesProfessional: false},
	}

	drafts, total, err := PlanStages(stages, start)
	if err != nil {
		t.Fatalf("PlanStages: %v", err)
	}
	if total != 90 {
		t.Fatalf("total = %d, want 90", total)
	}
	if len(drafts) != 3 {
		t.Fatalf("len(drafts) = %d, want 3", len(drafts))
	}

	// Cada etapa começa onde a anterior terminou
	if !drafts[0].StartsAt.Equal(start) {
		t.Fatalf("stage 1 starts at %v", drafts[0].StartsAt)
	}
	for i := 1; i < len(drafts); i++ {
		if !drafts[i].StartsAt.Equal(drafts[i-1].EndsAt) {
			t.Fatalf("stage %d starts at %v, previous ends at %v",
				i+1, drafts[i].StartsAt, drafts[i-1].EndsAt)
		}
	}

	end := start.Add(90 * time.Minute)
	if !drafts[2].EndsAt.Equal(end) {
		t.Fatalf("last stage ends at %v, want %v", drafts[2].EndsAt, end)
	}

	if drafts[0].ServiceStageID != 10 || drafts[1].ServiceStageID != 20 || drafts[2].ServiceStageID != 30 {
		t.Fatalf("drafts not ordered by sequence: %+v", drafts)
	}
	if !drafts[0].OccupiesProfessional || drafts[1].OccupiesProfessional {
		t.Fatalf("occupies flags not carried over")
	}
}
