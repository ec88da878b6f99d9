package schedule

import (
	"testing"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]uint{
		{StateCreated, StateConfirmed},
		{StateCreated, StateCancelled},
		{StateCreated, StateRescheduled},
		{StateConfirmed, StateCancelled},
		{StateConfirmed, StateRescheduled},
		{StateRescheduled, StateConfirmed},
		{StateRescheduled, StateRescheduled},
		{StateRescheduled, StateCancelled},
	}
	for _, tr := range allowed {
		if err := CanTransition(tr[0], tr[1]); err != nil {
			t.Fatalf("expected %s -> %s to be allowed: %v",
				StateName(tr[0]), StateName(tr[1]), err)
		}
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, to := range []uint{StateCreated, StateConfirmed, StateRescheduled, StateCancelled} {
		err := CanTransition(StateCancelled, to)
		if !httperr.IsBusiness(err, "invalid_state_transition") {
			t.Fatalf("expected cancelled -> %s to be rejected, got %v", StateName(to), err)
		}
	}
}

func TestTransitionToUnknownState(t *testing.T) {
	err := CanTransition(StateCreated, 99)
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not found for unknown state, got %v", err)
	}
}

func TestFreesSlot(t *testing.T) {
	if !FreesSlot(StateCancelled) {
		t.Fatalf("cancelled must free the slot")
	}
	for _, id := range []uint{StateCreated, StateConfirmed, StateRescheduled} {
		if FreesSlot(id) {
			t.Fatalf("%s must keep the slot", StateName(id))
		}
	}
}
