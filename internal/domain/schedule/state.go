package schedule

import "github.com/AgendaPlusBR/scheduling-api/internal/httperr"

// ===============================
// Estados do agendamento
// ===============================

const (
	StateCreated     uint = 1
	StateConfirmed   uint = 2
	StateCancelled   uint = 3
	StateRescheduled uint = 4
)

var stateNames = map[uint]string{
	StateCreated:     "created",
	StateConfirmed:   "confirmed",
	StateCancelled:   "cancelled",
	StateRescheduled: "rescheduled",
}

func StateName(id uint) string {
	return stateNames[id]
}

func IsValidState(id uint) bool {
	_, ok := stateNames[id]
	return ok
}

// ===============================
// Transições
// ===============================

// CanTransition valida a máquina de estados. Cancelled é terminal;
// Rescheduled pode transicionar de novo.
func CanTransition(from, to uint) error {
	if !IsValidState(to) {
		return httperr.ErrNotFound("state_not_found")
	}

	switch from {
	case StateCreated, StateConfirmed, StateRescheduled:
		switch to {
		case StateConfirmed, StateCancelled, StateRescheduled:
			return nil
		}
	}

	return httperr.ErrBusiness("invalid_state_transition")
}

// FreesSlot indica se o estado libera o horário para novos agendamentos.
func FreesSlot(id uint) bool {
	return id == StateCancelled
}
