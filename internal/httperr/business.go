package httperr

import "errors"

// Kind classifica erros de domínio para mapeamento HTTP e decisão do caller.
type Kind int

const (
	KindBusinessRule Kind = iota
	KindNotFound
	KindConflict
	KindUnexpected
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness — violação de regra de negócio (caller precisa mudar a requisição)
func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindBusinessRule}
}

// ErrNotFound — referência inexistente (cliente, profissional, serviço, agendamento)
func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

// ErrConflict — colisão de horário ou violação de unicidade no storage
func ErrConflict(code string) error {
	return BusinessError{Code: code, Kind: KindConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf devolve a categoria do erro; erros desconhecidos são KindUnexpected.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnexpected
}
