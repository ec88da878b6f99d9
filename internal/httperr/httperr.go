package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromDomain traduz um erro de domínio para a resposta HTTP adequada.
func FromDomain(c *gin.Context, err error) {
	var be BusinessError
	code := "internal_error"
	if b, ok := err.(BusinessError); ok {
		be = b
		code = be.Code
	}

	switch KindOf(err) {
	case KindNotFound:
		NotFound(c, code, "Registro não encontrado.")
	case KindConflict:
		Conflict(c, code, "Horário indisponível.")
	case KindBusinessRule:
		Unprocessable(c, code, "Requisição viola regra de agendamento.")
	default:
		Internal(c, code, "Erro interno.")
	}
}
