// Package apperror concentra a taxonomia de erros de negócio da aplicação.
// Toda falha devolvida ao chamador HTTP passa por aqui, para o mapeamento de
// status ficar num lugar só e detalhe interno (erro de driver, stack) não
// vazar na resposta.
package apperror

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindForbidden
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(msg string) error   { return &Error{Kind: KindInvalid, Message: msg} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) error  { return &Error{Kind: KindConflict, Message: msg} }

// KindOf devolve o tipo do erro, ou zero para erros fora da taxonomia.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// Translate converte erros conhecidos da camada de dados para a taxonomia.
// A violação de unicidade do banco vira Conflict: o constraint é a garantia
// real contra corrida, a pré-checagem das services é só atalho.
func Translate(err error, naoEncontrado, conflito string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(naoEncontrado)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(conflito)
	default:
		return err
	}
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// resposta é o envelope de erro padrão da API.
type resposta struct {
	Detail string `json:"detail"`
}

// Write escreve o erro como JSON com o status da taxonomia. Erros fora da
// taxonomia viram 500 com mensagem genérica.
func Write(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "erro interno"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resposta{Detail: msg})
}
