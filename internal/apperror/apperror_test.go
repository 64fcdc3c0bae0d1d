package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalid, KindOf(Invalid("x")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("x")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindConflict, KindOf(Conflict("x")))
	assert.Equal(t, Kind(0), KindOf(errors.New("qualquer")))

	// Erros embrulhados continuam classificáveis.
	embrulhado := fmt.Errorf("contexto: %w", NotFound("lead não encontrado"))
	assert.Equal(t, KindNotFound, KindOf(embrulhado))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil, "a", "b"))

	err := Translate(gorm.ErrRecordNotFound, "lead não encontrado", "")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "lead não encontrado", err.Error())

	err = Translate(gorm.ErrDuplicatedKey, "", "cpf já cadastrado")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "cpf já cadastrado", err.Error())

	outro := errors.New("conexão caiu")
	assert.Same(t, outro, Translate(outro, "a", "b"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Invalid("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Conflict("cpf já cadastrado"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var corpo map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corpo))
	assert.Equal(t, "cpf já cadastrado", corpo["detail"])
}

func TestWriteErroInterno(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("senha do banco no log"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var corpo map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corpo))
	// Detalhe interno não vaza na resposta.
	assert.Equal(t, "erro interno", corpo["detail"])
}
