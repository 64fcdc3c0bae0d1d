package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarCPF(t *testing.T) {
	assert.Equal(t, "11144477735", NormalizarCPF("111.444.777-35"))
	assert.Equal(t, "11144477735", NormalizarCPF("11144477735"))
	assert.Equal(t, "", NormalizarCPF("abc"))
}

func TestValidarCPF(t *testing.T) {
	casos := []struct {
		nome   string
		cpf    string
		valido bool
	}{
		{"válido sem máscara", "11144477735", true},
		{"válido com máscara", "111.444.777-35", true},
		{"outro válido", "52998224725", true},
		{"dígito verificador errado", "11144477734", false},
		{"curto demais", "1114447773", false},
		{"longo demais", "111444777350", false},
		{"sequência repetida", "11111111111", false},
		{"zeros repetidos", "00000000000", false},
		{"vazio", "", false},
		{"só letras", "abcdefghijk", false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.valido, ValidarCPF(c.cpf))
		})
	}
}
