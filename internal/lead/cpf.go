package lead

import "strconv"

// NormalizarCPF descarta tudo que não for dígito.
func NormalizarCPF(cpf string) string {
	digitos := make([]byte, 0, len(cpf))
	for i := 0; i < len(cpf); i++ {
		if cpf[i] >= '0' && cpf[i] <= '9' {
			digitos = append(digitos, cpf[i])
		}
	}
	return string(digitos)
}

// ValidarCPF confere tamanho, sequências repetidas (11111111111 etc.) e os
// dois dígitos verificadores.
func ValidarCPF(cpf string) bool {
	digitos := NormalizarCPF(cpf)
	if len(digitos) != 11 {
		return false
	}

	repetido := true
	for i := 1; i < len(digitos); i++ {
		if digitos[i] != digitos[0] {
			repetido = false
			break
		}
	}
	if repetido {
		return false
	}

	calcularDigito := func(base string, fator int) int {
		total := 0
		for i := 0; i < len(base); i++ {
			total += int(base[i]-'0') * fator
			fator--
		}
		resto := total % 11
		if resto < 2 {
			return 0
		}
		return 11 - resto
	}

	baseNove := digitos[:9]
	primeiro := calcularDigito(baseNove, 10)
	baseDez := baseNove + strconv.Itoa(primeiro)
	segundo := calcularDigito(baseDez, 11)

	return digitos == baseDez+strconv.Itoa(segundo)
}
