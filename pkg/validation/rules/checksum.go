package rules

import "strings"

// digits strips everything but decimal digits ("111.111.111-11" → "11111111111").
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSameDigits reports whether every digit is identical. Sequences like
// "11111111111" satisfy the CPF checksum but are known-invalid registrations.
func allSameDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// validCPF verifies an 11-digit CPF check pair (módulo 11).
func validCPF(cpf string) bool {
	if len(cpf) != 11 || allSameDigits(cpf) {
		return false
	}

	for _, pos := range []int{9, 10} {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(cpf[i]-'0') * (pos + 1 - i)
		}
		check := (sum * 10) % 11 % 10
		if check != int(cpf[pos]-'0') {
			return false
		}
	}
	return true
}

// validCNPJ verifies a 14-digit CNPJ check pair.
func validCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || allSameDigits(cnpj) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	check := func(weights []int) int {
		sum := 0
		for i, w := range weights {
			sum += int(cnpj[i]-'0') * w
		}
		rem := sum % 11
		if rem < 2 {
			return 0
		}
		return 11 - rem
	}

	return check(weights1) == int(cnpj[12]-'0') &&
		check(weights2) == int(cnpj[13]-'0')
}

// validCNS verifies a 15-digit Cartão Nacional de Saúde number. Numbers
// starting 1/2 are definitive registrations validated by reconstructing the
// check digit; 7/8/9 are provisional and validated by a weighted sum.
func validCNS(cns string) bool {
	if len(cns) != 15 {
		return false
	}
	for i := 0; i < len(cns); i++ {
		if cns[i] < '0' || cns[i] > '9' {
			return false
		}
	}

	switch cns[0] {
	case '1', '2':
		return validCNSDefinitive(cns)
	case '7', '8', '9':
		return weightedSum(cns)%11 == 0
	default:
		return false
	}
}

func validCNSDefinitive(cns string) bool {
	sum := 0
	for i := 0; i < 11; i++ {
		sum += int(cns[i]-'0') * (15 - i)
	}

	dv := 11 - sum%11
	if dv == 11 {
		dv = 0
	}

	var tail string
	if dv == 10 {
		dv = 11 - (sum+2)%11
		tail = "001" + string(rune('0'+dv))
	} else {
		tail = "000" + string(rune('0'+dv))
	}

	return cns[11:] == tail
}

func weightedSum(cns string) int {
	sum := 0
	for i := 0; i < 15; i++ {
		sum += int(cns[i]-'0') * (15 - i)
	}
	return sum
}
