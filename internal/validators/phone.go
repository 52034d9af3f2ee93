package validators

import "strings"

// PhoneDigits remove tudo que não é dígito: "(11) 98888-7777" vira "11988887777".
func PhoneDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid aceita DDD + número fixo (10 dígitos) ou celular (11 dígitos).
func IsPhoneValid(phone string) bool {
	n := len(PhoneDigits(phone))
	return n == 10 || n == 11
}
