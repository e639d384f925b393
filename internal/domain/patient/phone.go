package patient

import "strings"

// NormalizePhone mantém só os dígitos (e um "+" inicial), para que
// "(11) 98888-7777" e "11988887777" encontrem o mesmo paciente.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
