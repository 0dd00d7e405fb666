// Package cpf validates Brazilian CPF numbers (11 digits, two trailing
// check digits computed mod 11).
package cpf

// Valid reports whether s is a well-formed CPF. Malformed input is
// simply invalid; the function never panics.
func Valid(s string) bool {
	if len(s) != 11 {
		return false
	}
	allSame := true
	for i := 0; i < 11; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		if s[i] != s[0] {
			allSame = false
		}
	}
	// Degenerate sequences like 11111111111 pass the checksum but are blocked.
	if allSame {
		return false
	}

	sum, weight := 0, 10
	for i := 0; i < 9; i++ {
		sum += int(s[i]-'0') * weight
		weight--
	}
	d1 := 11 - sum%11
	if d1 >= 10 {
		d1 = 0
	}

	sum, weight = 0, 11
	for i := 0; i < 10; i++ {
		sum += int(s[i]-'0') * weight
		weight--
	}
	d2 := 11 - sum%11
	if d2 >= 10 {
		d2 = 0
	}

	return int(s[9]-'0') == d1 && int(s[10]-'0') == d2
}
