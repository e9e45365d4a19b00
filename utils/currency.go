package utils

import "fmt"

// FormatCurrencyIDR memformat nominal rupiah (tanpa sub-unit) dengan
// pemisah ribuan. Contoh: 30000 -> "Rp 30.000"
func FormatCurrencyIDR(amount int64) string {
	if amount < 0 {
		return "-" + FormatCurrencyIDR(-amount)
	}

	digits := fmt.Sprintf("%d", amount)
	out := ""
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out += "."
		}
		out += string(d)
	}
	return "Rp " + out
}
