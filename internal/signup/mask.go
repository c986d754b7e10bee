package signup

import "strings"

// maskRunes keeps the first and last rune of s and stars out the rest.
func maskRunes(s string) string {
	runes := []rune(s)
	switch n := len(runes); {
	case n <= 1:
		return s
	case n == 2:
		return string(runes[0]) + "*"
	default:
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	}
}

// maskEmail hides most of the local part and the domain label so the address can
// be logged. Anything that does not look like local@domain.tld is returned as is.
func maskEmail(email string) string {
	local, host, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(host, "@") {
		return email
	}
	domain, tld, ok := strings.Cut(host, ".")
	if !ok {
		return email
	}
	return maskRunes(local) + "@" + maskRunes(domain) + "." + tld
}
