// Package valueset translates the codes used in EU health certificates to display text
package valueset

// Lookup returns the display text for a code, or the code itself when it is unknown
func Lookup(code string) string {
	if value, ok := values[code]; ok {
		return value
	}

	return code
}

// Has reports whether the code has a known display text
func Has(code string) bool {
	_, ok := values[code]
	return ok
}
