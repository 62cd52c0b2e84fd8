package check

import "regexp"

// domainPattern accepts a single label of 3 to 63 characters followed by an
// alphabetic TLD. The grammar is deliberately coarse: it rejects empty labels,
// leading or trailing hyphens and missing TLDs, and nothing more.
var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{1,61}[a-zA-Z0-9]\.[a-zA-Z]{2,}$`)

// ValidDomain reports whether s is a syntactically acceptable domain name.
func ValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}
