package check

import "strings"

// notFoundMarkers are the registry phrases that mean "no such registration".
// The list is matched verbatim and case-sensitively; callers depend on it not
// growing.
var notFoundMarkers = []string{
	"No match for",
	"NOT FOUND",
	"No Data Found",
	"Domain not found",
}

// Availability is the classifier's verdict on a WHOIS response.
type Availability int

const (
	Unavailable Availability = iota
	Available
)

func (a Availability) String() string {
	if a == Available {
		return "available"
	}
	return "unavailable"
}

// Classify decides availability from raw WHOIS text. Any text without a
// not-found marker counts as registered.
func Classify(whoisText string) Availability {
	for _, marker := range notFoundMarkers {
		if strings.Contains(whoisText, marker) {
			return Available
		}
	}
	return Unavailable
}
