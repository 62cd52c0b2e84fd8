package check

// Verdict is the outcome of a successful check.
type Verdict struct {
	Domain    string
	Available bool
	WhoisData string
}
