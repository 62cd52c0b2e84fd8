package handler

import "domaincheck/internal/check"

// CheckResponse is the body of a successful check.
type CheckResponse struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
	WhoisData string `json:"whoisData,omitempty"`
}

// CheckErrorResponse is the body of a failed check. Available is always
// serialized as null.
type CheckErrorResponse struct {
	Error     string `json:"error"`
	Available *bool  `json:"available"`
}

func toCheckResponse(v *check.Verdict, includeWhoisData bool) CheckResponse {
	res := CheckResponse{
		Domain:    v.Domain,
		Available: v.Available,
	}
	if includeWhoisData {
		res.WhoisData = v.WhoisData
	}
	return res
}
