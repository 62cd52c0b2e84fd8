package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const registeredResponse = `   Domain Name: EXAMPLE.COM
   Registry Domain ID: 2336799_DOMAIN_COM-VRSN
   Registrar WHOIS Server: whois.iana.org
   Registrar: RESERVED-Internet Assigned Numbers Authority
   Creation Date: 1995-08-14T04:00:00Z
   Name Server: A.IANA-SERVERS.NET
`

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Availability
	}{
		{"verisign no match", "No match for domain \"FOO.COM\".\r\n>>> Last update of whois database", Available},
		{"no match anywhere in text", "header\nNo match for \"THISISARANDOMDOMAIN.COM\".\n", Available},
		{"not found", "Domain Status: NOT FOUND\n", Available},
		{"no data found", "No Data Found\n", Available},
		{"domain not found", "Domain not found.\n", Available},
		{"registered", registeredResponse, Unavailable},
		{"registrar block", "Registrar: Example Corp\nDomain Status: clientTransferProhibited\n", Unavailable},
		{"empty text", "", Unavailable},
		{"lowercase marker is not recognised", "no match for \"foo.com\"", Unavailable},
		{"uppercase phrase matches NOT FOUND", "DOMAIN NOT FOUND", Available},
		{"other registry phrasing is not recognised", "Status: free\n", Unavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestAvailabilityString(t *testing.T) {
	assert.Equal(t, "available", Available.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}
