// Command domaincheck is a small client for the domain availability API.
//
//	domaincheck [flags] [domain...]
//	domaincheck hash-key <api-key>
//	domaincheck gen-key
//
// Without domain arguments it checks a fixed sample set, including one
// malformed name.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"domaincheck/internal/client"
	"domaincheck/pkg/platform/secrets"
	platformstrings "domaincheck/pkg/platform/strings"
)

const defaultAPIKey = "example_api_token_for_testing"

var sampleDomains = []string{
	"google.com",
	"example.com",
	"thisisarandomdomainthatprobablydoesnotexist12345.com",
	"invalid-domain",
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain returns the process exit code so deferred cleanup runs before main
// exits.
func realMain(args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: .env not loaded: %v\n", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "hash-key":
			return hashKey(stdout, stderr, args[1:])
		case "gen-key":
			return genKey(stdout, stderr)
		}
	}

	flags := flag.NewFlagSet("domaincheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		baseURL   = flags.String("url", envOr("DOMAINCHECK_URL", "http://localhost:3000"), "API base URL")
		apiKey    = flags.String("key", envOr("API_TOKEN", defaultAPIKey), "API key exchanged for a bearer token")
		noAuth    = flags.Bool("no-auth", false, "skip token exchange (server runs with AUTH_ENABLED=false)")
		showWhois = flags.Bool("whois", false, "print the raw WHOIS text")
	)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: domaincheck [flags] [domain...]\n")
		fmt.Fprintf(stderr, "       domaincheck hash-key <api-key>\n")
		fmt.Fprintf(stderr, "       domaincheck gen-key\n\nflags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	domains := platformstrings.DedupeDomains(flags.Args())
	if len(domains) == 0 {
		domains = sampleDomains
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, client.New(*baseURL), options{
		apiKey:    *apiKey,
		noAuth:    *noAuth,
		showWhois: *showWhois,
	}, domains, stdout, stderr)
}

type options struct {
	apiKey    string
	noAuth    bool
	showWhois bool
}

// run returns 1 when the token cannot be obtained and 2 when at least one check
// failed.
func run(ctx context.Context, c *client.Client, opts options, domains []string, stdout, stderr io.Writer) int {
	var token string
	if !opts.noAuth {
		fmt.Fprintln(stdout, "Obtaining authentication token...")
		t, err := c.Token(ctx, opts.apiKey)
		if err != nil {
			fmt.Fprintf(stderr, "Error obtaining token: %v\n", err)
			return 1
		}
		token = t
		fmt.Fprintln(stdout, "Token obtained successfully")
	}

	code := 0
	for _, domain := range domains {
		fmt.Fprintf(stdout, "Checking availability for domain: %s\n", domain)
		res, err := c.Check(ctx, token, domain)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			code = 2
			continue
		}
		fmt.Fprintf(stdout, "Domain: %s\n", res.Domain)
		fmt.Fprintf(stdout, "Available: %s\n", yesNo(res.Available))
		if opts.showWhois {
			fmt.Fprintf(stdout, "WHOIS Data:\n%s\n", res.WhoisData)
		}
		fmt.Fprintln(stdout, "---")
	}
	return code
}

func hashKey(stdout, stderr io.Writer, args []string) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(stderr, "usage: domaincheck hash-key <api-key>")
		return 1
	}
	hash, err := secrets.Hash(args[0])
	if err != nil {
		fmt.Fprintln(stderr, "hash failed:", err)
		return 1
	}
	fmt.Fprintln(stdout, hash)
	return 0
}

func genKey(stdout, stderr io.Writer) int {
	key, err := secrets.Generate()
	if err != nil {
		fmt.Fprintln(stderr, "generate failed:", err)
		return 1
	}
	fmt.Fprintln(stdout, key)
	return 0
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
