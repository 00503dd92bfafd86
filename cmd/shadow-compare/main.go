// Command shadow-compare replays read-only requests against the legacy API and the Go
// API and reports where their responses diverge.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	var (
		opts        compareOptions
		targetsPath string
		ignore      string
		timeout     time.Duration
	)

	flag.StringVar(&opts.GoBase, "go-base", "http://localhost:8080/api", "Go API base URL including the API prefix")
	flag.StringVar(&opts.LegacyBase, "legacy-base", "http://localhost:3000", "legacy API base URL")
	flag.StringVar(&opts.Token, "token", os.Getenv("SHADOW_TOKEN"), "bearer token sent to both sides")
	flag.StringVar(&targetsPath, "targets", filepath.Join("cmd", "shadow-compare", "targets.json"), "path to JSON targets file")
	flag.StringVar(&ignore, "ignore", "signInDate,checkin_time,leave_doc_url,leave_doc_expires_at", "comma separated JSON keys excluded from body comparison")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}
	opts.IgnoreKeys = splitKeys(ignore)

	client := &http.Client{Timeout: timeout}
	results := make([]comparison, 0, len(targets))
	for _, t := range targets {
		results = append(results, compareTarget(client, opts, t))
	}

	printReport(os.Stdout, results)

	breaking, optional := tally(results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func splitKeys(raw string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = struct{}{}
		}
	}
	return keys
}
