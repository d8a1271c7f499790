package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"simhire-backend/pkg/client"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8080/api"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	baseURL := os.Getenv("SIMHIRE_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	api := client.New(baseURL, client.NewSession(os.Getenv("SIMHIRE_TOKEN")), nil)

	var err error
	switch args[0] {
	case "applicants":
		err = handleApplicants(ctx, api, args[1:], stdout)
	case "stats":
		err = handleStats(ctx, api, args[1:], stdout)
	case "leaderboard":
		err = handleLeaderboard(ctx, api, args[1:], stdout)
	case "bulk-status":
		err = handleBulkStatus(ctx, api, args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuth() {
			fmt.Fprintln(stderr, "Set SIMHIRE_TOKEN to a valid company token.")
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "simhirectl: manage SimHire applicant pipelines from the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  simhirectl applicants  [-kind job|internship] [-stage s] [-posting id] [-q text] [-min-gpa n] [-university u]")
	fmt.Fprintln(w, "  simhirectl stats       [-kind job|internship]")
	fmt.Fprintln(w, "  simhirectl leaderboard -category id [-limit n]")
	fmt.Fprintln(w, "  simhirectl bulk-status [-kind job|internship] -stage s id...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SIMHIRE_API_URL   API base URL (default "+defaultAPIURL+")")
	fmt.Fprintln(w, "  SIMHIRE_TOKEN     Bearer token of a company account")
}
