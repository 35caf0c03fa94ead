package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/altersport/internal/seedclicks"
)

// Default configuration constants.
const (
	defaultNumUsers      = 100
	defaultClicksPerUser = 20
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8888", "Base URL of the service")
		numUsers   = flag.Int("users", defaultNumUsers, "Number of synthetic users to create")
		clicks     = flag.Int("clicks", defaultClicksPerUser, "Number of clicks to submit per user")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated plans (default: seed_plans_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedclicks.ShowHelp()
		return
	}

	// Setup logging
	if err := seedclicks.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &seedclicks.Config{
		BaseURL:       *baseURL,
		NumUsers:      *numUsers,
		ClicksPerUser: *clicks,
		Workers:       *workers,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the seeding pass
	if err := seedclicks.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
