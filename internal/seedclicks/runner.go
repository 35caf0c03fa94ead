package seedclicks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/altersport/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding and verification pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting altersport click seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.NumUsers),
		logger.Int("clicksPerUser", config.ClicksPerUser),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the catalog the plans draw from
	sports, teams, err := fetchCatalog(ctx, config)
	if err != nil {
		return fmt.Errorf("catalog fetch failed: %w", err)
	}

	// Step 3: Generate click plans
	plans, err := generatePlans(ctx, config, sports, teams, stats)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	// Step 4: Create the users
	if err := createUsers(ctx, config, plans); err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	// Step 5: Submit clicks concurrently
	if err := submitClicks(ctx, config, plans, stats); err != nil {
		return fmt.Errorf("click submission failed: %w", err)
	}

	// Step 6: Give the store a moment to settle
	logger.Get().Info(ctx, "waiting for clicks to settle")
	time.Sleep(SettleDelay)

	// Step 7: Fetch recommendation surfaces concurrently
	surfaces, err := fetchSurfaces(ctx, config, plans, stats)
	if err != nil {
		return fmt.Errorf("surface retrieval failed: %w", err)
	}

	// Step 8: Verify surfaces against the plans
	if err := verifySurfaces(plans, surfaces, stats); err != nil {
		return fmt.Errorf("surface verification failed: %w", err)
	}

	// Step 9: Save plans to file
	if err := savePlansToFile(ctx, config, plans); err != nil {
		logger.Get().Warn(ctx, "failed to save plans to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/health"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// savePlansToFile saves the generated click plans to a JSON file.
func savePlansToFile(ctx context.Context, config *Config, plans []UserPlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no plans to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seed_plans_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plans); err != nil {
		return fmt.Errorf("failed to write plans: %w", err)
	}

	logger.Get().Info(ctx, "plans saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, clicksPerSecond float64

	if stats.ClicksSubmitted > 0 {
		successRate = float64(stats.ClicksSuccessful) / float64(stats.ClicksSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		clicksPerSecond = float64(stats.ClicksSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("usersCreated", stats.UsersCreated),
		logger.Int("clicksGenerated", stats.ClicksGenerated),
		logger.Int("clicksSubmitted", stats.ClicksSubmitted),
		logger.Int("clicksSuccessful", stats.ClicksSuccessful),
		logger.Int("clicksFailed", stats.ClicksFailed),
		logger.Int("surfacesFetched", stats.SurfacesFetched),
		logger.Int("usersVerified", stats.UsersVerified),
		logger.Int("usersMismatched", stats.UsersMismatched),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("clicksPerSecond", clicksPerSecond))
}
