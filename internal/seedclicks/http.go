package seedclicks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with an optional JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// fetchCatalog retrieves the sport and team listings the generator draws from.
func fetchCatalog(ctx context.Context, config *Config) ([]catalogEntry, []catalogEntry, error) {
	client := newHTTPClient(config.Timeout)

	var sports sportsResponse
	if err := getJSON(ctx, client, config.BaseURL+"/api/sports", &sports); err != nil {
		return nil, nil, fmt.Errorf("failed to list sports: %w", err)
	}

	var teams teamsResponse
	if err := getJSON(ctx, client, config.BaseURL+"/api/teams", &teams); err != nil {
		return nil, nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return sports.Sports, teams.Teams, nil
}

// getJSON performs a GET request and decodes the JSON body into out.
func getJSON(ctx context.Context, client *HTTPClient, url string, out interface{}) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// createUsers registers every plan's user id with the service.
func createUsers(ctx context.Context, config *Config, plans []UserPlan) error {
	log.Printf("creating %d users with %d workers...", len(plans), config.Workers)

	client := newHTTPClient(config.Timeout)

	var failed int64

	planChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range planChan {
				select {
				case <-ctx.Done():
					return
				default:
					url := config.BaseURL + "/api/users/initialize/" + plans[index].UserID
					var profile profileResponse
					if err := postJSON(ctx, client, url, nil, &profile); err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to initialize %s: %v", plans[index].UserID, err)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(planChan)
		for i := range plans {
			select {
			case <-ctx.Done():
				return
			case planChan <- i:
			}
		}
	}()

	wg.Wait()

	if n := atomic.LoadInt64(&failed); n > 0 {
		return fmt.Errorf("failed to initialize %d of %d users", n, len(plans))
	}

	log.Printf("created %d users", len(plans))
	return nil
}

// postJSON performs a POST request and decodes the JSON body into out when non-nil.
func postJSON(ctx context.Context, client *HTTPClient, url string, body, out interface{}) error {
	resp, err := client.Post(ctx, url, body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	data, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// submitClicks submits every plan's clicks concurrently using worker pools.
func submitClicks(ctx context.Context, config *Config, plans []UserPlan, stats *Stats) error {
	total := 0
	for _, plan := range plans {
		total += len(plan.Clicks)
	}
	log.Printf("submitting %d clicks with %d workers...", total, config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	type clickJob struct {
		userID string
		click  Click
	}

	clickChan := make(chan clickJob, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range clickChan {
				select {
				case <-ctx.Done():
					return
				default:
					url := config.BaseURL + "/api/track/" + job.userID + "/" + job.click.Kind + "/" + job.click.ID
					err := postJSON(ctx, client, url, nil, nil)

					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to track %s/%s for %s: %v", job.click.Kind, job.click.ID, job.userID, err)
						}
					} else {
						atomic.AddInt64(&successful, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						done := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						fail := atomic.LoadInt64(&failed)
						log.Printf("progress: %d/%d submitted (success: %d, failed: %d)", done, total, succ, fail)
					}
				}
			}
		}()
	}

	go func() {
		defer close(clickChan)
		for _, plan := range plans {
			for _, click := range plan.Clicks {
				select {
				case <-ctx.Done():
					return
				case clickChan <- clickJob{userID: plan.UserID, click: click}:
				}
			}
		}
	}()

	wg.Wait()

	stats.ClicksSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ClicksSuccessful = int(atomic.LoadInt64(&successful))
	stats.ClicksFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`click submission completed:
   successful: %d
   failed: %d
`, stats.ClicksSuccessful, stats.ClicksFailed)

	return nil
}
