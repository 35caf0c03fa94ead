package seedclicks

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// fetchSurfaces retrieves the homepage surface for every seeded user concurrently.
func fetchSurfaces(ctx context.Context, config *Config, plans []UserPlan, stats *Stats) ([]homepageResponse, error) {
	log.Printf("fetching homepage surfaces for %d users with %d workers...", len(plans), config.Workers)

	client := newHTTPClient(config.Timeout)

	surfaces := make([]homepageResponse, len(plans))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

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
					url := config.BaseURL + "/api/recommend/" + plans[index].UserID + "/homepage"
					var surface homepageResponse
					if err := getJSON(ctx, client, url, &surface); err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to fetch surface for %s: %v", plans[index].UserID, err)
						}
					} else {
						surfaces[index] = surface
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						log.Printf("surface progress: %d/%d fetched (success: %d, failed: %d)",
							total, len(plans), atomic.LoadInt64(&retrieved), atomic.LoadInt64(&failed))
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

	stats.SurfacesFetched = int(atomic.LoadInt64(&retrieved))

	log.Printf(`surface retrieval completed:
   retrieved: %d
   failed: %d
`, stats.SurfacesFetched, int(atomic.LoadInt64(&failed)))

	return surfaces, nil
}
