package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	appCount       = 20 // Number of distinct app ids (users)
	pingsPerApp    = 4  // Pings per app id; only the first one opens a session
	tzOffsetMinute = 0  // Client offset sent with every ping
)

// ### End - fixed configs

type ping struct {
	AppID string `json:"aid"`
	TZ    int    `json:"tz"`
}

type rangeResult struct {
	Kind     string `json:"kind"`
	StartDay string `json:"startDay"`
	EndDay   string `json:"endDay"`
	Result   int64  `json:"result"`
}

// main runs the e2e scenario: 001_record_and_rollup
//
// This scenario tests the end-to-end flow of activity recording, daily rollups
// and rollup queries against a running server.
//
// What it tests:
//   - Ping recording via POST /analytics/record
//   - Session windowing: repeated pings from one app id continue its session
//   - Daily rollup via GET /analyzer/daily/{scope}?date= and via the cron task route
//   - Idempotency: a second rollup of the same day returns 205 Reset Content
//   - Rejection of incomplete periods (today) with 400
//   - Query of a computed day, and of a custom range over it
//
// Expected results:
//   - appCount pings return 204 (new session), the rest return 205 (continued) or 429 (rate limited)
//   - The first rollup of yesterday returns 204 or 205 (if the scheduler got there first)
//   - Any later rollup of yesterday returns 205
//   - Rolling up today returns 400
//   - Querying yesterday returns 200 with kind UsageAnalytics#DailyUsers
//   - The custom range over yesterday returns the same result as the daily query
//
// Pings land on today, so the rolled-up counts for yesterday only include
// activity recorded by earlier runs.
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the usage analytics API server
	parallel := 4                      // Number of concurrent ping requests to send
	runID := time.Now().UTC().Format("150405")

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	fmt.Println("Starting e2e scenario: 001_record_and_rollup")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("APP_COUNT: %d\n", appCount)
	fmt.Printf("PINGS_PER_APP: %d\n", pingsPerApp)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TODAY: %s\n", today)
	fmt.Printf("YESTERDAY: %s\n", yesterday)
	fmt.Println()

	client := &http.Client{Timeout: 30 * time.Second}

	// Step 1: record pings. The first round opens one session per app id,
	// the following rounds continue them.
	var created, continued, limited, failed int64
	for round := 0; round < pingsPerApp; round++ {
		workerChan := make(chan struct{}, parallel)
		var wg sync.WaitGroup

		for i := 0; i < appCount; i++ {
			wg.Add(1)
			workerChan <- struct{}{} // Acquire worker slot

			go func(appID string) {
				defer wg.Done()
				defer func() { <-workerChan }() // Release worker slot

				statusCode, err := sendPing(client, baseURL, ping{AppID: appID, TZ: tzOffsetMinute})
				if err != nil {
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: ping %s failed: %v\n", appID, err)
					return
				}

				switch statusCode {
				case http.StatusNoContent:
					atomic.AddInt64(&created, 1)
				case http.StatusResetContent:
					atomic.AddInt64(&continued, 1)
				case http.StatusTooManyRequests:
					atomic.AddInt64(&limited, 1)
				default:
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: ping %s returned %d\n", appID, statusCode)
				}
			}(fmt.Sprintf("e2e-%s-app-%03d", runID, i))
		}
		wg.Wait()
	}

	fmt.Println("=== Ping statistics ===")
	fmt.Printf("New sessions (204): %d\n", created)
	fmt.Printf("Continued sessions (205): %d\n", continued)
	fmt.Printf("Rate limited (429): %d\n", limited)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println()

	if failed > 0 {
		exitf("%d pings failed", failed)
	}
	if created+limited < appCount {
		exitf("expected at least %d new sessions, got %d", appCount-limited, created)
	}

	// Step 2: incomplete periods are rejected
	statusCode, _, err := get(client, fmt.Sprintf("%s/analyzer/daily/users?date=%s", baseURL, today))
	if err != nil {
		exitf("rollup of today failed: %v", err)
	}
	if statusCode != http.StatusBadRequest {
		exitf("rollup of today: expected 400, got %d", statusCode)
	}
	fmt.Printf("Rollup of today rejected (%d)\n", statusCode)

	// Step 3: roll up yesterday for both scopes, twice
	for _, scope := range []string{"users", "sessions"} {
		url := fmt.Sprintf("%s/analyzer/daily/%s?date=%s", baseURL, scope, yesterday)

		first, _, err := get(client, url)
		if err != nil {
			exitf("rollup of %s failed: %v", scope, err)
		}
		if first != http.StatusNoContent && first != http.StatusResetContent {
			exitf("first rollup of %s: expected 204 or 205, got %d", scope, first)
		}

		second, _, err := get(client, url)
		if err != nil {
			exitf("second rollup of %s failed: %v", scope, err)
		}
		if second != http.StatusResetContent {
			exitf("second rollup of %s: expected 205, got %d", scope, second)
		}
		fmt.Printf("Rollup of %s on %s: first=%d second=%d\n", scope, yesterday, first, second)
	}

	// Step 4: the cron task route rolls up yesterday too, which is already done
	statusCode, _, err = get(client, baseURL+"/tasks/daily/users")
	if err != nil {
		exitf("task trigger failed: %v", err)
	}
	if statusCode != http.StatusResetContent {
		exitf("task trigger: expected 205, got %d", statusCode)
	}
	fmt.Printf("Task trigger of daily users: %d\n", statusCode)

	// Step 5: query the computed day, then the same day as a custom range
	statusCode, body, err := get(client, fmt.Sprintf("%s/analytics/query/daily/users?date=%s", baseURL, yesterday))
	if err != nil {
		exitf("daily query failed: %v", err)
	}
	if statusCode != http.StatusOK {
		exitf("daily query: expected 200, got %d: %s", statusCode, body)
	}
	var daily rangeResult
	if err := json.Unmarshal(body, &daily); err != nil {
		exitf("daily query: invalid body %s: %v", body, err)
	}
	if daily.Kind != "UsageAnalytics#DailyUsers" || daily.StartDay != yesterday || daily.EndDay != yesterday {
		exitf("daily query: unexpected result %+v", daily)
	}
	fmt.Printf("Daily users on %s: %d\n", yesterday, daily.Result)

	statusCode, body, err = get(client, fmt.Sprintf("%s/analytics/query/custom/users?start=%s&end=%s", baseURL, yesterday, yesterday))
	if err != nil {
		exitf("custom query failed: %v", err)
	}
	if statusCode != http.StatusOK {
		exitf("custom query: expected 200, got %d: %s", statusCode, body)
	}
	var custom rangeResult
	if err := json.Unmarshal(body, &custom); err != nil {
		exitf("custom query: invalid body %s: %v", body, err)
	}
	if custom.Result != daily.Result {
		exitf("custom query: expected %d, got %d", daily.Result, custom.Result)
	}
	fmt.Printf("Custom range users %s..%s: %d\n", yesterday, yesterday, custom.Result)

	fmt.Println()
	fmt.Println("Scenario completed successfully")
}

func sendPing(client *http.Client, baseURL string, p ping) (int, error) {
	jsonData, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal ping: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/analytics/record", bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func get(client *http.Client, url string) (int, []byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
