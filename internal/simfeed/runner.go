package simfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fightlab/ringside/pkg/logger"
)

// Run executes a full feed: register a match, add rounds, stream the
// detections, then read back per-round statistics.
func Run(ctx context.Context, cfg *Config) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get().Named("simfeed")

	stats := &Stats{StartTime: time.Now()}
	client := &http.Client{Timeout: cfg.Timeout}

	matchID, fighterIDs, err := createMatch(ctx, client, cfg)
	if err != nil {
		return err
	}
	log.Info(ctx, "match registered", logger.String("match_id", matchID))

	for n := 1; n <= cfg.Rounds; n++ {
		if err := addRound(ctx, client, cfg, matchID, n); err != nil {
			return err
		}
	}
	log.Info(ctx, "rounds created", logger.Int("rounds", cfg.Rounds))

	detections := generateDetections(cfg, matchID, fighterIDs)
	stats.DetectionsGenerated = len(detections)

	if err := submitDetections(ctx, client, cfg, detections, stats); err != nil {
		return err
	}

	for n := 1; n <= cfg.Rounds; n++ {
		if err := reportRound(ctx, client, cfg, log, matchID, n); err != nil {
			log.Warn(ctx, "statistics read failed", logger.Int("round", n), logger.Error(err))
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "feed complete",
		logger.Int("generated", stats.DetectionsGenerated),
		logger.Int("accepted", stats.DetectionsAccepted),
		logger.Int("duplicate", stats.DetectionsDuplicate),
		logger.Int("failed", stats.DetectionsFailed),
		logger.String("duration", stats.Duration.String()),
	)
	return nil
}

func postJSON(ctx context.Context, client *http.Client, url string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func createMatch(ctx context.Context, client *http.Client, cfg *Config) (string, [2]string, error) {
	fighterIDs := [2]string{"sim-fighter-red", "sim-fighter-blue"}
	body := map[string]any{
		"fighters": []map[string]any{
			{"id": fighterIDs[0], "name": "Red Corner", "weight": 72.5, "stance": "orthodox", "reach": 182},
			{"id": fighterIDs[1], "name": "Blue Corner", "weight": 71.8, "stance": "southpaw", "reach": 179},
		},
		"tournament": "Simulated Feed Cup",
		"date":       time.Now().UTC().Format(time.RFC3339),
	}

	var created struct {
		ID string `json:"id"`
	}
	status, err := postJSON(ctx, client, cfg.BaseURL+"/matches", body, &created)
	if err != nil {
		return "", fighterIDs, fmt.Errorf("create match: %w", err)
	}
	if status != http.StatusCreated {
		return "", fighterIDs, fmt.Errorf("create match: unexpected status %d", status)
	}
	return created.ID, fighterIDs, nil
}

func addRound(ctx context.Context, client *http.Client, cfg *Config, matchID string, number int) error {
	body := map[string]any{"number": number, "duration": roundDurationSeconds}
	status, err := postJSON(ctx, client, fmt.Sprintf("%s/matches/%s/rounds", cfg.BaseURL, matchID), body, nil)
	if err != nil {
		return fmt.Errorf("add round %d: %w", number, err)
	}
	if status != http.StatusCreated {
		return fmt.Errorf("add round %d: unexpected status %d", number, status)
	}
	return nil
}

// submitDetections streams the batch through a small worker pool and
// re-sends a configurable fraction with used event ids to exercise the
// dedupe path.
func submitDetections(ctx context.Context, client *http.Client, cfg *Config, detections []detection, stats *Stats) error {
	var (
		submitted int64
		accepted  int64
		duplicate int64
		failed    int64
	)

	detectionChan := make(chan detection, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range detectionChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				switch submitSingleDetection(ctx, client, cfg, d) {
				case "accepted":
					atomic.AddInt64(&accepted, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(detectionChan)
		for _, d := range detections {
			select {
			case <-ctx.Done():
				return
			case detectionChan <- d:
			}
			if randomFloat() < cfg.DuplicateRate {
				select {
				case <-ctx.Done():
					return
				case detectionChan <- d:
				}
			}
		}
	}()

	wg.Wait()

	stats.DetectionsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.DetectionsAccepted = int(atomic.LoadInt64(&accepted))
	stats.DetectionsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.DetectionsFailed = int(atomic.LoadInt64(&failed))
	return nil
}

func submitSingleDetection(ctx context.Context, client *http.Client, cfg *Config, d detection) string {
	var ack ackResponse
	status, err := postJSON(ctx, client, cfg.BaseURL+"/detections", d, &ack)
	if err != nil {
		return "failed"
	}
	switch status {
	case http.StatusAccepted:
		return "accepted"
	case http.StatusOK:
		if ack.Duplicate {
			return "duplicate"
		}
		return "accepted"
	default:
		return "failed"
	}
}

func reportRound(ctx context.Context, client *http.Client, cfg *Config, log logger.Logger, matchID string, number int) error {
	url := fmt.Sprintf("%s/matches/%s/rounds/%d/statistics", cfg.BaseURL, matchID, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var entries []struct {
		FighterID    string `json:"fighterId"`
		TotalStrikes int    `json:"totalStrikes"`
		CleanHits    int    `json:"cleanHits"`
		Points       int    `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return err
	}
	for _, e := range entries {
		log.Info(ctx, "round statistics",
			logger.Int("round", number),
			logger.String("fighter_id", e.FighterID),
			logger.Int("strikes", e.TotalStrikes),
			logger.Int("clean", e.CleanHits),
			logger.Int("points", e.Points),
		)
	}
	return nil
}
