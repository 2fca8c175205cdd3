package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tidewise/tidewise/internal/conditions"
	"github.com/tidewise/tidewise/internal/forecast"
	"github.com/tidewise/tidewise/internal/spots"
)

// Refresh triggers.
const (
	TriggerSchedule = "schedule"
	TriggerPubSub   = "pubsub"
	TriggerStartup  = "startup"
)

// Refresh outcomes.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Forecaster is the part of the forecast service the job drives.
type Forecaster interface {
	Warm(ctx context.Context, loc forecast.Location) error
	AllConditions(ctx context.Context, loc forecast.Location) (map[conditions.Sport]*conditions.Condition, error)
	Tides(ctx context.Context, loc forecast.Location) (*forecast.TideData, error)
}

// Recorder receives a summary of every run.
type Recorder interface {
	ObserveRefresh(trigger, outcome string, spots int, elapsed time.Duration, finished time.Time)
}

// RefreshJob warms the forecast cache and scores every sport for each spot.
type RefreshJob struct {
	config   RefreshConfig
	logger   zerolog.Logger
	forecast Forecaster
	recorder Recorder
	now      func() time.Time

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRefreshes    int64
	SuccessfulRefresh int64
	FailedRefreshes   int64
	SportsScored      int64
	TideRefreshes     int64

	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	LastOutcome         string
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config   RefreshConfig
	Logger   zerolog.Logger
	Forecast Forecaster

	// Recorder is optional.
	Recorder Recorder

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewRefreshJob creates a new refresh job.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &RefreshJob{
		config:   cfg.Config.withDefaults(),
		logger:   cfg.Logger,
		forecast: cfg.Forecast,
		recorder: cfg.Recorder,
		now:      now,
		metrics:  &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	Trigger      string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalSpots   int
	Successful   int
	Failed       int
	SportsScored int
	Errors       []RefreshError
}

// Outcome classifies the run for metrics.
func (r *RefreshResult) Outcome() string {
	switch {
	case r.Failed == 0:
		return OutcomeSuccess
	case r.Successful == 0:
		return OutcomeFailed
	default:
		return OutcomePartial
	}
}

// RefreshError records a failure for one spot. Stage is "warm" or "score".
type RefreshError struct {
	SpotID string
	Stage  string
	Error  string
}

// Run refreshes every configured spot.
func (j *RefreshJob) Run(ctx context.Context, trigger string) *RefreshResult {
	return j.run(ctx, trigger, j.config.Spots)
}

func (j *RefreshJob) run(ctx context.Context, trigger string, targets []spots.Spot) *RefreshResult {
	startTime := j.now()
	result := &RefreshResult{
		Trigger:    trigger,
		StartTime:  startTime,
		TotalSpots: len(targets),
	}

	j.logger.Info().
		Str("trigger", trigger).
		Int("total_spots", result.TotalSpots).
		Int("concurrency", j.config.Concurrency).
		Msg("starting spot refresh")

	spotsChan := make(chan spots.Spot, len(targets))
	resultsChan := make(chan spotResult, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, spotsChan, resultsChan)
		}()
	}

	for _, s := range targets {
		spotsChan <- s
	}
	close(spotsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	done := 0
	for sr := range resultsChan {
		done++
		if sr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.SportsScored += sr.scored
		result.Errors = append(result.Errors, sr.errors...)
	}
	// Spots skipped after cancellation count as failed.
	result.Failed += result.TotalSpots - done

	result.EndTime = j.now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)
	if j.recorder != nil {
		j.recorder.ObserveRefresh(trigger, result.Outcome(), result.Successful, result.Duration, result.EndTime)
	}

	j.logger.Info().
		Str("trigger", trigger).
		Str("outcome", result.Outcome()).
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("sports_scored", result.SportsScored).
		Msg("spot refresh completed")

	return result
}

type spotResult struct {
	success bool
	scored  int
	errors  []RefreshError
}

func (j *RefreshJob) refreshWorker(ctx context.Context, targets <-chan spots.Spot, results chan<- spotResult) {
	for s := range targets {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshSpot(ctx, s)
		}
	}
}

// refreshSpot warms the caches then scores every sport. A failed warm is
// recorded but only a failed scoring pass fails the spot, since a spot
// with waves but no wind can still be scored for surfing.
func (j *RefreshJob) refreshSpot(ctx context.Context, s spots.Spot) spotResult {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	loc := s.Location()
	var result spotResult

	if err := j.forecast.Warm(ctx, loc); err != nil {
		result.errors = append(result.errors, RefreshError{SpotID: s.ID, Stage: "warm", Error: err.Error()})
		j.logger.Warn().Err(err).Str("spot", s.ID).Msg("cache warm incomplete")
	}

	scored, err := j.forecast.AllConditions(ctx, loc)
	if err != nil {
		result.errors = append(result.errors, RefreshError{SpotID: s.ID, Stage: "score", Error: err.Error()})
		j.logger.Error().Err(err).Str("spot", s.ID).Msg("spot refresh failed")
		return result
	}

	result.success = true
	result.scored = len(scored)
	return result
}

// RefreshTides loads tide predictions for every configured station.
// Tides are per station, so they are refreshed once rather than per spot.
func (j *RefreshJob) RefreshTides(ctx context.Context) error {
	if !j.config.RefreshTides {
		return nil
	}

	j.logger.Debug().Int("stations", len(j.config.Stations)).Msg("refreshing tides")

	var errs []error
	for _, st := range j.config.Stations {
		if _, err := j.forecast.Tides(ctx, forecast.Location{ID: st.ID, StationID: st.ID}); err != nil {
			j.logger.Warn().Err(err).Str("station", st.ID).Msg("failed to refresh tides")
			errs = append(errs, err)
			continue
		}
		j.metrics.mu.Lock()
		j.metrics.TideRefreshes++
		j.metrics.mu.Unlock()
	}
	return errors.Join(errs...)
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.SportsScored += int64(result.SportsScored)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.LastOutcome = result.Outcome()
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		SportsScored:        j.metrics.SportsScored,
		TideRefreshes:       j.metrics.TideRefreshes,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		LastOutcome:         j.metrics.LastOutcome,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"sports_scored":         m.SportsScored,
		"tide_refreshes":        m.TideRefreshes,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"last_outcome":          m.LastOutcome,
		"total_duration":        m.TotalDuration.String(),
	}
}
