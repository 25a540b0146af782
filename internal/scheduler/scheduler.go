package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/natededev/weather-dashboard/internal/store"
	"github.com/natededev/weather-dashboard/internal/weather"
)

// Scheduler periodically refreshes weather for the last-used location so the
// dashboard's latest state stays warm. Refresh results pass through the same
// generation guard as user-triggered fetches.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	prefs     *store.PrefsStore
	interval  time.Duration
}

// New creates a Scheduler refreshing at the given interval.
func New(service *weather.Service, prefs *store.PrefsStore, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		prefs:     prefs,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled (non-positive interval)")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		location, err := s.prefs.LastLocation()
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("scheduler: read last location: %v", err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.GetWeather(ctx, location); err != nil {
			log.Printf("scheduler: refresh failed for %q: %v", location, err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
