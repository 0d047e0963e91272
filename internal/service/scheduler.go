package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/pep299/portfolio-pulse/internal/model"
	"github.com/pep299/portfolio-pulse/internal/repository"
)

// FireFunc runs one generation on behalf of the scheduler.
type FireFunc func(ctx context.Context)

// Scheduler decides when to auto-fire digest generation. Two states: Idle
// (disabled) and Armed (enabled), transitioned only by Enable/Disable. While
// Armed, Poll is called once a minute by the cron wiring in cmd/server.
type Scheduler struct {
	store    repository.Store
	fire     FireFunc
	hours    []int
	weekdays map[time.Weekday]bool
	now      func() time.Time

	mutex sync.Mutex
	state model.ScheduleState
}

// SchedulerOptions carries the allowed firing slots.
type SchedulerOptions struct {
	Hours    []int
	Weekdays []time.Weekday
}

func NewScheduler(store repository.Store, opts SchedulerOptions, fire FireFunc) *Scheduler {
	hours := make([]int, len(opts.Hours))
	copy(hours, opts.Hours)
	sort.Ints(hours)

	weekdays := make(map[time.Weekday]bool, len(opts.Weekdays))
	for _, d := range opts.Weekdays {
		weekdays[d] = true
	}

	return &Scheduler{
		store:    store,
		fire:     fire,
		hours:    hours,
		weekdays: weekdays,
		now:      time.Now,
	}
}

// Load restores persisted scheduler state. A missing key means Idle.
func (s *Scheduler) Load(ctx context.Context) error {
	data, err := s.store.Get(ctx, repository.KeyScheduleState)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("loading schedule state: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := json.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("decoding schedule state: %w", err)
	}
	return nil
}

func (s *Scheduler) Enable(ctx context.Context) error {
	return s.setEnabled(ctx, true)
}

func (s *Scheduler) Disable(ctx context.Context) error {
	return s.setEnabled(ctx, false)
}

func (s *Scheduler) setEnabled(ctx context.Context, enabled bool) error {
	s.mutex.Lock()
	s.state.Enabled = enabled
	state := s.state
	s.mutex.Unlock()

	if err := s.persist(ctx, state); err != nil {
		return err
	}
	if enabled {
		log.Printf("Scheduler armed")
	} else {
		log.Printf("Scheduler disarmed")
	}
	return nil
}

func (s *Scheduler) Enabled() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state.Enabled
}

// Poll evaluates the current minute against the allowed slots and fires at
// most once per (date, hour) slot. A failed generation is not retried inside
// its slot; the next opportunity is the next scheduled slot.
func (s *Scheduler) Poll(ctx context.Context) {
	now := s.now()

	s.mutex.Lock()
	if !s.state.Enabled {
		s.mutex.Unlock()
		return
	}
	if !s.weekdays[now.Weekday()] || !s.allowedHour(now.Hour()) || now.Minute() != 0 {
		s.mutex.Unlock()
		return
	}
	runKey := RunKey(now)
	if s.state.LastRunKey == runKey {
		s.mutex.Unlock()
		return
	}
	s.state.LastRunKey = runKey
	state := s.state
	s.mutex.Unlock()

	if err := s.persist(ctx, state); err != nil {
		log.Printf("Persisting schedule state failed: %v", err)
	}

	log.Printf("Scheduled slot %s reached, firing generation", runKey)
	s.fire(ctx)
}

func (s *Scheduler) allowedHour(hour int) bool {
	for _, h := range s.hours {
		if h == hour {
			return true
		}
	}
	return false
}

// RunKey is the scheduler dedup token for a fired slot: date plus hour.
func RunKey(t time.Time) string {
	return fmt.Sprintf("%s-%d", t.Format("2006-01-02"), t.Hour())
}

// NextRunTime finds the earliest allowed hour later today on an allowed
// weekday, else the first allowed hour on the next allowed weekday.
func (s *Scheduler) NextRunTime(from time.Time) time.Time {
	if s.weekdays[from.Weekday()] {
		for _, h := range s.hours {
			if h > from.Hour() {
				return time.Date(from.Year(), from.Month(), from.Day(), h, 0, 0, 0, from.Location())
			}
		}
	}

	next := from.AddDate(0, 0, 1)
	for !s.weekdays[next.Weekday()] {
		next = next.AddDate(0, 0, 1)
	}
	return time.Date(next.Year(), next.Month(), next.Day(), s.hours[0], 0, 0, 0, from.Location())
}

// Countdown formats the time until the next run as HH:MM:SS.
func (s *Scheduler) Countdown(from time.Time) string {
	diff := s.NextRunTime(from).Sub(from)
	if diff <= 0 {
		return "00:00:00"
	}
	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60
	seconds := int(diff.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// ScheduleStatus is the display view of the scheduler.
type ScheduleStatus struct {
	Enabled   bool      `json:"enabled"`
	NextRun   time.Time `json:"next_run"`
	Countdown string    `json:"countdown"`
}

func (s *Scheduler) Status() ScheduleStatus {
	now := s.now()
	return ScheduleStatus{
		Enabled:   s.Enabled(),
		NextRun:   s.NextRunTime(now),
		Countdown: s.Countdown(now),
	}
}

func (s *Scheduler) persist(ctx context.Context, state model.ScheduleState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling schedule state: %w", err)
	}
	if err := s.store.Set(ctx, repository.KeyScheduleState, data); err != nil {
		return fmt.Errorf("saving schedule state: %w", err)
	}
	return nil
}
