package service

import (
	"context"
	apperrors "facilitybooking/internal/errors"
	"fmt"
	"log"
	"time"
)

// JobStore holds the bulk checkout queries the cron jobs run.
type JobStore interface {
	GetActiveCheckoutIDsPastEndTime(ctx context.Context) ([]int, error)
	UpdateCheckoutStatuses(ctx context.Context, ids []int, newStatus string) error
	DeletePendingCheckoutsOlderThan(ctx context.Context, before time.Time) ([]string, error)
}

// BookingRemover deletes bookings from the backend.
type BookingRemover interface {
	DeleteBooking(ctx context.Context, id string) error
}

// SessionSweeper closes idle selection sessions.
type SessionSweeper interface {
	SweepIdle(maxIdle time.Duration) int
}

type JobService struct {
	store    JobStore
	bookings BookingRemover
	sessions SessionSweeper
}

func NewJobService(store JobStore, bookings BookingRemover, sessions SessionSweeper) *JobService {
	return &JobService{store: store, bookings: bookings, sessions: sessions}
}

// UpdateFinishedCheckouts marks active checkouts whose range has ended as "finished".
func (s *JobService) UpdateFinishedCheckouts(ctx context.Context) error {
	log.Println("Cron Job: Checking for checkouts to mark as 'finished'...")

	ids, err := s.store.GetActiveCheckoutIDsPastEndTime(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get active checkouts past end time: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No active checkouts found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d checkouts to mark as 'finished'. IDs: %v", len(ids), ids)
	if err := s.store.UpdateCheckoutStatuses(ctx, ids, statusFinished); err != nil {
		return fmt.Errorf("cron job: failed to update checkout statuses: %w", err)
	}
	return nil
}

// DeleteOldPendingCheckouts drops unpaid checkouts created before the cutoff and frees their
// backend bookings. It returns how many checkouts were removed.
func (s *JobService) DeleteOldPendingCheckouts(ctx context.Context, before time.Time) (int, error) {
	bookingIDs, err := s.store.DeletePendingCheckoutsOlderThan(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to delete pending checkouts: %w", err)
	}
	for _, id := range bookingIDs {
		if err := s.bookings.DeleteBooking(ctx, id); err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			log.Printf("Cron Job: could not delete abandoned booking %s: %v", id, err)
		}
	}
	if len(bookingIDs) > 0 {
		log.Printf("Cron Job: Deleted %d pending checkouts created before %s", len(bookingIDs), before.Format(time.RFC3339))
	}
	return len(bookingIDs), nil
}

// SweepSelections closes selection sessions idle for longer than maxIdle.
func (s *JobService) SweepSelections(maxIdle time.Duration) int {
	return s.sessions.SweepIdle(maxIdle)
}
