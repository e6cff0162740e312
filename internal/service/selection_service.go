package service

import (
	"context"
	"errors"
	"facilitybooking/internal/entities"
	"facilitybooking/internal/workflow"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("selection session not found")

// SelectionBackend is everything a booking dialog needs from the booking API.
type SelectionBackend interface {
	workflow.AvailabilitySource
	workflow.ConflictChecker
	workflow.FacilityDirectory
}

type selectionSession struct {
	selection *workflow.Selection
	lastUsed  time.Time
}

// SelectionService keeps one workflow per open booking dialog. Sessions share nothing.
type SelectionService struct {
	backend             SelectionBackend
	defaultDuration     int
	defaultParticipants int
	now                 func() time.Time

	mu       sync.Mutex
	sessions map[string]*selectionSession
}

func NewSelectionService(backend SelectionBackend, defaultDuration, defaultParticipants int) *SelectionService {
	return &SelectionService{
		backend:             backend,
		defaultDuration:     defaultDuration,
		defaultParticipants: defaultParticipants,
		now:                 time.Now,
		sessions:            make(map[string]*selectionSession),
	}
}

// Create opens a session. Zero requirements fall back to the configured defaults.
func (s *SelectionService) Create(durationMinutes, participants int) (string, workflow.Snapshot, error) {
	if durationMinutes == 0 {
		durationMinutes = s.defaultDuration
	}
	if participants == 0 {
		participants = s.defaultParticipants
	}
	sel, err := workflow.New(s.backend, s.backend, s.backend, durationMinutes, participants)
	if err != nil {
		return "", workflow.Snapshot{}, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &selectionSession{selection: sel, lastUsed: s.now()}
	s.mu.Unlock()
	return id, sel.Snapshot(), nil
}

// Get returns the session's workflow and marks the session as used.
func (s *SelectionService) Get(id string) (*workflow.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastUsed = s.now()
	return sess.selection, nil
}

func (s *SelectionService) Load(ctx context.Context, id, facilityID string, date time.Time) (workflow.Snapshot, error) {
	sel, err := s.Get(id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return sel.Load(ctx, facilityID, date)
}

func (s *SelectionService) SetRequirements(id string, durationMinutes, participants int) (workflow.Snapshot, error) {
	sel, err := s.Get(id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return sel.SetRequirements(durationMinutes, participants)
}

func (s *SelectionService) SelectSlot(ctx context.Context, id, slotID string) (workflow.Snapshot, error) {
	sel, err := s.Get(id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return sel.SelectSlot(ctx, slotID)
}

func (s *SelectionService) Retry(ctx context.Context, id string) (workflow.Snapshot, error) {
	sel, err := s.Get(id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return sel.Retry(ctx)
}

func (s *SelectionService) Reset(id string) (workflow.Snapshot, error) {
	sel, err := s.Get(id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return sel.Reset(), nil
}

// AcceptedSlot returns the slot last approved in the session, with its candidate end.
func (s *SelectionService) AcceptedSlot(id string) (*entities.TimeSlot, *entities.Facility, int, error) {
	sel, err := s.Get(id)
	if err != nil {
		return nil, nil, 0, err
	}
	snap := sel.Snapshot()
	if snap.Accepted == nil {
		return nil, nil, 0, ErrNoAcceptedSlot
	}
	return snap.Accepted, snap.Facility, snap.Criteria.Participants, nil
}

func (s *SelectionService) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.selection.Close()
	return nil
}

// SweepIdle closes sessions unused for longer than maxIdle and returns how many were closed.
func (s *SelectionService) SweepIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	var stale []*workflow.Selection

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			stale = append(stale, sess.selection)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sel := range stale {
		sel.Close()
	}
	if len(stale) > 0 {
		log.Printf("Selection sweep: closed %d idle sessions", len(stale))
	}
	return len(stale)
}

func (s *SelectionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
