// Package workflow drives one booking dialog: pick a facility and a date, narrow the day's
// slots to the current requirements, verify the slot the user taps and hand accepted slots on.
//
// Backend calls run outside the lock. Each load and each check carries a sequence number and its
// own context; a response whose number is no longer the latest is dropped, so a slow answer for
// an earlier selection can never overwrite a newer one.
package workflow

import (
	"context"
	"errors"
	"facilitybooking/internal/entities"
	"facilitybooking/internal/slots"
	"facilitybooking/internal/utils"
	"fmt"
	"log"
	"sync"
	"time"
)

type State string

const (
	Idle      State = "idle"
	Loading   State = "loading"
	Ready     State = "ready"
	Verifying State = "verifying"
	Verified  State = "verified"
	Failed    State = "error"
)

var (
	ErrNoFacility        = errors.New("facility id is required")
	ErrNoDate            = errors.New("date is required")
	ErrNotReady          = errors.New("no slots have been loaded")
	ErrSlotNotSelectable = errors.New("slot is not among the selectable slots")
)

type AvailabilitySource interface {
	GetAvailability(ctx context.Context, facilityID string, start, end time.Time) ([]entities.DayAvailability, error)
}

type ConflictChecker interface {
	CheckAvailability(ctx context.Context, check entities.AvailabilityCheck) (*entities.BookingValidation, error)
}

type FacilityDirectory interface {
	GetFacility(ctx context.Context, id string) (*entities.Facility, error)
}

type Selection struct {
	source    AvailabilitySource
	checker   ConflictChecker
	directory FacilityDirectory

	mu         sync.Mutex
	state      State
	criteria   entities.SearchCriteria
	facility   *entities.Facility
	loaded     bool
	raw        []entities.TimeSlot
	visible    []entities.TimeSlot
	selected   *entities.TimeSlot
	candStart  time.Time
	candEnd    time.Time
	validation *entities.BookingValidation
	accepted   *entities.TimeSlot
	lastErr    string

	loadSeq     uint64
	checkSeq    uint64
	cancelLoad  context.CancelFunc
	cancelCheck context.CancelFunc

	acceptedCh chan entities.TimeSlot
}

// New creates an idle selection with the embedding page's initial requirements.
// directory may be nil, in which case participant counts are not checked against capacity.
func New(source AvailabilitySource, checker ConflictChecker, directory FacilityDirectory, durationMinutes, participants int) (*Selection, error) {
	if err := entities.ValidateRequirements(durationMinutes, participants, 0); err != nil {
		return nil, err
	}
	return &Selection{
		source:    source,
		checker:   checker,
		directory: directory,
		state:     Idle,
		criteria: entities.SearchCriteria{
			DurationMinutes: durationMinutes,
			Participants:    participants,
		},
		acceptedCh: make(chan entities.TimeSlot, 1),
	}, nil
}

// Accepted delivers each slot the conflict checker approved, with EndTime set to the
// candidate end. Only the latest unread slot is kept. It is a notification for embedding
// pages; checkout reads Snapshot().Accepted, which stays set until the selection changes.
func (s *Selection) Accepted() <-chan entities.TimeSlot {
	return s.acceptedCh
}

// Load chooses a facility and date and fetches that day's slots. Any earlier fetch, check or
// verdict is discarded. Backend failures, and participants above the facility capacity, end in
// the error state and are not returned.
func (s *Selection) Load(ctx context.Context, facilityID string, date time.Time) (Snapshot, error) {
	if facilityID == "" {
		return s.Snapshot(), ErrNoFacility
	}
	if date.IsZero() {
		return s.Snapshot(), ErrNoDate
	}
	start, end := utils.DayWindow(date)

	s.mu.Lock()
	s.cancelInFlightLocked()
	s.loadSeq++
	s.checkSeq++
	seq := s.loadSeq
	if s.criteria.FacilityID != facilityID {
		s.facility = nil
	}
	s.criteria.FacilityID = facilityID
	s.criteria.Date = start
	s.state = Loading
	s.loaded = false
	s.raw, s.visible = nil, nil
	s.clearSelectionLocked()
	s.lastErr = ""
	ctx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.mu.Unlock()
	defer cancel()

	// Without the facility record participants are checked against slot spots only.
	facility, ferr := s.lookupFacility(ctx, facilityID)
	if ferr != nil {
		log.Printf("selection: %v, continuing without capacity bound", ferr)
	}
	days, err := s.source.GetAvailability(ctx, facilityID, start, end)
	if err != nil {
		err = fmt.Errorf("load availability for %s on %s: %w", facilityID, start.Format(utils.DateLayout), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		log.Printf("selection: dropping stale availability for %s (request %d, latest %d)", facilityID, seq, s.loadSeq)
		return s.snapshotLocked(), nil
	}
	s.cancelLoad = nil
	if err != nil {
		log.Printf("selection: %v", err)
		s.state = Failed
		s.lastErr = err.Error()
		return s.snapshotLocked(), nil
	}
	if facility != nil {
		s.facility = facility
	}
	s.raw = slots.Flatten(days)
	s.loaded = true
	if s.facility != nil {
		// Slots stay loaded so SetRequirements can recover without a new fetch.
		if err := entities.ValidateRequirements(s.criteria.DurationMinutes, s.criteria.Participants, s.facility.Capacity); err != nil {
			log.Printf("selection: %s: %v", facilityID, err)
			s.visible = nil
			s.state = Failed
			s.lastErr = err.Error()
			return s.snapshotLocked(), nil
		}
	}
	s.refilterLocked()
	s.state = Ready
	return s.snapshotLocked(), nil
}

func (s *Selection) lookupFacility(ctx context.Context, facilityID string) (*entities.Facility, error) {
	if s.directory == nil {
		return nil, nil
	}
	f, err := s.directory.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("load facility %s: %w", facilityID, err)
	}
	return f, nil
}

// Retry repeats the last Load.
func (s *Selection) Retry(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	facilityID, date := s.criteria.FacilityID, s.criteria.Date
	s.mu.Unlock()
	if facilityID == "" {
		return s.Snapshot(), ErrNotReady
	}
	return s.Load(ctx, facilityID, date)
}

// SetRequirements changes duration and participant count. Loaded slots are filtered again
// without a new fetch; a pending or finished verification is discarded.
func (s *Selection) SetRequirements(durationMinutes, participants int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := 0
	if s.facility != nil {
		capacity = s.facility.Capacity
	}
	if err := entities.ValidateRequirements(durationMinutes, participants, capacity); err != nil {
		return s.snapshotLocked(), err
	}
	s.criteria.DurationMinutes = durationMinutes
	s.criteria.Participants = participants

	switch s.state {
	case Ready:
		s.refilterLocked()
	case Verifying, Verified, Failed:
		if !s.loaded {
			break
		}
		s.cancelCheckLocked()
		s.checkSeq++
		s.clearSelectionLocked()
		s.lastErr = ""
		s.refilterLocked()
		s.state = Ready
	}
	return s.snapshotLocked(), nil
}

// SelectSlot verifies the range [slot start, slot start + requested duration) with the
// conflict checker. Selecting while a check is in flight supersedes that check.
func (s *Selection) SelectSlot(ctx context.Context, slotID string) (Snapshot, error) {
	s.mu.Lock()
	switch s.state {
	case Ready, Verifying, Verified:
	case Failed:
		if !s.loaded {
			defer s.mu.Unlock()
			return s.snapshotLocked(), ErrNotReady
		}
	default:
		defer s.mu.Unlock()
		return s.snapshotLocked(), ErrNotReady
	}

	slot, ok := s.findVisibleLocked(slotID)
	if !ok {
		defer s.mu.Unlock()
		return s.snapshotLocked(), fmt.Errorf("%w: %s", ErrSlotNotSelectable, slotID)
	}

	s.cancelCheckLocked()
	s.checkSeq++
	seq := s.checkSeq
	s.clearSelectionLocked()
	s.selected = &slot
	s.candStart = slot.StartTime
	s.candEnd = slots.CandidateEnd(slot, s.criteria.DurationMinutes)
	s.lastErr = ""
	s.state = Verifying
	check := entities.AvailabilityCheck{
		FacilityID: s.criteria.FacilityID,
		StartTime:  s.candStart,
		EndTime:    s.candEnd,
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelCheck = cancel
	s.mu.Unlock()
	defer cancel()

	v, err := s.checker.CheckAvailability(ctx, check)
	if err == nil && v == nil {
		err = errors.New("empty response")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.checkSeq {
		log.Printf("selection: dropping stale verdict for slot %s (request %d, latest %d)", slotID, seq, s.checkSeq)
		return s.snapshotLocked(), nil
	}
	s.cancelCheck = nil
	if err != nil {
		err = fmt.Errorf("check availability of slot %s: %w", slotID, err)
		log.Printf("selection: %v", err)
		s.state = Failed
		s.lastErr = err.Error()
		return s.snapshotLocked(), nil
	}

	s.validation = v
	s.state = Verified
	if v.IsValid {
		accepted := slot
		accepted.EndTime = s.candEnd
		s.accepted = &accepted
		s.emitLocked(accepted)
	}
	return s.snapshotLocked(), nil
}

// Reset returns to Idle, keeping only the requirements.
func (s *Selection) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelInFlightLocked()
	s.loadSeq++
	s.checkSeq++
	s.state = Idle
	s.criteria.FacilityID = ""
	s.criteria.Date = time.Time{}
	s.facility = nil
	s.loaded = false
	s.raw, s.visible = nil, nil
	s.clearSelectionLocked()
	s.lastErr = ""
	return s.snapshotLocked()
}

// Close cancels anything in flight. The selection must not be used afterwards.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelInFlightLocked()
	s.loadSeq++
	s.checkSeq++
}

func (s *Selection) refilterLocked() {
	filtered, err := slots.Filter(s.raw, float64(s.criteria.DurationMinutes), s.criteria.Participants)
	if err != nil {
		// requirements are validated before they are stored
		log.Printf("selection: %v", err)
		s.visible = nil
		return
	}
	s.visible = slots.SortByStart(filtered)
}

func (s *Selection) findVisibleLocked(id string) (entities.TimeSlot, bool) {
	for _, v := range s.visible {
		if v.ID == id {
			return v, true
		}
	}
	return entities.TimeSlot{}, false
}

func (s *Selection) emitLocked(slot entities.TimeSlot) {
	select {
	case <-s.acceptedCh:
	default:
	}
	s.acceptedCh <- slot
}

func (s *Selection) clearSelectionLocked() {
	s.selected = nil
	s.candStart, s.candEnd = time.Time{}, time.Time{}
	s.validation = nil
	s.accepted = nil
}

func (s *Selection) cancelCheckLocked() {
	if s.cancelCheck != nil {
		s.cancelCheck()
		s.cancelCheck = nil
	}
}

func (s *Selection) cancelInFlightLocked() {
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.cancelCheckLocked()
}
