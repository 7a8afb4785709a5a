// Package schedule provides the dated delivery entries produced from a standing
// order's weekly pattern. An entry starts Pending and ends either Created,
// once staff raised the real order, or Skipped.
package schedule

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

const (
	entityName = "schedule"

	MaxReferenceLength = 100
	MaxNotesLength     = 500

	// DefaultSkipReason is recorded when staff skip a delivery without a reason.
	DefaultSkipReason = "Manually skipped"

	// EndedNote is recorded on pending deliveries cancelled by ending their order.
	EndedNote = "Standing order ended"
)

var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewPendingSchedule constructor")

type Schedule struct {
	id               kernel.UUID
	standingOrderID  kernel.UUID
	scheduledDate    kernel.Date
	status           Status
	orderCreatedDate *time.Time
	orderCreatedBy   string
	orderReference   string
	notes            string
	createdAt        time.Time

	guard guard.ConstructorGuard
}

func NewPendingSchedule(id, standingOrderID kernel.UUID, scheduledDate kernel.Date, now time.Time) (*Schedule, error) {
	s := &Schedule{
		status:    Pending,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setStandingOrderID(standingOrderID),
		s.setScheduledDate(scheduledDate),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func RestoreSchedule(
	id, standingOrderID kernel.UUID,
	scheduledDate kernel.Date,
	status Status,
	orderCreatedDate *time.Time,
	orderCreatedBy, orderReference, notes string,
	createdAt time.Time,
) (*Schedule, error) {
	s := &Schedule{
		orderCreatedDate: orderCreatedDate,
		orderCreatedBy:   orderCreatedBy,
		orderReference:   orderReference,
		notes:            notes,
		createdAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setStandingOrderID(standingOrderID),
		s.setScheduledDate(scheduledDate),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schedule) Validate() error {
	if s == nil {
		return ErrScheduleIsNotConstructed
	}
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

func (s *Schedule) ID() kernel.UUID {
	return s.id
}

func (s *Schedule) StandingOrderID() kernel.UUID {
	return s.standingOrderID
}

func (s *Schedule) ScheduledDate() kernel.Date {
	return s.scheduledDate
}

func (s *Schedule) Status() Status {
	return s.status
}

func (s *Schedule) OrderCreatedDate() *time.Time {
	return s.orderCreatedDate
}

func (s *Schedule) OrderCreatedBy() string {
	return s.orderCreatedBy
}

func (s *Schedule) OrderReference() string {
	return s.orderReference
}

func (s *Schedule) Notes() string {
	return s.notes
}

func (s *Schedule) CreatedAt() time.Time {
	return s.createdAt
}

// Complete records that the real order for this day was raised.
func (s *Schedule) Complete(reference, notes, actor string, now time.Time) error {
	reference = strings.TrimSpace(reference)
	notes = strings.TrimSpace(notes)
	if err := errors.Join(
		maxLength("order reference", reference, MaxReferenceLength),
		maxLength("notes", notes, MaxNotesLength),
	); err != nil {
		return err
	}
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("performed by")
	}

	next, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = next
	s.orderCreatedDate = &now
	s.orderCreatedBy = actor
	s.orderReference = reference
	s.notes = notes
	return nil
}

// Skip cancels this day's delivery. The reason is kept as the entry's notes.
func (s *Schedule) Skip(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultSkipReason
	}
	if err := maxLength("reason", reason, MaxNotesLength); err != nil {
		return err
	}

	next, err := s.status.Skip()
	if err != nil {
		return err
	}

	s.status = next
	s.notes = reason
	return nil
}

func (s *Schedule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Schedule) setStandingOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("standing order id", err)
	}
	s.standingOrderID = id
	return nil
}

func (s *Schedule) setScheduledDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("scheduled date", err)
	}
	s.scheduledDate = d
	return nil
}

func (s *Schedule) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func maxLength(param, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 0, limit)
	}
	return nil
}
