package standingorder

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

const MaxInstructionsLength = 500

var ErrStandingOrderIsNotConstructed = errors.New("StandingOrder must be created via NewStandingOrder constructor")

// StandingOrder is the aggregate root for a recurring delivery agreement with
// a customer. It owns its items; schedules and audit entries reference it by
// identifier only.
type StandingOrder struct {
	id                  kernel.UUID
	customerID          kernel.UUID
	deliveryDays        WeekdaySet
	startDate           kernel.Date
	endDate             *kernel.Date
	status              Status
	specialInstructions string
	items               []Item
	createdBy           string
	createdAt           time.Time
	updatedAt           time.Time

	guard guard.ConstructorGuard
}

// NewStandingOrder creates an Active order. Every violated rule is reported
// at once.
func NewStandingOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryDays WeekdaySet,
	startDate kernel.Date,
	endDate *kernel.Date,
	items []Item,
	specialInstructions string,
	createdBy string,
	now time.Time,
) (*StandingOrder, error) {
	so := &StandingOrder{
		status:    Active,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		so.setID(id),
		so.setCustomerID(customerID),
		so.setDeliveryDays(deliveryDays),
		so.setStartDate(startDate),
		so.setItems(items),
		so.setSpecialInstructions(specialInstructions),
		so.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	if err := so.setEndDate(endDate); err != nil {
		return nil, err
	}

	return so, nil
}

// RestoreStandingOrder rebuilds a persisted order. An ended order keeps the
// end date it was given when it ended, even if that precedes a start date in
// the future.
func RestoreStandingOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryDays WeekdaySet,
	startDate kernel.Date,
	endDate *kernel.Date,
	status Status,
	items []Item,
	specialInstructions string,
	createdBy string,
	createdAt time.Time,
	updatedAt time.Time,
) (*StandingOrder, error) {
	so := &StandingOrder{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		so.setID(id),
		so.setCustomerID(customerID),
		so.setDeliveryDays(deliveryDays),
		so.setStartDate(startDate),
		so.setStatus(status),
		so.setItems(items),
		so.setSpecialInstructions(specialInstructions),
		so.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	if status == Ended {
		if endDate == nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("end date", fmt.Errorf("order %s is ended", id))
		}
		d := *endDate
		so.endDate = &d
		return so, nil
	}

	if err := so.setEndDate(endDate); err != nil {
		return nil, err
	}
	return so, nil
}

func (so *StandingOrder) Validate() error {
	if so == nil {
		return ErrStandingOrderIsNotConstructed
	}
	return so.guard.Validate(ErrStandingOrderIsNotConstructed)
}

func (so *StandingOrder) IsEqual(other *StandingOrder) bool {
	return other != nil && so.id.IsEqual(other.id)
}

func (so *StandingOrder) ID() kernel.UUID {
	return so.id
}

func (so *StandingOrder) CustomerID() kernel.UUID {
	return so.customerID
}

func (so *StandingOrder) DeliveryDays() WeekdaySet {
	return so.deliveryDays
}

func (so *StandingOrder) StartDate() kernel.Date {
	return so.startDate
}

// EndDate returns a copy of the end date, nil for open ended orders.
func (so *StandingOrder) EndDate() *kernel.Date {
	if so.endDate == nil {
		return nil
	}
	d := *so.endDate
	return &d
}

func (so *StandingOrder) Status() Status {
	return so.status
}

func (so *StandingOrder) SpecialInstructions() string {
	return so.specialInstructions
}

// Items returns a copy of the product lines.
func (so *StandingOrder) Items() []Item {
	out := make([]Item, len(so.items))
	copy(out, so.items)
	return out
}

func (so *StandingOrder) CreatedBy() string {
	return so.createdBy
}

func (so *StandingOrder) CreatedAt() time.Time {
	return so.createdAt
}

func (so *StandingOrder) UpdatedAt() time.Time {
	return so.updatedAt
}

// CanGenerate reports whether new schedules may be produced for the order.
func (so *StandingOrder) CanGenerate() bool {
	return so.status == Active
}

// Pause stops schedule generation. It returns false when the order was
// already paused.
func (so *StandingOrder) Pause(now time.Time) (bool, error) {
	next, err := so.status.Pause()
	if err != nil {
		return false, err
	}
	return so.transition(next, now), nil
}

// Resume restarts schedule generation. It returns false when the order was
// already active.
func (so *StandingOrder) Resume(now time.Time) (bool, error) {
	next, err := so.status.Resume()
	if err != nil {
		return false, err
	}
	return so.transition(next, now), nil
}

// End terminates the order on the given day.
func (so *StandingOrder) End(today kernel.Date, now time.Time) error {
	if err := today.Validate(); err != nil {
		return err
	}
	next, err := so.status.End()
	if err != nil {
		return err
	}
	so.endDate = &today
	so.transition(next, now)
	return nil
}

// EditDeliveryDays replaces the weekday pattern and reports whether it changed.
func (so *StandingOrder) EditDeliveryDays(days WeekdaySet, now time.Time) (bool, error) {
	if err := so.status.ValidateEdit(); err != nil {
		return false, err
	}
	if so.deliveryDays.IsEqual(days) {
		return false, nil
	}
	if err := so.setDeliveryDays(days); err != nil {
		return false, err
	}
	so.updatedAt = now
	return true, nil
}

// ChangeEndDate sets or clears the end date and reports whether it changed.
func (so *StandingOrder) ChangeEndDate(endDate *kernel.Date, now time.Time) (bool, error) {
	if err := so.status.ValidateEdit(); err != nil {
		return false, err
	}
	if sameDate(so.endDate, endDate) {
		return false, nil
	}
	if err := so.setEndDate(endDate); err != nil {
		return false, err
	}
	so.updatedAt = now
	return true, nil
}

func (so *StandingOrder) ChangeSpecialInstructions(instructions string, now time.Time) (bool, error) {
	if err := so.status.ValidateEdit(); err != nil {
		return false, err
	}
	if so.specialInstructions == strings.TrimSpace(instructions) {
		return false, nil
	}
	if err := so.setSpecialInstructions(instructions); err != nil {
		return false, err
	}
	so.updatedAt = now
	return true, nil
}

// ReplaceItems swaps every product line for the given ones. It reports
// whether the lines differ, ignoring item identifiers.
func (so *StandingOrder) ReplaceItems(items []Item, now time.Time) (bool, error) {
	if err := so.status.ValidateEdit(); err != nil {
		return false, err
	}
	changed := !sameLines(so.items, items)
	if err := so.setItems(items); err != nil {
		return false, err
	}
	so.updatedAt = now
	return changed, nil
}

func (so *StandingOrder) transition(next Status, now time.Time) bool {
	if next == so.status {
		return false
	}
	so.status = next
	so.updatedAt = now
	return true
}

func (so *StandingOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	so.id = id
	return nil
}

func (so *StandingOrder) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	so.customerID = id
	return nil
}

func (so *StandingOrder) setDeliveryDays(days WeekdaySet) error {
	if days.IsEmpty() {
		return errs.NewValueIsRequiredErrorWithCause("delivery days", errors.New("at least one delivery day must be selected"))
	}
	so.deliveryDays = days
	return nil
}

func (so *StandingOrder) setStartDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("start date", err)
	}
	so.startDate = d
	return nil
}

func (so *StandingOrder) setEndDate(d *kernel.Date) error {
	if d == nil {
		so.endDate = nil
		return nil
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Before(so.startDate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"end date",
			fmt.Errorf("%s is before start date %s", d, so.startDate),
		)
	}
	end := *d
	so.endDate = &end
	return nil
}

func (so *StandingOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	so.status = status
	return nil
}

func (so *StandingOrder) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one product must be added"))
	}
	for n, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", n+1, err)
		}
	}
	so.items = make([]Item, len(items))
	copy(so.items, items)
	return nil
}

func (so *StandingOrder) setSpecialInstructions(instructions string) error {
	instructions = strings.TrimSpace(instructions)
	if n := utf8.RuneCountInString(instructions); n > MaxInstructionsLength {
		return errs.NewValueIsOutOfRangeError("special instructions length", n, 0, MaxInstructionsLength)
	}
	so.specialInstructions = instructions
	return nil
}

func (so *StandingOrder) setCreatedBy(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("created by")
	}
	so.createdBy = actor
	return nil
}

func sameDate(a, b *kernel.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameLines(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameLine(b[i]) {
			return false
		}
	}
	return true
}
