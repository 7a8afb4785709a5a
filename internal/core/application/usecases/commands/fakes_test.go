package commands_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/domain/services"
	"standingorders/internal/core/ports"
	"standingorders/internal/pkg/errs"
)

// memStore is an in-memory transactional store. A unit of work holds the
// store lock from Begin until Commit or Rollback, which gives serializable
// transactions; changes are made on a copy and published on Commit.
type memStore struct {
	txLock sync.Mutex
	state  memState
}

type memState struct {
	orders    map[kernel.UUID]*standingorder.StandingOrder
	schedules map[kernel.UUID]*schedule.Schedule
	logs      []*auditlog.Entry
	customers map[kernel.UUID]string
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		orders:    map[kernel.UUID]*standingorder.StandingOrder{},
		schedules: map[kernel.UUID]*schedule.Schedule{},
		customers: map[kernel.UUID]string{},
	}}
}

func (s *memStore) addCustomer(name string) kernel.UUID {
	id := kernel.NewUUID()
	s.state.customers[id] = name
	return id
}

func (s memState) clone() memState {
	c := memState{
		orders:    make(map[kernel.UUID]*standingorder.StandingOrder, len(s.orders)),
		schedules: make(map[kernel.UUID]*schedule.Schedule, len(s.schedules)),
		logs:      append([]*auditlog.Entry(nil), s.logs...),
		customers: make(map[kernel.UUID]string, len(s.customers)),
	}
	for k, v := range s.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range s.schedules {
		c.schedules[k] = cloneSchedule(v)
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

func cloneOrder(so *standingorder.StandingOrder) *standingorder.StandingOrder {
	c, err := standingorder.RestoreStandingOrder(
		so.ID(), so.CustomerID(), so.DeliveryDays(), so.StartDate(), so.EndDate(), so.Status(),
		so.Items(), so.SpecialInstructions(), so.CreatedBy(), so.CreatedAt(), so.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneSchedule(s *schedule.Schedule) *schedule.Schedule {
	c, err := schedule.RestoreSchedule(
		s.ID(), s.StandingOrderID(), s.ScheduledDate(), s.Status(), s.OrderCreatedDate(),
		s.OrderCreatedBy(), s.OrderReference(), s.Notes(), s.CreatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Read helpers used by assertions; they must not run inside a transaction.

func (s *memStore) order(id kernel.UUID) *standingorder.StandingOrder {
	s.txLock.Lock()
	defer s.txLock.Unlock()
	if so, ok := s.state.orders[id]; ok {
		return cloneOrder(so)
	}
	return nil
}

func (s *memStore) schedulesOf(id kernel.UUID) []*schedule.Schedule {
	s.txLock.Lock()
	defer s.txLock.Unlock()
	var out []*schedule.Schedule
	for _, sc := range s.state.schedules {
		if sc.StandingOrderID().IsEqual(id) {
			out = append(out, cloneSchedule(sc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate().Before(out[j].ScheduledDate()) })
	return out
}

func (s *memStore) logsOf(id kernel.UUID) []*auditlog.Entry {
	s.txLock.Lock()
	defer s.txLock.Unlock()
	var out []*auditlog.Entry
	for _, e := range s.state.logs {
		if e.StandingOrderID().IsEqual(id) {
			out = append(out, e)
		}
	}
	return out
}

// memUoW implements every narrow unit of work interface of the package.
type memUoW struct {
	store  *memStore
	work   *memState
	active bool
}

func (s *memStore) Create() *memUoW {
	return &memUoW{store: s}
}

var errNoTx = errors.New("no active transaction")

func (u *memUoW) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.store.txLock.Lock()
	work := u.store.state.clone()
	u.work = &work
	u.active = true
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if !u.active {
		return errNoTx
	}
	u.store.state = *u.work
	u.end()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if !u.active {
		return errNoTx
	}
	u.end()
	return nil
}

func (u *memUoW) end() {
	u.work = nil
	u.active = false
	u.store.txLock.Unlock()
}

func (u *memUoW) StandingOrderRepository() ports.StandingOrderRepository {
	return memOrders{u}
}

func (u *memUoW) ScheduleRepository() ports.ScheduleRepository {
	return memSchedules{u}
}

func (u *memUoW) AuditLogRepository() ports.AuditLogRepository {
	return memLogs{u}
}

func (u *memUoW) CustomerDirectory() ports.CustomerDirectory {
	return memCustomers{u}
}

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, so *standingorder.StandingOrder) error {
	if _, ok := r.u.work.orders[so.ID()]; ok {
		return errs.NewConflictError("standing order", so.ID().String(), nil)
	}
	r.u.work.orders[so.ID()] = cloneOrder(so)
	return nil
}

func (r memOrders) Update(_ context.Context, so *standingorder.StandingOrder) error {
	if _, ok := r.u.work.orders[so.ID()]; !ok {
		return errs.NewObjectNotFoundError("standing_order", so.ID().String())
	}
	r.u.work.orders[so.ID()] = cloneOrder(so)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	so, ok := r.u.work.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("standing_order", id.String())
	}
	return cloneOrder(so), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	return r.Get(ctx, id)
}

func (r memOrders) GetAllActive(_ context.Context) ([]*standingorder.StandingOrder, error) {
	var out []*standingorder.StandingOrder
	for _, so := range r.u.work.orders {
		if so.Status() == standingorder.Active {
			out = append(out, cloneOrder(so))
		}
	}
	return out, nil
}

type memSchedules struct{ u *memUoW }

func (r memSchedules) AddIfAbsent(_ context.Context, s *schedule.Schedule) (bool, error) {
	for _, existing := range r.u.work.schedules {
		if existing.StandingOrderID().IsEqual(s.StandingOrderID()) && existing.ScheduledDate().Equal(s.ScheduledDate()) {
			return false, nil
		}
	}
	r.u.work.schedules[s.ID()] = cloneSchedule(s)
	return true, nil
}

func (r memSchedules) Get(_ context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	s, ok := r.u.work.schedules[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("schedule", id.String())
	}
	return cloneSchedule(s), nil
}

func (r memSchedules) Update(_ context.Context, s *schedule.Schedule, expected schedule.Status) error {
	stored, ok := r.u.work.schedules[s.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("schedule", s.ID().String())
	}
	if stored.Status() != expected {
		return errs.NewInvalidStateError("schedule", stored.Status().String(), "update")
	}
	r.u.work.schedules[s.ID()] = cloneSchedule(s)
	return nil
}

func (r memSchedules) SkipPendingAfter(_ context.Context, orderID kernel.UUID, after kernel.Date, note string) (int, error) {
	n := 0
	for id, s := range r.u.work.schedules {
		if !s.StandingOrderID().IsEqual(orderID) || s.Status() != schedule.Pending || !s.ScheduledDate().After(after) {
			continue
		}
		skipped := cloneSchedule(s)
		if err := skipped.Skip(note); err != nil {
			return n, err
		}
		r.u.work.schedules[id] = skipped
		n++
	}
	return n, nil
}

func (r memSchedules) DeletePendingAfter(_ context.Context, orderID kernel.UUID, after kernel.Date) (int, error) {
	n := 0
	for id, s := range r.u.work.schedules {
		if s.StandingOrderID().IsEqual(orderID) && s.Status() == schedule.Pending && s.ScheduledDate().After(after) {
			delete(r.u.work.schedules, id)
			n++
		}
	}
	return n, nil
}

type memLogs struct{ u *memUoW }

func (r memLogs) Append(_ context.Context, e *auditlog.Entry) error {
	r.u.work.logs = append(r.u.work.logs, e)
	return nil
}

type memCustomers struct{ u *memUoW }

func (r memCustomers) GetName(_ context.Context, id kernel.UUID) (string, error) {
	name, ok := r.u.work.customers[id]
	if !ok {
		return "", errs.NewObjectNotFoundError("customer", id.String())
	}
	return name, nil
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// harness wires every handler to one memStore.
type harness struct {
	store *memStore
	clock *fixedClock

	create   commands.CreateStandingOrderCommandHandler
	edit     commands.EditStandingOrderCommandHandler
	pause    commands.PauseStandingOrderCommandHandler
	resume   commands.ResumeStandingOrderCommandHandler
	end      commands.EndStandingOrderCommandHandler
	generate commands.GenerateSchedulesCommandHandler
	complete commands.CompleteScheduleCommandHandler
	skip     commands.SkipScheduleCommandHandler
}

type lifecycleFactory struct{ s *memStore }

func (f lifecycleFactory) Create() commands.LifecycleUoW { return f.s.Create() }

type scheduleFactory struct{ s *memStore }

func (f scheduleFactory) Create() commands.ScheduleUoW { return f.s.Create() }

type generationFactory struct{ s *memStore }

func (f generationFactory) Create() commands.GenerationUoW { return f.s.Create() }

// monday09 is 09:00 on Monday 5 January 2026.
var monday09 = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func newHarness(horizonDays int) *harness {
	store := newMemStore()
	clock := &fixedClock{now: monday09}
	gen := commands.NewScheduleGenerator(services.NewSchedulePlanner())
	lf := lifecycleFactory{store}

	return &harness{
		store:    store,
		clock:    clock,
		create:   commands.NewCreateStandingOrderCommandHandler(lf, gen, clock, horizonDays),
		edit:     commands.NewEditStandingOrderCommandHandler(lf, gen, clock, horizonDays),
		pause:    commands.NewPauseStandingOrderCommandHandler(lf, clock),
		resume:   commands.NewResumeStandingOrderCommandHandler(lf, gen, clock, horizonDays),
		end:      commands.NewEndStandingOrderCommandHandler(lf, clock),
		generate: commands.NewGenerateSchedulesCommandHandler(generationFactory{store}, gen, clock),
		complete: commands.NewCompleteScheduleCommandHandler(scheduleFactory{store}, clock),
		skip:     commands.NewSkipScheduleCommandHandler(scheduleFactory{store}, clock),
	}
}

func (h *harness) today() kernel.Date {
	return kernel.DateOf(h.clock.Now())
}
