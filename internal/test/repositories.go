package test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/repository"
)

// StoreFaults injects errors into specific MemoryStore operations.
type StoreFaults struct {
	CreateOrder        error
	UpdateOrder        error
	Transition         error
	CreateNotification error
	AppendEvent        error
	ClaimPending       error
	MarkPublished      error
	MarkFailed         error
}

// MemoryStore is an in-memory repository.Factory and repository.Transactor.
// Transactions are serialized and rolled back by restoring a snapshot.
type MemoryStore struct {
	mu            sync.Mutex
	users         map[string]model.User
	orders        map[string]model.Order
	notifications map[string]model.Notification
	events        map[string]model.OrderEvent
	leased        map[string]bool
	seq           map[string]int
	next          int

	Faults StoreFaults
	// BeforeTransition may modify the stored order right before the
	// compare-and-swap in TransitionStatus, simulating a concurrent writer.
	BeforeTransition func(o *model.Order)
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         map[string]model.User{},
		orders:        map[string]model.Order{},
		notifications: map[string]model.Notification{},
		events:        map[string]model.OrderEvent{},
		leased:        map[string]bool{},
		seq:           map[string]int{},
	}
}

var (
	_ repository.Factory    = (*MemoryStore)(nil)
	_ repository.Transactor = (*MemoryStore)(nil)
)

func (s *MemoryStore) Users() repository.UserRepository { return &memUsers{s: s} }

func (s *MemoryStore) Orders() repository.OrderRepository { return &memOrders{s: s} }

func (s *MemoryStore) Notifications() repository.NotificationRepository {
	return &memNotifications{s: s}
}

func (s *MemoryStore) Events() repository.EventRepository { return &memEvents{s: s} }

// WithinTx runs fn while holding the store lock and restores the previous state on error.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx repository.Factory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type memTx struct {
	s *MemoryStore
}

func (t *memTx) Users() repository.UserRepository { return &memUsers{s: t.s, inTx: true} }

func (t *memTx) Orders() repository.OrderRepository { return &memOrders{s: t.s, inTx: true} }

func (t *memTx) Notifications() repository.NotificationRepository {
	return &memNotifications{s: t.s, inTx: true}
}

func (t *memTx) Events() repository.EventRepository { return &memEvents{s: t.s, inTx: true} }

type storeState struct {
	users         map[string]model.User
	orders        map[string]model.Order
	notifications map[string]model.Notification
	events        map[string]model.OrderEvent
	seq           map[string]int
	next          int
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) snapshot() storeState {
	return storeState{
		users:         copyMap(s.users),
		orders:        copyMap(s.orders),
		notifications: copyMap(s.notifications),
		events:        copyMap(s.events),
		seq:           copyMap(s.seq),
		next:          s.next,
	}
}

func (s *MemoryStore) restore(st storeState) {
	s.users, s.orders, s.notifications, s.events, s.seq, s.next = st.users, st.orders, st.notifications, st.events, st.seq, st.next
}

func (s *MemoryStore) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) stamp(id string) {
	s.next++
	s.seq[id] = s.next
}

// newestFirst orders ids by insertion, latest first.
func (s *MemoryStore) newestFirst(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] > s.seq[ids[j]] })
}

// SeedUser stores u directly, bypassing uniqueness checks.
func (s *MemoryStore) SeedUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.stamp(u.ID)
}

// SeedOrder stores o directly.
func (s *MemoryStore) SeedOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	s.stamp(o.ID)
}

// SetOrderStatus overwrites the stored status.
func (s *MemoryStore) SetOrderStatus(id string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[id]
	o.Status = status
	s.orders[id] = o
}

// NotificationsFor returns every notification addressed to userID, newest first.
func (s *MemoryStore) NotificationsFor(userID string) []model.Notification {
	list, _ := s.Notifications().ListByUser(context.Background(), userID)
	return list
}

// EventsFor returns outbox entries of orderID in insertion order.
func (s *MemoryStore) EventsFor(orderID string) []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, e := range s.events {
		if e.OrderID == orderID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] < s.seq[ids[j]] })
	out := make([]model.OrderEvent, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.events[id])
	}
	return out
}

// Event returns a stored outbox entry.
func (s *MemoryStore) Event(id string) (model.OrderEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

type memUsers struct {
	s    *MemoryStore
	inTx bool
}

func (r *memUsers) Create(ctx context.Context, u *model.User) error {
	defer r.s.lock(r.inTx)()
	for _, existing := range r.s.users {
		if existing.Login == u.Login {
			return domainErrors.ErrAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	r.s.stamp(u.ID)
	return nil
}

func (r *memUsers) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	defer r.s.lock(r.inTx)()
	for _, u := range r.s.users {
		if u.Login == login {
			found := u
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	defer r.s.lock(r.inTx)()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memOrders struct {
	s    *MemoryStore
	inTx bool
}

func (r *memOrders) Create(ctx context.Context, o *model.Order) error {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.CreateOrder != nil {
		return r.s.Faults.CreateOrder
	}
	if _, ok := r.s.orders[o.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	r.s.orders[o.ID] = *o
	r.s.stamp(o.ID)
	return nil
}

func (r *memOrders) GetByID(ctx context.Context, id string) (*model.Order, error) {
	defer r.s.lock(r.inTx)()
	if o, ok := r.s.orders[id]; ok {
		return &o, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memOrders) GetForUpdate(ctx context.Context, id string) (*model.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrders) ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error) {
	return r.List(ctx, model.OrderFilter{OwnerID: ownerID})
}

func (r *memOrders) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	defer r.s.lock(r.inTx)()
	var ids []string
	for id, o := range r.s.orders {
		if filter.OwnerID != "" && o.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		ids = append(ids, id)
	}
	r.s.newestFirst(ids)
	var out []model.Order
	for _, id := range ids {
		out = append(out, r.s.orders[id])
	}
	return out, nil
}

func (r *memOrders) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.UpdateOrder != nil {
		return nil, r.s.Faults.UpdateOrder
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	patch.Apply(&o, o.UpdatedAt.Add(1))
	r.s.orders[id] = o
	return &o, nil
}

func (r *memOrders) TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.Transition != nil {
		return nil, r.s.Faults.Transition
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if r.s.BeforeTransition != nil {
		r.s.BeforeTransition(&o)
		r.s.orders[id] = o
	}
	if o.Status != from {
		return nil, fmt.Errorf("%w: order is %s, expected %s", domainErrors.ErrInvalidTransition, o.Status, from)
	}
	o.Status = to
	o.UpdatedAt = o.UpdatedAt.Add(1)
	r.s.orders[id] = o
	return &o, nil
}

type memNotifications struct {
	s    *MemoryStore
	inTx bool
}

func (r *memNotifications) Create(ctx context.Context, n *model.Notification) error {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.CreateNotification != nil {
		return r.s.Faults.CreateNotification
	}
	r.s.notifications[n.ID] = *n
	r.s.stamp(n.ID)
	return nil
}

func (r *memNotifications) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	defer r.s.lock(r.inTx)()
	if n, ok := r.s.notifications[id]; ok {
		return &n, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r *memNotifications) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	defer r.s.lock(r.inTx)()
	var ids []string
	for id, n := range r.s.notifications {
		if n.UserID == userID {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)
	var out []model.Notification
	for _, id := range ids {
		out = append(out, r.s.notifications[id])
	}
	return out, nil
}

func (r *memNotifications) CountUnread(ctx context.Context, userID string) (int, error) {
	defer r.s.lock(r.inTx)()
	count := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memNotifications) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	defer r.s.lock(r.inTx)()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	n.Read = true
	r.s.notifications[id] = n
	return &n, nil
}

func (r *memNotifications) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	defer r.s.lock(r.inTx)()
	var affected int64
	for id, n := range r.s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.s.notifications[id] = n
			affected++
		}
	}
	return affected, nil
}

type memEvents struct {
	s    *MemoryStore
	inTx bool
}

func (r *memEvents) Append(ctx context.Context, e *model.OrderEvent) error {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.AppendEvent != nil {
		return r.s.Faults.AppendEvent
	}
	r.s.events[e.ID] = *e
	r.s.stamp(e.ID)
	return nil
}

func (r *memEvents) ClaimPending(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.ClaimPending != nil {
		return nil, r.s.Faults.ClaimPending
	}
	var ids []string
	for id, e := range r.s.events {
		if e.Status == model.OrderEventPending && !r.s.leased[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return r.s.seq[ids[i]] < r.s.seq[ids[j]] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	var out []model.OrderEvent
	for _, id := range ids {
		e := r.s.events[id]
		e.Attempts++
		r.s.events[id] = e
		r.s.leased[id] = true
		out = append(out, e)
	}
	return out, nil
}

func (r *memEvents) MarkPublished(ctx context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.MarkPublished != nil {
		return r.s.Faults.MarkPublished
	}
	e, ok := r.s.events[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	e.Status = model.OrderEventPublished
	e.LastError = nil
	r.s.events[id] = e
	delete(r.s.leased, id)
	return nil
}

func (r *memEvents) MarkFailed(ctx context.Context, id string, reason string, final bool) error {
	defer r.s.lock(r.inTx)()
	if r.s.Faults.MarkFailed != nil {
		return r.s.Faults.MarkFailed
	}
	e, ok := r.s.events[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if final {
		e.Status = model.OrderEventFailed
	}
	e.LastError = &reason
	r.s.events[id] = e
	delete(r.s.leased, id)
	return nil
}
