package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

// memTicketStore is an in-memory TicketRepository. Each method holds the
// lock for its whole body, which gives the same per-record atomicity as the
// conditional UPDATE in the dao.
type memTicketStore struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	failErr error
}

func newMemTicketStore() *memTicketStore {
	return &memTicketStore{tickets: map[string]domain.Ticket{}}
}

func (m *memTicketStore) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Ticket{}, m.failErr
	}
	if _, ok := m.tickets[ticket.ID]; ok {
		return domain.Ticket{}, domain.ErrTicketConflict
	}
	m.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (m *memTicketStore) FindByID(_ context.Context, id string) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Ticket{}, m.failErr
	}
	t, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return t, nil
}

func (m *memTicketStore) FindOwned(_ context.Context, id, email string) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Ticket{}, m.failErr
	}
	t, ok := m.tickets[id]
	if !ok || t.Email != email {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return t, nil
}

func (m *memTicketStore) Find(_ context.Context, filter domain.TicketFilter) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []domain.Ticket
	for _, t := range m.tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Email != "" && t.Email != filter.Email {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}

func (m *memTicketStore) Update(_ context.Context, id string, update domain.TicketUpdate) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Ticket{}, m.failErr
	}
	t, ok := m.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	update.Apply(&t)
	m.tickets[id] = t
	return t, nil
}

func (m *memTicketStore) TransitionStatus(_ context.Context, id, email string, from, to domain.TicketStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	t, ok := m.tickets[id]
	if !ok || t.Email != email || t.Status != from {
		return false, nil
	}
	t.SetStatus(to)
	m.tickets[id] = t
	return true, nil
}

func (m *memTicketStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.tickets[id]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(m.tickets, id)
	return nil
}

// stepClock advances one minute per call so purchase dates are distinct.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}
