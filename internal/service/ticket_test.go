package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbull/event-ticket-api/internal/clock"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

var testAdmin = domain.AdminCaller("admin")

func newTestRegistry() (*TicketRegistry, *memTicketStore) {
	store := newMemTicketStore()
	clk := &stepClock{now: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)}
	return NewTicketRegistry(store, clk), store
}

func TestTicketRegistry_IssueThenGet(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	issued, err := registry.Issue(ctx, testAdmin, "fan@example.com", "Big Bull Night", 2500)
	require.NoError(t, err)

	got, err := registry.Get(ctx, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)
	assert.Equal(t, "fan@example.com", got.Email)
	assert.Equal(t, "Big Bull Night", got.EventName)
	assert.Equal(t, 2500.0, got.Price)
	assert.Equal(t, domain.TicketStatusActive, got.Status)
	assert.False(t, got.Used)
	assert.False(t, got.PurchaseDate.IsZero())
}

func TestTicketRegistry_IssueUniqueIDs(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		tk, err := registry.Issue(ctx, testAdmin, "fan@example.com", "Gig", 0)
		require.NoError(t, err)
		require.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
}

func TestTicketRegistry_IssueValidation(t *testing.T) {
	registry, store := newTestRegistry()
	ctx := context.Background()

	cases := []struct {
		name      string
		email     string
		eventName string
		price     float64
	}{
		{"missing email", "", "Gig", 10},
		{"blank event", "fan@example.com", "   ", 10},
		{"negative price", "fan@example.com", "Gig", -1},
		{"nan price", "fan@example.com", "Gig", math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := registry.Issue(ctx, testAdmin, tc.email, tc.eventName, tc.price)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, store.tickets, "nothing committed on rejection")
}

func TestTicketRegistry_IssueZeroPrice(t *testing.T) {
	registry, _ := newTestRegistry()

	tk, err := registry.Issue(context.Background(), testAdmin, "fan@example.com", "Free Gig", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tk.Price)
}

func TestTicketRegistry_IssueConflictNotOverwritten(t *testing.T) {
	registry, store := newTestRegistry()
	registry.newID = func() string { return "ticket_fixed" }
	ctx := context.Background()

	_, err := registry.Issue(ctx, testAdmin, "first@example.com", "Gig", 10)
	require.NoError(t, err)

	_, err = registry.Issue(ctx, testAdmin, "second@example.com", "Gig", 10)
	assert.ErrorIs(t, err, domain.ErrTicketConflict)
	assert.Equal(t, "first@example.com", store.tickets["ticket_fixed"].Email)
}

func TestTicketRegistry_RequiresAdmin(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()
	user := domain.Caller{Subject: "7", Role: domain.RoleUser}

	_, err := registry.Issue(ctx, user, "fan@example.com", "Gig", 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = registry.List(ctx, user, domain.TicketFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = registry.Update(ctx, domain.Caller{}, "x", domain.TicketUpdate{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.ErrorIs(t, registry.Delete(ctx, user, "x"), domain.ErrUnauthorized)
}

func TestTicketRegistry_GetNotFound(t *testing.T) {
	registry, _ := newTestRegistry()

	_, err := registry.Get(context.Background(), "ticket_missing")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketRegistry_ListFilter(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	a1, err := registry.Issue(ctx, testAdmin, "a@example.com", "Gig", 10)
	require.NoError(t, err)
	a2, err := registry.Issue(ctx, testAdmin, "b@example.com", "Gig", 10)
	require.NoError(t, err)
	u, err := registry.Issue(ctx, testAdmin, "c@example.com", "Gig", 10)
	require.NoError(t, err)
	c, err := registry.Issue(ctx, testAdmin, "a@example.com", "Gig", 10)
	require.NoError(t, err)

	used := domain.TicketStatusUsed
	cancelled := domain.TicketStatusCancelled
	_, err = registry.Update(ctx, testAdmin, u.ID, domain.TicketUpdate{Status: &used})
	require.NoError(t, err)
	_, err = registry.Update(ctx, testAdmin, c.ID, domain.TicketUpdate{Status: &cancelled})
	require.NoError(t, err)

	active, err := registry.List(ctx, testAdmin, domain.TicketFilter{Status: domain.TicketStatusActive})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, a2.ID, active[0].ID, "most recent first")
	assert.Equal(t, a1.ID, active[1].ID)

	byEmail, err := registry.List(ctx, testAdmin, domain.TicketFilter{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	all, err := registry.List(ctx, testAdmin, domain.TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = registry.List(ctx, testAdmin, domain.TicketFilter{Status: "expired"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTicketRegistry_UpdatePartial(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	tk, err := registry.Issue(ctx, testAdmin, "fan@example.com", "Gig", 10)
	require.NoError(t, err)

	name := "Bigger Gig"
	updated, err := registry.Update(ctx, testAdmin, tk.ID, domain.TicketUpdate{EventName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bigger Gig", updated.EventName)
	assert.Equal(t, "fan@example.com", updated.Email)
	assert.Equal(t, 10.0, updated.Price)
	assert.Equal(t, tk.PurchaseDate, updated.PurchaseDate)
	assert.Equal(t, tk.ID, updated.ID)

	used := domain.TicketStatusUsed
	updated, err = registry.Update(ctx, testAdmin, tk.ID, domain.TicketUpdate{Status: &used})
	require.NoError(t, err)
	assert.True(t, updated.Used, "used follows an administrative status change")

	active := domain.TicketStatusActive
	updated, err = registry.Update(ctx, testAdmin, tk.ID, domain.TicketUpdate{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusActive, updated.Status)
	assert.False(t, updated.Used)
}

func TestTicketRegistry_UpdateRejectsBadFields(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	bogus := domain.TicketStatus("refunded")
	_, err := registry.Update(ctx, testAdmin, "x", domain.TicketUpdate{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrValidation)

	neg := -5.0
	_, err = registry.Update(ctx, testAdmin, "x", domain.TicketUpdate{Price: &neg})
	assert.ErrorIs(t, err, domain.ErrValidation)

	empty := ""
	_, err = registry.Update(ctx, testAdmin, "x", domain.TicketUpdate{Email: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTicketRegistry_UpdateDeleteNotFound(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	name := "x"
	_, err := registry.Update(ctx, testAdmin, "missing", domain.TicketUpdate{EventName: &name})
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	assert.ErrorIs(t, registry.Delete(ctx, testAdmin, "missing"), domain.ErrTicketNotFound)
}

func TestTicketRegistry_EmptyUpdate(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	_, err := registry.Update(ctx, testAdmin, "missing", domain.TicketUpdate{})
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
	assert.NotErrorIs(t, err, domain.ErrValidation)

	tk := issueOne(t, registry)
	_, err = registry.Update(ctx, testAdmin, tk.ID, domain.TicketUpdate{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := registry.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk, got)
}

func TestTicketRegistry_Delete(t *testing.T) {
	registry, _ := newTestRegistry()
	ctx := context.Background()

	tk, err := registry.Issue(ctx, testAdmin, "fan@example.com", "Gig", 10)
	require.NoError(t, err)

	require.NoError(t, registry.Delete(ctx, testAdmin, tk.ID))

	_, err = registry.Get(ctx, tk.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketRegistry_StorageFailurePropagates(t *testing.T) {
	store := newMemTicketStore()
	store.failErr = &domain.StorageError{Op: "dao.Insert", Err: errors.New("disk full")}
	registry := NewTicketRegistry(store, clock.NewFixed(time.Now()))

	_, err := registry.Issue(context.Background(), testAdmin, "fan@example.com", "Gig", 10)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
