package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

type mockTicketService struct {
	mock.Mock
}

func (m *mockTicketService) Issue(ctx context.Context, caller domain.Caller, email, eventName string, price float64) (domain.Ticket, error) {
	args := m.Called(ctx, caller, email, eventName, price)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) Get(ctx context.Context, id string) (domain.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) List(ctx context.Context, caller domain.Caller, filter domain.TicketFilter) ([]domain.Ticket, error) {
	args := m.Called(ctx, caller, filter)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *mockTicketService) Update(ctx context.Context, caller domain.Caller, id string, update domain.TicketUpdate) (domain.Ticket, error) {
	args := m.Called(ctx, caller, id, update)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

func (m *mockTicketService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, payload domain.ScanPayload) (domain.ValidationOutcome, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(domain.ValidationOutcome), args.Error(1)
}

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) SubmitRaw(ctx context.Context, raw []byte) (domain.ValidationOutcome, error) {
	args := m.Called(ctx, string(raw))
	return args.Get(0).(domain.ValidationOutcome), args.Error(1)
}

type mockPurchaser struct {
	mock.Mock
}

func (m *mockPurchaser) Purchase(ctx context.Context, buyer domain.Caller) (domain.Ticket, error) {
	args := m.Called(ctx, buyer)
	return args.Get(0).(domain.Ticket), args.Error(1)
}

type mockDocuments struct {
	mock.Mock
}

func (m *mockDocuments) RenderTicket(ctx context.Context, id string) (domain.Ticket, string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Ticket), args.String(1), args.Error(2)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) AdminLogin(ctx context.Context, username, password string) (domain.Admin, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Admin), args.Error(1)
}

func (m *mockAuthService) CheckAdmin(ctx context.Context) (domain.Admin, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Admin), args.Bool(1), args.Error(2)
}

func (m *mockAuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	args := m.Called(ctx, identifier, password)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) ListUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, caller domain.Caller, id uint) (domain.User, error) {
	args := m.Called(ctx, caller, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, caller domain.Caller, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, caller, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}
