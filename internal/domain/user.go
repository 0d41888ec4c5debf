package domain

import "time"

// Role is a flat capability set, not a hierarchy.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Caller is the capability passed into gated operations. It is built by the
// transport layer from a verified token; the core does no authentication.
type Caller struct {
	Subject string
	Email   string
	Role    Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func AdminCaller(subject string) Caller {
	return Caller{Subject: subject, Role: RoleAdmin}
}

type Admin struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserUpdate struct {
	Name     *string
	IsActive *bool
}
