package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketIDExists = errors.New("ticket id already exists")
)

// Ticket has no used column: it is derived from status when mapped to the domain.
type Ticket struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"not null;index"`
	EventName    string    `gorm:"not null"`
	Price        float64   `gorm:"not null"`
	Status       string    `gorm:"not null;default:active;index"`
	PurchaseDate time.Time `gorm:"not null;index"`
}

type TicketFilter struct {
	Status string
	Email  string
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Ticket{}, ErrTicketIDExists
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByIDAndEmail(ctx context.Context, id, email string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "id = ? AND email = ?", id, email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// Find returns the matching tickets, most recent purchase first.
func (d *TicketDAO) Find(ctx context.Context, filter TicketFilter) ([]Ticket, error) {
	var tickets []Ticket

	query := d.db.WithContext(ctx).Model(&Ticket{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	result := query.Order("purchase_date DESC").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// Update writes the given columns and returns the stored row. Both statements
// run in one transaction so the returned row is the one that was written.
func (d *TicketDAO) Update(ctx context.Context, id string, fields map[string]interface{}) (Ticket, error) {
	var ticket Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			result := tx.Model(&Ticket{}).Where("id = ?", id).Updates(fields)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTicketNotFound
			}
		}

		result := tx.First(&ticket, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return result.Error
		}

		return nil
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

// CompareAndSetStatus moves the ticket owned by email from one status to
// another in a single conditional UPDATE. It reports whether this call made
// the change.
func (d *TicketDAO) CompareAndSetStatus(ctx context.Context, id, email, from, to string) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ? AND email = ? AND status = ?", id, email, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (d *TicketDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Where("id = ?", id).Delete(&Ticket{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}
