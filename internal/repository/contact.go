package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// ContactRepository is the storage boundary for stored contacts. Multi-valued
// fields cross it flattened to ", "-joined strings.
type ContactRepository interface {
	Insert(ctx context.Context, contact *entity.Contact) error
	ListContacts(ctx context.Context) ([]entity.Contact, error)
	GetByID(ctx context.Context, id int64) (*entity.Contact, error)
	Update(ctx context.Context, id int64, contact entity.Contact) error
	Delete(ctx context.Context, id int64) error
}

type contactRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// NewContactRepository wraps db in a ContactRepository. driver must be one of
// DriverSQLite or DriverPostgres so placeholders can be rebound.
func NewContactRepository(db *sql.DB, driver string, logger *slog.Logger) ContactRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactRepository{db: db, driver: driver, logger: logger}
}

// rebind rewrites ? placeholders to $n for postgres.
func (r *contactRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *contactRepository) Insert(ctx context.Context, contact *entity.Contact) error {
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	const insertSQL = `INSERT INTO contacts (name, designation, company, phone, email, website, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		contact.Name, contact.Designation, contact.Company,
		contact.Phone, contact.Email, contact.Website,
		contact.Address, contact.CreatedAt,
	}

	if r.driver == DriverPostgres {
		err := r.db.QueryRowContext(ctx, r.rebind(insertSQL)+" RETURNING id", args...).Scan(&contact.ID)
		if err != nil {
			r.logger.Error("failed to insert contact", "error", err)
			return common.WrapError(err, "insert contact")
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx, insertSQL, args...)
	if err != nil {
		r.logger.Error("failed to insert contact", "error", err)
		return common.WrapError(err, "insert contact")
	}
	contact.ID, err = res.LastInsertId()
	if err != nil {
		return common.WrapError(err, "insert contact id")
	}
	return nil
}

func (r *contactRepository) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, designation, company, phone, email, website, address, created_at
		 FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.logger.Error("failed to list contacts", "error", err)
		return nil, common.WrapError(err, "list contacts")
	}
	defer rows.Close()

	var contacts []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Designation, &c.Company,
			&c.Phone, &c.Email, &c.Website, &c.Address, &c.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan contact")
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list contacts")
	}
	return contacts, nil
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (*entity.Contact, error) {
	var c entity.Contact
	err := r.db.QueryRowContext(ctx, r.rebind(
		`SELECT id, name, designation, company, phone, email, website, address, created_at
		 FROM contacts WHERE id = ?`), id).
		Scan(&c.ID, &c.Name, &c.Designation, &c.Company,
			&c.Phone, &c.Email, &c.Website, &c.Address, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get contact", "id", id, "error", err)
		return nil, common.WrapError(err, "get contact")
	}
	return &c, nil
}

func (r *contactRepository) Update(ctx context.Context, id int64, contact entity.Contact) error {
	res, err := r.db.ExecContext(ctx, r.rebind(
		`UPDATE contacts
		 SET name = ?, designation = ?, company = ?, phone = ?, email = ?, website = ?, address = ?
		 WHERE id = ?`),
		contact.Name, contact.Designation, contact.Company,
		contact.Phone, contact.Email, contact.Website, contact.Address, id)
	if err != nil {
		r.logger.Error("failed to update contact", "id", id, "error", err)
		return common.WrapError(err, "update contact")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "update contact")
	}
	if n == 0 {
		return common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	r.logger.Info("contact.updated", "id", id)
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM contacts WHERE id = ?`), id)
	if err != nil {
		r.logger.Error("failed to delete contact", "id", id, "error", err)
		return common.WrapError(err, "delete contact")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "delete contact")
	}
	if n == 0 {
		return common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	r.logger.Info("contact.deleted", "id", id)
	return nil
}
