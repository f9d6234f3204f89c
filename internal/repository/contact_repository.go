package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
)

// ContactListSpec whitelists the query surface of /admin/contacts.
var ContactListSpec = listquery.Spec{
	SearchColumns: []string{"name", "email", "subject"},
	Filters: map[string]listquery.Filter{
		"status": {Column: "status"},
		"type":   {Column: "type"},
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"status":    "status",
	},
	DefaultSort: "created_at",
}

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, user_id, name, email, type, subject, message, status,
	admin_notes, reply_text, responded_at, created_at, updated_at`

func scanContact(row pgx.Row) (*entities.Contact, error) {
	var c entities.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Type, &c.Subject,
		&c.Message, &c.Status, &c.AdminNotes, &c.ReplyText,
		&c.RespondedAt, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, p listquery.Params) ([]entities.Contact, int, error) {
	where, args, tail := p.Build(ContactListSpec)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM contacts "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+contactColumns+" FROM contacts "+where+" "+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []entities.Contact
	for rows.Next() {
		var c entities.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Type, &c.Subject,
			&c.Message, &c.Status, &c.AdminNotes, &c.ReplyText,
			&c.RespondedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, id int) (*entities.Contact, error) {
	return scanContact(r.db.QueryRow(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id = $1", id))
}

// Update patches status and/or admin notes; nil fields are left untouched.
func (r *ContactRepository) Update(ctx context.Context, id int, status, adminNotes *string) (*entities.Contact, error) {
	return scanContact(r.db.QueryRow(ctx, `
		UPDATE contacts
		SET status = COALESCE($2, status),
		    admin_notes = COALESCE($3, admin_notes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+contactColumns, id, status, adminNotes))
}

// Reply stores the reply text, stamps responded_at and resolves the contact.
func (r *ContactRepository) Reply(ctx context.Context, id int, replyText string) (*entities.Contact, error) {
	return scanContact(r.db.QueryRow(ctx, `
		UPDATE contacts
		SET reply_text = $2,
		    status = $3,
		    responded_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+contactColumns, id, replyText, entities.ContactResolved))
}

func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the contact counters for the dashboard.
func (r *ContactRepository) Stats(ctx context.Context) (total, pending int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending')
		FROM contacts`).Scan(&total, &pending)
	return total, pending, err
}
