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

// UserListSpec whitelists the query surface of /admin/users.
var UserListSpec = listquery.Spec{
	SearchColumns: []string{"email", "display_name"},
	Filters: map[string]listquery.Filter{
		"isPro": {Column: "is_pro", Bool: true},
	},
	SortColumns: map[string]string{
		"createdAt":    "created_at",
		"email":        "email",
		"displayName":  "display_name",
		"pagesCreated": "pages_created",
		"lastLogin":    "last_login",
	},
	DefaultSort: "created_at",
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, display_name, photo_url, password_hash, is_pro, is_admin,
	pro_expires_at, pages_created, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.PasswordHash,
		&u.IsPro, &u.IsAdmin, &u.ProExpiresAt, &u.PagesCreated,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, display_name, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Email, user.DisplayName, user.PasswordHash, user.IsAdmin).Scan(&user.ID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entities.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// List runs the collection query contract over users. pages_created is the
// stored counter; the live page count rides along for the detail view.
func (r *UserRepository) List(ctx context.Context, p listquery.Params) ([]entities.User, int, error) {
	where, args, tail := p.Build(UserListSpec)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+userColumns+" FROM users "+where+" "+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.PasswordHash,
			&u.IsPro, &u.IsAdmin, &u.ProExpiresAt, &u.PagesCreated,
			&u.LastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id)
	return err
}

// Stats returns the user counters for the dashboard.
func (r *UserRepository) Stats(ctx context.Context) (total, pro, newLast7 int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_pro),
		       COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days')
		FROM users`).Scan(&total, &pro, &newLast7)
	return total, pro, newLast7, err
}
