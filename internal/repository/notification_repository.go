package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
)

// NotificationListSpec whitelists the query surface of /notifications/admin/all.
var NotificationListSpec = listquery.Spec{
	SearchColumns: []string{"title", "message"},
	Filters: map[string]listquery.Filter{
		"audience": {Column: "audience"},
		"type":     {Column: "type"},
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
		"readCount": "read_count",
	},
	DefaultSort: "created_at",
}

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const insertNotificationQuery = `
	INSERT INTO notifications (user_id, audience, title, message, type, icon,
		action_url, action_text, recipient_count, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at`

func (r *NotificationRepository) Insert(ctx context.Context, n *entities.Notification) error {
	return r.db.QueryRow(ctx, insertNotificationQuery,
		n.UserID, n.Audience, n.Title, n.Message, n.Type, n.Icon,
		n.ActionURL, n.ActionText, n.RecipientCount, n.ExpiresAt).
		Scan(&n.ID, &n.CreatedAt)
}

// InsertBatch persists a set of notifications in one transaction; a failed
// insert rolls back the whole batch.
func (r *NotificationRepository) InsertBatch(ctx context.Context, ns []*entities.Notification) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, n := range ns {
		if err := tx.QueryRow(ctx, insertNotificationQuery,
			n.UserID, n.Audience, n.Title, n.Message, n.Type, n.Icon,
			n.ActionURL, n.ActionText, n.RecipientCount, n.ExpiresAt).
			Scan(&n.ID, &n.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// CountAudience resolves how many accounts a broadcast reaches.
func (r *NotificationRepository) CountAudience(ctx context.Context, audience string) (int, error) {
	q := "SELECT COUNT(*) FROM users"
	switch audience {
	case entities.AudiencePro:
		q += " WHERE is_pro"
	case entities.AudienceFree:
		q += " WHERE NOT is_pro"
	case entities.AudienceAll:
	default:
		return 0, fmt.Errorf("unknown audience %q", audience)
	}
	var n int
	err := r.db.QueryRow(ctx, q).Scan(&n)
	return n, err
}

func (r *NotificationRepository) List(ctx context.Context, p listquery.Params) ([]entities.Notification, int, error) {
	where, args, tail := p.Build(NotificationListSpec)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, audience, title, message, type, icon, action_url,
		       action_text, recipient_count, read_count, expires_at, created_at
		FROM notifications `+where+" "+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var items []entities.Notification
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Audience, &n.Title, &n.Message,
			&n.Type, &n.Icon, &n.ActionURL, &n.ActionText,
			&n.RecipientCount, &n.ReadCount, &n.ExpiresAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM notifications WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Stats(ctx context.Context) (*entities.NotificationStats, error) {
	stats := &entities.NotificationStats{ByType: make(map[string]int)}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(recipient_count), 0), COALESCE(SUM(read_count), 0)
		FROM notifications`).Scan(&stats.Total, &stats.TotalSent, &stats.TotalRead)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, "SELECT type, COUNT(*) FROM notifications GROUP BY type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		stats.ByType[t] = n
	}
	return stats, rows.Err()
}
