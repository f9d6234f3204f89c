package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// AuditLog records admin mutations (toggles, patches, deletes) in a local
// SQLite file, separate from the main Postgres database so the console keeps
// a trail even when the product database is restored from backup.
type AuditLog struct {
	db *sql.DB
}

type AuditEntry struct {
	ID        int64     `json:"id"`
	AdminID   int       `json:"adminId"`
	Resource  string    `json:"resource"`
	TargetID  string    `json:"targetId"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAuditLog(path string) (*AuditLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS audit_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		admin_id INTEGER NOT NULL,
		resource TEXT NOT NULL,
		target_id TEXT NOT NULL,
		action TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	return &AuditLog{db: db}, nil
}

// Record appends one entry. Audit failures never block the mutation that
// triggered them; callers log and move on.
func (a *AuditLog) Record(ctx context.Context, adminID int, resource, targetID, action, detail string) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO audit_entries (admin_id, resource, target_id, action, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		adminID, resource, targetID, action, detail, time.Now().UTC())
	return err
}

// Recent returns the latest entries, newest first.
func (a *AuditLog) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, admin_id, resource, target_id, action, detail, created_at
		 FROM audit_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Resource, &e.TargetID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (a *AuditLog) Close() error {
	return a.db.Close()
}
