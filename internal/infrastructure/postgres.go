package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(connString string) (*PostgresClient, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			display_name VARCHAR(255) NOT NULL DEFAULT '',
			photo_url TEXT,
			password_hash VARCHAR(255) NOT NULL DEFAULT '',
			is_pro BOOLEAN NOT NULL DEFAULT FALSE,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			pro_expires_at TIMESTAMPTZ,
			pages_created INT NOT NULL DEFAULT 0,
			last_login TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS pages (
			id SERIAL PRIMARY KEY,
			short_id VARCHAR(16) UNIQUE NOT NULL,
			user_id INT REFERENCES users(id) ON DELETE SET NULL,
			title VARCHAR(255) NOT NULL,
			recipient_name VARCHAR(255) NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			page_type VARCHAR(10) NOT NULL DEFAULT 'free', -- free/pro
			theme VARCHAR(50) NOT NULL DEFAULT 'classic',
			custom_html TEXT,
			custom_css TEXT,
			views INT NOT NULL DEFAULT 0,
			unique_views INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS page_responses (
			id SERIAL PRIMARY KEY,
			page_id INT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			answer VARCHAR(3) NOT NULL, -- yes/no
			ip_address VARCHAR(45) NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			responded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id SERIAL PRIMARY KEY,
			user_id INT REFERENCES users(id) ON DELETE SET NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'other', -- comment/custom_page/support/other
			subject VARCHAR(255) NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			admin_notes TEXT NOT NULL DEFAULT '',
			reply_text TEXT NOT NULL DEFAULT '',
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			user_id INT REFERENCES users(id) ON DELETE CASCADE,
			audience VARCHAR(20) NOT NULL DEFAULT 'individual',
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'info',
			icon VARCHAR(50) NOT NULL DEFAULT '',
			action_url TEXT NOT NULL DEFAULT '',
			action_text VARCHAR(100) NOT NULL DEFAULT '',
			recipient_count INT NOT NULL DEFAULT 0,
			read_count INT NOT NULL DEFAULT 0,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE TABLE IF NOT EXISTS templates (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			preview_image_url TEXT NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL DEFAULT 'otro',
			html TEXT NOT NULL DEFAULT '',
			css TEXT NOT NULL DEFAULT '',
			editable_fields JSONB NOT NULL DEFAULT '[]',
			is_pro BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INT NOT NULL DEFAULT 0,
			tags JSONB NOT NULL DEFAULT '[]',
			usage_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,

		`CREATE INDEX IF NOT EXISTS idx_pages_user ON pages(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);`,
	}

	for _, q := range stmts {
		if _, err := p.Pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
