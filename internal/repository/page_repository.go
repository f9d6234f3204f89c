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

// PageListSpec whitelists the query surface of /admin/pages. Columns are
// prefixed because the listing joins the owner.
var PageListSpec = listquery.Spec{
	SearchColumns: []string{"p.title", "p.recipient_name", "p.short_id"},
	Filters: map[string]listquery.Filter{
		"pageType": {Column: "p.page_type"},
		"isActive": {Column: "p.is_active", Bool: true},
	},
	SortColumns: map[string]string{
		"createdAt": "p.created_at",
		"title":     "p.title",
		"views":     "p.views",
		"responses": "total_responses",
	},
	DefaultSort: "p.created_at",
}

type PageRepository struct {
	db *pgxpool.Pool
}

func NewPageRepository(db *pgxpool.Pool) *PageRepository {
	return &PageRepository{db: db}
}

const pageListQuery = `
	SELECT p.id, p.short_id, p.title, p.recipient_name, p.page_type, p.theme,
	       p.views, p.is_active, p.created_at,
	       COUNT(r.id) AS total_responses,
	       COUNT(r.id) FILTER (WHERE r.answer = 'yes') AS yes_count,
	       COUNT(r.id) FILTER (WHERE r.answer = 'no') AS no_count,
	       u.id, u.email, u.display_name
	FROM pages p
	LEFT JOIN users u ON u.id = p.user_id
	LEFT JOIN page_responses r ON r.page_id = p.id`

func (r *PageRepository) List(ctx context.Context, p listquery.Params) ([]entities.Page, int, error) {
	where, args, tail := p.Build(PageListSpec)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM pages p "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pages: %w", err)
	}

	rows, err := r.db.Query(ctx,
		pageListQuery+" "+where+" GROUP BY p.id, u.id "+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []entities.Page
	for rows.Next() {
		var pg entities.Page
		var ownerID *int
		var ownerEmail, ownerName *string
		if err := rows.Scan(&pg.ID, &pg.ShortID, &pg.Title, &pg.RecipientName, &pg.PageType,
			&pg.Theme, &pg.Views, &pg.IsActive, &pg.CreatedAt,
			&pg.TotalResponses, &pg.YesCount, &pg.NoCount,
			&ownerID, &ownerEmail, &ownerName); err != nil {
			return nil, 0, err
		}
		if ownerID != nil {
			pg.Owner = &entities.PageOwner{ID: *ownerID, Email: *ownerEmail, DisplayName: *ownerName}
		}
		pages = append(pages, pg)
	}
	return pages, total, rows.Err()
}

// ListByOwner returns a user's pages for the user detail view.
func (r *PageRepository) ListByOwner(ctx context.Context, userID int) ([]entities.Page, error) {
	rows, err := r.db.Query(ctx,
		pageListQuery+" WHERE p.user_id = $1 GROUP BY p.id, u.id ORDER BY p.created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list pages by owner: %w", err)
	}
	defer rows.Close()

	var pages []entities.Page
	for rows.Next() {
		var pg entities.Page
		var ownerID *int
		var ownerEmail, ownerName *string
		if err := rows.Scan(&pg.ID, &pg.ShortID, &pg.Title, &pg.RecipientName, &pg.PageType,
			&pg.Theme, &pg.Views, &pg.IsActive, &pg.CreatedAt,
			&pg.TotalResponses, &pg.YesCount, &pg.NoCount,
			&ownerID, &ownerEmail, &ownerName); err != nil {
			return nil, err
		}
		if ownerID != nil {
			pg.Owner = &entities.PageOwner{ID: *ownerID, Email: *ownerEmail, DisplayName: *ownerName}
		}
		pages = append(pages, pg)
	}
	return pages, rows.Err()
}

// GetDetail loads one page with its responses and derived stats.
func (r *PageRepository) GetDetail(ctx context.Context, id int) (*entities.PageDetail, error) {
	var d entities.PageDetail
	var ownerID *int
	var ownerEmail, ownerName *string
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.short_id, p.title, p.recipient_name, p.message, p.page_type,
		       p.theme, p.custom_html, p.custom_css, p.views, p.unique_views,
		       p.is_active, p.created_at, p.updated_at,
		       u.id, u.email, u.display_name
		FROM pages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`, id).Scan(
		&d.ID, &d.ShortID, &d.Title, &d.RecipientName, &d.Message, &d.PageType,
		&d.Theme, &d.CustomHTML, &d.CustomCSS, &d.Views, &d.UniqueViews,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&ownerID, &ownerEmail, &ownerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if ownerID != nil {
		d.Owner = &entities.PageOwner{ID: *ownerID, Email: *ownerEmail, DisplayName: *ownerName}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, answer, ip_address, user_agent, responded_at
		FROM page_responses WHERE page_id = $1 ORDER BY responded_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("page responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp entities.PageResponse
		if err := rows.Scan(&resp.ID, &resp.Answer, &resp.IPAddress, &resp.UserAgent, &resp.RespondedAt); err != nil {
			return nil, err
		}
		if resp.Answer == "yes" {
			d.YesCount++
		} else {
			d.NoCount++
		}
		d.Responses = append(d.Responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d.TotalResponses = len(d.Responses)
	d.Stats = entities.PageStats{
		Views:          d.Views,
		UniqueViews:    d.UniqueViews,
		TotalResponses: d.TotalResponses,
		YesCount:       d.YesCount,
		NoCount:        d.NoCount,
	}
	if d.TotalResponses > 0 {
		d.Stats.YesPercentage = float64(d.YesCount) * 100 / float64(d.TotalResponses)
		d.Stats.NoPercentage = float64(d.NoCount) * 100 / float64(d.TotalResponses)
	}
	return &d, nil
}

// ToggleActive flips the active flag server-side and returns the new value.
// The database is the source of truth; callers never send the prior value.
func (r *PageRepository) ToggleActive(ctx context.Context, id int) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		"UPDATE pages SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING is_active",
		id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	return active, err
}

// ShortID resolves a page's share slug for link building.
func (r *PageRepository) ShortID(ctx context.Context, id int) (string, error) {
	var shortID string
	err := r.db.QueryRow(ctx, "SELECT short_id FROM pages WHERE id = $1", id).Scan(&shortID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return shortID, err
}

func (r *PageRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM pages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the page counters for the dashboard.
func (r *PageRepository) Stats(ctx context.Context) (total, active, newLast7 int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days')
		FROM pages`).Scan(&total, &active, &newLast7)
	return total, active, newLast7, err
}
