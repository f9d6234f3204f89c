package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lovepages-admin/internal/entities"
	"lovepages-admin/internal/listquery"
)

// TemplateListSpec whitelists the query surface of /admin/templates.
var TemplateListSpec = listquery.Spec{
	SearchColumns: []string{"name", "description"},
	Filters: map[string]listquery.Filter{
		"category": {Column: "category"},
		"isPro":    {Column: "is_pro", Bool: true},
		"isActive": {Column: "is_active", Bool: true},
	},
	SortColumns: map[string]string{
		"createdAt":  "created_at",
		"name":       "name",
		"sortOrder":  "sort_order",
		"usageCount": "usage_count",
	},
	DefaultSort: "sort_order",
}

type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id, name, description, preview_image_url, category, html, css,
	editable_fields, tags, is_pro, is_active, sort_order, usage_count, created_at, updated_at`

func scanTemplate(row pgx.Row) (*entities.Template, error) {
	var t entities.Template
	var fields, tags []byte
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.PreviewImageURL, &t.Category,
		&t.HTML, &t.CSS, &fields, &tags, &t.IsPro, &t.IsActive,
		&t.SortOrder, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &t.EditableFields); err != nil {
		return nil, fmt.Errorf("decode editable fields: %w", err)
	}
	if err := json.Unmarshal(tags, &t.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context, p listquery.Params) ([]entities.Template, int, error) {
	where, args, tail := p.Build(TemplateListSpec)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM templates "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+templateColumns+" FROM templates "+where+" "+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []entities.Template
	for rows.Next() {
		var t entities.Template
		var fields, tags []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.PreviewImageURL, &t.Category,
			&t.HTML, &t.CSS, &fields, &tags, &t.IsPro, &t.IsActive,
			&t.SortOrder, &t.UsageCount, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(fields, &t.EditableFields); err != nil {
			return nil, 0, fmt.Errorf("decode editable fields: %w", err)
		}
		if err := json.Unmarshal(tags, &t.Tags); err != nil {
			return nil, 0, fmt.Errorf("decode tags: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, total, rows.Err()
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int) (*entities.Template, error) {
	return scanTemplate(r.db.QueryRow(ctx,
		"SELECT "+templateColumns+" FROM templates WHERE id = $1", id))
}

func (r *TemplateRepository) Create(ctx context.Context, t *entities.Template) error {
	fields, err := json.Marshal(t.EditableFields)
	if err != nil {
		return fmt.Errorf("encode editable fields: %w", err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO templates (name, description, preview_image_url, category, html, css,
			editable_fields, tags, is_pro, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		t.Name, t.Description, t.PreviewImageURL, t.Category, t.HTML, t.CSS,
		fields, tags, t.IsPro, t.IsActive, t.SortOrder).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update replaces the editable template attributes. Callers load the current
// row, merge the patch and hand back the full entity.
func (r *TemplateRepository) Update(ctx context.Context, t *entities.Template) error {
	fields, err := json.Marshal(t.EditableFields)
	if err != nil {
		return fmt.Errorf("encode editable fields: %w", err)
	}
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE templates
		SET name = $2, description = $3, preview_image_url = $4, category = $5,
		    html = $6, css = $7, editable_fields = $8, tags = $9,
		    is_pro = $10, is_active = $11, sort_order = $12, updated_at = NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Description, t.PreviewImageURL, t.Category,
		t.HTML, t.CSS, fields, tags, t.IsPro, t.IsActive, t.SortOrder)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the active flag server-side and returns the new value.
func (r *TemplateRepository) ToggleActive(ctx context.Context, id int) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		"UPDATE templates SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING is_active",
		id).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	return active, err
}

func (r *TemplateRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
