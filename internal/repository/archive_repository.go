package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pdpfeed/internal/model"
)

// ArchiveRepository stores raw page snapshots in Postgres so extraction rules
// can be replayed against old markup without refetching. Keyed by source URL,
// one current snapshot per page.
type ArchiveRepository struct {
	DB *pgxpool.Pool
}

func (r *ArchiveRepository) Save(p model.RawPage) error {
	ctx := context.Background()

	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM page_archive WHERE source_url = $1)", p.SourceURL).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(ctx, `
			UPDATE page_archive
			SET product_id = $1, raw_html = $2, fetched_at = now()
			WHERE source_url = $3
		`, p.ProductID, p.HTML, p.SourceURL)
	} else {
		_, err = r.DB.Exec(ctx, `
			INSERT INTO page_archive
			(id, product_id, source_url, raw_html, fetched_at)
			VALUES ($1, $2, $3, $4, now())
		`, p.ID, p.ProductID, p.SourceURL, p.HTML)
	}

	return err
}

func (r *ArchiveRepository) List() ([]model.RawPage, error) {
	ctx := context.Background()

	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, source_url, raw_html
		FROM page_archive
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RawPage
	for rows.Next() {
		var p model.RawPage
		if err := rows.Scan(&p.ID, &p.ProductID, &p.SourceURL, &p.HTML); err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	return list, rows.Err()
}
