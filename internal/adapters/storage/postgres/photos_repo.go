package postgres

import (
	"context"
	"fmt"

	"animal-shelter/internal/domain/photos"
)

type PhotosRepo struct {
	q DBTX
}

func NewPhotosRepo(q DBTX) *PhotosRepo {
	return &PhotosRepo{q: q}
}

func (r *PhotosRepo) Create(ctx context.Context, p *photos.Photo) error {
	row := r.q.QueryRowContext(ctx, `
		INSERT INTO photos (url, file_id, cat_id)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id
	`, p.URL, p.FileID, p.CatID)

	if err := row.Scan(&p.ID); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *PhotosRepo) GetByID(ctx context.Context, id int64) (photos.Photo, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, url, COALESCE(file_id, ''), cat_id
		FROM photos
		WHERE id = $1
	`, id)

	var p photos.Photo
	if err := row.Scan(&p.ID, &p.URL, &p.FileID, &p.CatID); err != nil {
		return photos.Photo{}, mapNotFound(err, photos.ErrNotFound)
	}
	return p, nil
}

func (r *PhotosRepo) ListByCat(ctx context.Context, catID int64) ([]photos.Photo, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, url, COALESCE(file_id, ''), cat_id
		FROM photos
		WHERE cat_id = $1
		ORDER BY id ASC
	`, catID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	out := make([]photos.Photo, 0)
	for rows.Next() {
		var p photos.Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.FileID, &p.CatID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PhotosRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return photos.ErrNotFound
	}
	return nil
}

func (r *PhotosRepo) DeleteByCat(ctx context.Context, catID int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM photos WHERE cat_id = $1`, catID)
	if err != nil {
		return fmt.Errorf("delete photos by cat: %w", err)
	}
	return nil
}
