package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/domain/photos"
)

type CatsRepo struct {
	q DBTX
}

func NewCatsRepo(q DBTX) *CatsRepo {
	return &CatsRepo{q: q}
}

func (r *CatsRepo) Create(ctx context.Context, c *cats.Cat) error {
	row := r.q.QueryRowContext(ctx, `
		INSERT INTO cats (name, age, gender, about, sterilized)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at, views
	`,
		c.Name,
		toNullInt(c.Age),
		string(c.Gender),
		c.About,
		c.Sterilized,
	)
	if err := row.Scan(&c.ID, &c.RegisteredAt, &c.Views); err != nil {
		return fmt.Errorf("insert cat: %w", err)
	}
	return nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, age, gender, about, sterilized,
		       registered_at, views, storage_folder
		FROM cats
		WHERE id = $1
	`, id)

	c, err := scanCat(row)
	if err != nil {
		return cats.Cat{}, mapNotFound(err, cats.ErrNotFound)
	}
	return c, nil
}

func (r *CatsRepo) GetWithPhotos(ctx context.Context, id int64) (cats.Cat, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}

	ph, err := (&PhotosRepo{q: r.q}).ListByCat(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}
	c.Photos = ph
	return c, nil
}

func (r *CatsRepo) List(ctx context.Context, skip, limit int) ([]cats.Cat, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, age, gender, about, sterilized,
		       registered_at, views, storage_folder
		FROM cats
		ORDER BY id ASC
		OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE cats
		SET name = $2, age = $3, gender = $4, about = $5, sterilized = $6
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		toNullInt(c.Age),
		string(c.Gender),
		c.About,
		c.Sterilized,
	)
	if err != nil {
		return fmt.Errorf("update cat: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) SetStorageFolder(ctx context.Context, id int64, folder string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE cats SET storage_folder = NULLIF($2, '') WHERE id = $1
	`, id, folder)
	if err != nil {
		return fmt.Errorf("set storage folder: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE cats SET views = views + 1 WHERE id = $1 RETURNING views
	`, id)

	var views int64
	if err := row.Scan(&views); err != nil {
		return 0, mapNotFound(err, cats.ErrNotFound)
	}
	return views, nil
}

func (r *CatsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cat: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCat(row rowScanner) (cats.Cat, error) {
	var (
		c      cats.Cat
		age    sql.NullInt64
		folder sql.NullString
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&age,
		&c.Gender,
		&c.About,
		&c.Sterilized,
		&c.RegisteredAt,
		&c.Views,
		&folder,
	)
	if err != nil {
		return cats.Cat{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		c.Age = &v
	}
	c.StorageFolder = folder.String
	c.Photos = []photos.Photo{}

	return c, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
