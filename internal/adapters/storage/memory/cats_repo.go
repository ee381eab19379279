package memory

import (
	"context"
	"sort"
	"time"

	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/domain/photos"
)

type catsRepo struct {
	s *Store
}

func (r *catsRepo) Create(ctx context.Context, c *cats.Cat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = r.s.st.nextCat
	r.s.st.nextCat++

	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = time.Now().UTC()
	}
	c.Views = 0

	stored := *c
	stored.Photos = nil
	r.s.st.cats[c.ID] = stored
	return nil
}

func (r *catsRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.st.cats[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	c.Photos = []photos.Photo{}
	return c, nil
}

func (r *catsRepo) GetWithPhotos(ctx context.Context, id int64) (cats.Cat, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}

	ph, err := (&photosRepo{s: r.s}).ListByCat(ctx, id)
	if err != nil {
		return cats.Cat{}, err
	}
	c.Photos = ph
	return c, nil
}

func (r *catsRepo) List(ctx context.Context, skip, limit int) ([]cats.Cat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]cats.Cat, 0, len(r.s.st.cats))
	for _, c := range r.s.st.cats {
		c.Photos = []photos.Photo{}
		all = append(all, c)
	}

	// Orden de inserción = id ascendente, igual que Postgres.
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if skip >= len(all) {
		return []cats.Cat{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *catsRepo) Update(ctx context.Context, c cats.Cat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.st.cats[c.ID]
	if !ok {
		return cats.ErrNotFound
	}

	cur.Name = c.Name
	cur.Age = c.Age
	cur.Gender = c.Gender
	cur.About = c.About
	cur.Sterilized = c.Sterilized
	r.s.st.cats[c.ID] = cur
	return nil
}

func (r *catsRepo) SetStorageFolder(ctx context.Context, id int64, folder string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.st.cats[id]
	if !ok {
		return cats.ErrNotFound
	}
	c.StorageFolder = folder
	r.s.st.cats[id] = c
	return nil
}

func (r *catsRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.st.cats[id]
	if !ok {
		return 0, cats.ErrNotFound
	}
	c.Views++
	r.s.st.cats[id] = c
	return c.Views, nil
}

func (r *catsRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.cats[id]; !ok {
		return cats.ErrNotFound
	}
	delete(r.s.st.cats, id)
	return nil
}
