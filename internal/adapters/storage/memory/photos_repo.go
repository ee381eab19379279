package memory

import (
	"context"
	"sort"

	"animal-shelter/internal/domain/photos"
)

type photosRepo struct {
	s *Store
}

func (r *photosRepo) Create(ctx context.Context, p *photos.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.st.nextPhoto
	r.s.st.nextPhoto++
	r.s.st.photos[p.ID] = *p
	return nil
}

func (r *photosRepo) GetByID(ctx context.Context, id int64) (photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.st.photos[id]
	if !ok {
		return photos.Photo{}, photos.ErrNotFound
	}
	return p, nil
}

func (r *photosRepo) ListByCat(ctx context.Context, catID int64) ([]photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]photos.Photo, 0)
	for _, p := range r.s.st.photos {
		if p.CatID == catID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *photosRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.photos[id]; !ok {
		return photos.ErrNotFound
	}
	delete(r.s.st.photos, id)
	return nil
}

func (r *photosRepo) DeleteByCat(ctx context.Context, catID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.st.photos {
		if p.CatID == catID {
			delete(r.s.st.photos, id)
		}
	}
	return nil
}
