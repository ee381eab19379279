package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animal-shelter/internal/domain/cats"
	"animal-shelter/internal/domain/photos"
)

func TestInTx_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := cats.Cat{Name: "Milo", Gender: cats.GenderMale}
	require.NoError(t, s.Cats().Create(ctx, &c))

	boom := errors.New("boom")
	err := s.InTx(ctx, func(ctx context.Context, st cats.Store) error {
		if err := st.Cats().Create(ctx, &cats.Cat{Name: "fantasma", Gender: cats.GenderFemale}); err != nil {
			return err
		}
		if err := st.Photos().Create(ctx, &photos.Photo{CatID: c.ID, URL: "u"}); err != nil {
			return err
		}
		op := cats.PendingOp{Kind: cats.OpPhotosUpload, CatID: c.ID}
		if err := st.PendingOps().Create(ctx, &op); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Todo lo escrito dentro de la transacción fallida debe desaparecer.
	all, err := s.Cats().List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	ph, err := s.Photos().ListByCat(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, ph)

	ops, err := s.PendingOps().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestInTx_CommitKeepsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var id int64
	err := s.InTx(ctx, func(ctx context.Context, st cats.Store) error {
		c := cats.Cat{Name: "Nina", Gender: cats.GenderFemale}
		if err := st.Cats().Create(ctx, &c); err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	require.NoError(t, err)

	got, err := s.Cats().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Nina", got.Name)
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := cats.Cat{Name: "Milo", Gender: cats.GenderMale}
	require.NoError(t, s.Cats().Create(ctx, &c))

	v, err := s.Cats().IncrementViews(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	v, err = s.Cats().IncrementViews(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	_, err = s.Cats().IncrementViews(ctx, 99)
	assert.ErrorIs(t, err, cats.ErrNotFound)
}

func TestPhotosRepo_DeleteByCat(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	a := cats.Cat{Name: "A", Gender: cats.GenderMale}
	b := cats.Cat{Name: "B", Gender: cats.GenderFemale}
	require.NoError(t, s.Cats().Create(ctx, &a))
	require.NoError(t, s.Cats().Create(ctx, &b))

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Photos().Create(ctx, &photos.Photo{CatID: a.ID, URL: "u"}))
	}
	require.NoError(t, s.Photos().Create(ctx, &photos.Photo{CatID: b.ID, URL: "u"}))

	require.NoError(t, s.Photos().DeleteByCat(ctx, a.ID))

	ph, err := s.Photos().ListByCat(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, ph)

	ph, err = s.Photos().ListByCat(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, ph, 1)
}
