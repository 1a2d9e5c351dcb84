package receipt

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	t.Run("should read back stored receipt", func(t *testing.T) {
		// given
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)
		ctx := context.Background()

		// when
		err = store.Put(ctx, "bills/u1/a.png", "image/png", []byte("png-bytes"))

		// then
		require.NoError(t, err)
		body, err := store.Get(ctx, "bills/u1/a.png")
		require.NoError(t, err)
		defer body.Close()
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("should report missing receipt", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Get(context.Background(), "bills/u1/missing.jpg")

		assert.ErrorIs(t, err, ErrReceiptNotFound)
	})

	t.Run("should list only the given prefix", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "bills/u1/b.jpg", "image/jpeg", []byte("1")))
		require.NoError(t, store.Put(ctx, "bills/u1/a.png", "image/png", []byte("2")))
		require.NoError(t, store.Put(ctx, "bills/u2/c.jpg", "image/jpeg", []byte("3")))

		refs, err := store.List(ctx, "bills/u1/")

		require.NoError(t, err)
		assert.Equal(t, []string{"bills/u1/a.png", "bills/u1/b.jpg"}, refs)
	})

	t.Run("should list nothing for unknown prefix", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		refs, err := store.List(context.Background(), "bills/nobody/")

		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("should refuse refs outside root", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)
		ctx := context.Background()

		err = store.Put(ctx, "bills/../../escaped/a.png", "image/png", []byte("1"))
		assert.ErrorIs(t, err, ErrInvalidRef)

		_, err = store.Get(ctx, "../outside.png")
		assert.ErrorIs(t, err, ErrReceiptNotFound)

		_, err = store.List(ctx, "../")
		assert.ErrorIs(t, err, ErrInvalidRef)
	})
}
