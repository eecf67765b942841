package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	info, err := s.Put(ctx, "notes/a.pdf", strings.NewReader("hello"), PutObjectOptions{Size: 5, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	assert.NotEmpty(t, info.ETag)

	ok, err := s.Exists(ctx, "notes/a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, got, err := s.Get(ctx, "notes/a.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "application/pdf", got.ContentType)

	require.NoError(t, s.Delete(ctx, "notes/a.pdf"))
	require.NoError(t, s.Delete(ctx, "notes/a.pdf"))

	ok, err = s.Exists(ctx, "notes/a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.Get(ctx, "notes/a.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMemory_PutUnknownSize(t *testing.T) {
	s := NewMemory()
	info, err := s.Put(context.Background(), "k", strings.NewReader("abc"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
}

func TestMemory_PutShortRead(t *testing.T) {
	s := NewMemory()
	_, err := s.Put(context.Background(), "k", strings.NewReader("abc"), PutObjectOptions{Size: 10})
	assert.Error(t, err)

	ok, _ := s.Exists(context.Background(), "k")
	assert.False(t, ok)
}
