package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListOrderedByID(t *testing.T) {
	svc := NewCatalogService(nil, &fakeRepoManager{s: newStore(chair(), sofa())}, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, "sofa.jpg", items[0].Image)
}

func TestCatalog_ListEmpty(t *testing.T) {
	svc := NewCatalogService(nil, &fakeRepoManager{s: newStore()}, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCatalog_Get(t *testing.T) {
	svc := NewCatalogService(nil, &fakeRepoManager{s: newStore(sofa(), chair())}, nil)

	p, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Chair", p.Name)
	require.NotNil(t, p.DiscountPercent)
	assert.Equal(t, 10, *p.DiscountPercent)

	_, err = svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCatalog_ResolvesImages(t *testing.T) {
	r := prefixResolver{base: "https://bucket/"}
	svc := NewCatalogService(nil, &fakeRepoManager{s: newStore(sofa(), chair())}, r)

	items, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://bucket/sofa.jpg", items[0].Image)
	assert.Equal(t, []string{"https://bucket/sofa-gray.jpg"}, items[0].Colors[0].Images)
	assert.Equal(t, "https://cdn.example.com/chair.jpg", items[1].Image)
}

func TestCatalog_ResolverFailureIsInternal(t *testing.T) {
	svc := NewCatalogService(nil, &fakeRepoManager{s: newStore(sofa())}, prefixResolver{err: errBoom})

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestCatalog_StoreFailureIsInternal(t *testing.T) {
	s := newStore(sofa())
	s.err = errBoom
	svc := NewCatalogService(nil, &fakeRepoManager{s: s}, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, common.ErrorInternal)
}
