package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddTwiceIncrementsQuantity(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	s := newStore(sofa())
	svc := NewCartService(db, &fakeRepoManager{s: s}, nil)
	gray := &models.ProductColor{Name: "Gray", Hex: "#808080"}
	red := &models.ProductColor{Name: "Red", Hex: "#ff0000"}

	first, err := svc.Add(context.Background(), 1, 1, 2, gray)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)
	require.NotNil(t, first.Product)
	assert.Equal(t, "Sofa", first.Product.Name)

	second, err := svc.Add(context.Background(), 1, 1, 3, red)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, "Gray", second.SelectedColor.Name)

	items, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCart_AddRejectsBadQuantity(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewCartService(db, &fakeRepoManager{s: newStore(sofa())}, nil)

	for _, q := range []int{0, -1, MaxCartQuantity + 1} {
		_, err := svc.Add(context.Background(), 1, 1, q, nil)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCart_AddOverflowingTotalIsValidationError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newStore(sofa())
	svc := NewCartService(db, &fakeRepoManager{s: s}, nil)

	_, err := svc.Add(context.Background(), 1, 1, MaxCartQuantity, nil)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 1, 1, 1, nil)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.NotErrorIs(t, err, common.ErrorInternal)
	require.Len(t, s.cart, 1)
	assert.Equal(t, MaxCartQuantity, s.cart[0].Quantity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCart_AddUnknownProductRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newStore(sofa())
	svc := NewCartService(db, &fakeRepoManager{s: s}, nil)

	_, err := svc.Add(context.Background(), 1, 99, 1, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, s.cart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCart_BeginFailureIsInternal(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin().WillReturnError(errBoom)

	svc := NewCartService(db, &fakeRepoManager{s: newStore(sofa())}, nil)

	_, err := svc.Add(context.Background(), 1, 1, 1, nil)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestCart_ListIsPerUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewCartService(db, &fakeRepoManager{s: newStore(sofa())}, prefixResolver{base: "https://bucket/"})

	_, err := svc.Add(context.Background(), 1, 1, 1, nil)
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "https://bucket/sofa.jpg", mine[0].Product.Image)

	theirs, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewCartService(db, &fakeRepoManager{s: newStore(sofa())}, nil)

	_, err := svc.Add(context.Background(), 1, 1, 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), 1, 1))
	require.NoError(t, svc.Remove(context.Background(), 1, 1))
	require.NoError(t, svc.Remove(context.Background(), 1, 42))

	items, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
