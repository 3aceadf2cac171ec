package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartAddReplacesQuantity(t *testing.T) {
	f := newServiceFixture(t)
	cart := f.cartService()
	pen := f.createProduct(t, "Pen", "1.25", 10, 2)

	count, err := cart.AddOrSetQuantity(1, pen.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	count, err = cart.AddOrSetQuantity(1, pen.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	view, err := cart.Get(1)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 2, view.Lines[0].Quantity)
	require.Equal(t, "2.50", view.Total.String())
}

func TestCartAddRejectsInvalidRequests(t *testing.T) {
	f := newServiceFixture(t)
	cart := f.cartService()
	pen := f.createProduct(t, "Pen", "1.00", 2, 1)

	_, err := cart.AddOrSetQuantity(1, pen.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cart.AddOrSetQuantity(1, 777, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = cart.AddOrSetQuantity(1, pen.ID, 3)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Equal(t, "Pen", stockErr.ProductName)
	require.Equal(t, 2, stockErr.Available)
	require.ErrorIs(t, err, ErrOutOfStock)

	_, err = cart.AddOrSetQuantity(0, pen.ID, 1)
	require.ErrorIs(t, err, ErrUnauthenticated)

	hidden := f.createProduct(t, "Secret Pen", "1.00", 5, 1)
	require.NoError(t, f.db.Model(hidden).Update("is_visible", false).Error)
	_, err = cart.AddOrSetQuantity(1, hidden.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)

	unpriced := f.createProduct(t, "Loose Clip", "1.00", 5, 1)
	require.NoError(t, f.db.Model(unpriced).Update("price", "0").Error)
	_, err = cart.AddOrSetQuantity(1, unpriced.ID, 1)
	require.ErrorIs(t, err, ErrProductUnavailable)

	count, err := cart.ItemCount(1)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	f := newServiceFixture(t)
	cart := f.cartService()
	pen := f.createProduct(t, "Pen", "1.00", 10, 1)
	pad := f.createProduct(t, "Pad", "2.00", 10, 1)

	_, err := cart.AddOrSetQuantity(1, pen.ID, 2)
	require.NoError(t, err)
	_, err = cart.AddOrSetQuantity(1, pad.ID, 1)
	require.NoError(t, err)

	count, err := cart.UpdateQuantity(1, pen.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	view, err := cart.Get(1)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, pad.ID, view.Lines[0].ProductID)

	count, err = cart.UpdateQuantity(1, pad.ID, -4)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCartTotalUsesCurrentPrice(t *testing.T) {
	f := newServiceFixture(t)
	cart := f.cartService()
	pen := f.createProduct(t, "Pen", "1.00", 10, 1)

	_, err := cart.AddOrSetQuantity(1, pen.ID, 4)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(pen).Update("price", "1.50").Error)

	total, err := cart.Total(1)
	require.NoError(t, err)
	require.Equal(t, "6.00", total.String())
}

func TestCartValidateStockDetectsShortageAndOrphans(t *testing.T) {
	f := newServiceFixture(t)
	cart := f.cartService()
	pen := f.createProduct(t, "Pen", "1.00", 5, 1)
	pad := f.createProduct(t, "Pad", "2.00", 5, 1)

	_, err := cart.AddOrSetQuantity(1, pen.ID, 4)
	require.NoError(t, err)
	valid, err := cart.ValidateStock(1)
	require.NoError(t, err)
	require.True(t, valid)

	require.NoError(t, f.db.Model(pen).Update("stock", 3).Error)
	valid, err = cart.ValidateStock(1)
	require.NoError(t, err)
	require.False(t, valid)

	require.NoError(t, cart.Clear(1))
	_, err = cart.AddOrSetQuantity(1, pad.ID, 1)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(pad).Error)

	view, err := cart.Get(1)
	require.NoError(t, err)
	require.False(t, view.StockValid)
	require.True(t, view.Lines[0].Invalid)
	require.Equal(t, "0.00", view.Total.String())
}
