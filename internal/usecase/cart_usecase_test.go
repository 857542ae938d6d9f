package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/pkg/errors"
)

func TestCart_AddIncrementsAndPricesFromCatalog(t *testing.T) {
	products := fakeProducts{}
	book := products.add(entity.ProductTypeBook, "Kural", 150, true)
	poster := products.add(entity.ProductTypePoster, "Map", 40, true)
	uc := NewCartUseCase(&fakeCartRepo{}, products)
	ctx := context.Background()
	user := primitive.NewObjectID()

	empty, err := uc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: book.Hex(), Quantity: 1})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: book.Hex(), Quantity: 2})
	require.NoError(t, err)
	cart, err := uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypePoster, ProductID: poster.Hex()})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 450.0, cart.Items[0].Subtotal)
	assert.Equal(t, 490.0, cart.Subtotal)
	assert.Equal(t, 4, cart.ItemCount)
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	products := fakeProducts{}
	book := products.add(entity.ProductTypeBook, "Kural", 150, true)
	uc := NewCartUseCase(&fakeCartRepo{}, products)
	ctx := context.Background()
	user := primitive.NewObjectID()

	_, err := uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: book.Hex(), Quantity: 1})
	require.NoError(t, err)

	cart, err := uc.SetQuantity(ctx, user, book, 5)
	require.NoError(t, err)
	assert.Equal(t, 750.0, cart.Subtotal)

	cart, err = uc.SetQuantity(ctx, user, book, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)

	_, err = uc.RemoveItem(ctx, user, book)
	assert.Equal(t, 404, errors.StatusOf(err))

	_, err = uc.SetQuantity(ctx, user, book, -1)
	assert.Equal(t, 400, errors.StatusOf(err))
}

func TestCart_RejectsUnavailableProducts(t *testing.T) {
	products := fakeProducts{}
	hidden := products.add(entity.ProductTypeBook, "Hidden", 10, false)
	uc := NewCartUseCase(&fakeCartRepo{}, products)
	ctx := context.Background()
	user := primitive.NewObjectID()

	_, err := uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: hidden.Hex()})
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: "xyz"})
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.AddItem(ctx, user, AddCartItemInput{ProductType: "vinyl", ProductID: hidden.Hex()})
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.AddItem(ctx, user, AddCartItemInput{ProductType: entity.ProductTypeBook, ProductID: hidden.Hex(), Quantity: 500})
	assert.Equal(t, 400, errors.StatusOf(err))

	require.NoError(t, uc.Clear(ctx, user))
}
