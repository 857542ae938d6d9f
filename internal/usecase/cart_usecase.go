package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

const maxCartQuantity = 99

type CartUseCase struct {
	cartRepo repository.CartRepository
	products ProductResolver
}

func NewCartUseCase(cartRepo repository.CartRepository, products ProductResolver) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		products: products,
	}
}

// Get returns an empty cart for users who never saved one.
func (uc *CartUseCase) Get(ctx context.Context, userID primitive.ObjectID) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return &entity.Cart{UserID: userID, Items: []entity.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

type AddCartItemInput struct {
	ProductType entity.ProductType `json:"product_type" validate:"required"`
	ProductID   string             `json:"product_id" validate:"required"`
	Quantity    int                `json:"quantity" validate:"omitempty,min=1"`
}

func (uc *CartUseCase) priced(ctx context.Context, productType entity.ProductType, productID primitive.ObjectID, quantity int) (entity.CartItem, error) {
	if quantity > maxCartQuantity {
		return entity.CartItem{}, errors.BadRequest("Quantity exceeds the allowed maximum", nil)
	}
	product, err := uc.products.ResolveProduct(ctx, productType, productID)
	if err != nil {
		return entity.CartItem{}, err
	}
	return entity.CartItem{
		ProductID:   product.ID,
		ProductType: product.Type,
		Title:       product.Title,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}, nil
}

// AddItem adds a line or increments an existing one. The unit price is
// re-read from the catalog each time.
func (uc *CartUseCase) AddItem(ctx context.Context, userID primitive.ObjectID, input AddCartItemInput) (*entity.Cart, error) {
	if !input.ProductType.Valid() {
		return nil, errors.BadRequest("Invalid product type", nil)
	}
	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		return nil, errors.BadRequest("Invalid product id", err)
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if existing, ok := cart.Find(productID); ok {
		quantity += existing.Quantity
	}

	item, err := uc.priced(ctx, input.ProductType, productID, quantity)
	if err != nil {
		return nil, err
	}
	cart.SetQuantity(item)

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity; zero removes it.
func (uc *CartUseCase) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, errors.BadRequest("Quantity cannot be negative", nil)
	}

	cart, err := uc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, ok := cart.Find(productID)
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}

	item := existing
	item.Quantity = quantity
	if quantity > 0 {
		if item, err = uc.priced(ctx, existing.ProductType, productID, quantity); err != nil {
			return nil, err
		}
	}
	cart.SetQuantity(item)

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*entity.Cart, error) {
	return uc.SetQuantity(ctx, userID, productID, 0)
}

func (uc *CartUseCase) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return uc.cartRepo.DeleteByUser(ctx, userID)
}
