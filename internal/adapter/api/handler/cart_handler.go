package handler

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cartUseCase.Get(c.Request().Context(), actorID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req usecase.AddCartItemInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.AddItem(c.Request().Context(), actorID(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return response.Error(c, err)
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.SetQuantity(c.Request().Context(), actorID(c), productID, *req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.RemoveItem(c.Request().Context(), actorID(c), productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cartUseCase.Clear(c.Request().Context(), actorID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart cleared"})
}
