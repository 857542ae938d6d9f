package handler

import (
	"github.com/labstack/echo/v4"

	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/response"
)

type PaymentSettingsHandler struct {
	settingsUseCase *usecase.PaymentSettingsUseCase
}

func NewPaymentSettingsHandler(settingsUseCase *usecase.PaymentSettingsUseCase) *PaymentSettingsHandler {
	return &PaymentSettingsHandler{
		settingsUseCase: settingsUseCase,
	}
}

func (h *PaymentSettingsHandler) GetPublic(c echo.Context) error {
	settings, err := h.settingsUseCase.Public(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, settings)
}

func (h *PaymentSettingsHandler) Get(c echo.Context) error {
	settings, err := h.settingsUseCase.Current(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, settings)
}

func (h *PaymentSettingsHandler) Update(c echo.Context) error {
	var req usecase.UpdatePaymentSettingsInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	settings, err := h.settingsUseCase.Update(c.Request().Context(), actorID(c), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, settings)
}
