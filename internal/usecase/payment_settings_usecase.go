package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
)

type PaymentSettingsUseCase struct {
	settingsRepo repository.PaymentSettingsRepository
	activity     ActivityRecorder
}

func NewPaymentSettingsUseCase(settingsRepo repository.PaymentSettingsRepository, activity ActivityRecorder) *PaymentSettingsUseCase {
	return &PaymentSettingsUseCase{
		settingsRepo: settingsRepo,
		activity:     activity,
	}
}

// Current returns the saved settings, or the defaults when none exist yet.
func (uc *PaymentSettingsUseCase) Current(ctx context.Context) (*entity.PaymentSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return entity.DefaultPaymentSettings(), nil
		}
		return nil, err
	}
	settings.Normalize()
	return settings, nil
}

// PublicSettings is what storefront clients see: active methods and the
// upload limits they must respect.
type PublicSettings struct {
	Methods                  []entity.PaymentMethod `json:"methods"`
	MaxFileSizeMB            int                    `json:"max_file_size_mb"`
	AllowedFileTypes         []string               `json:"allowed_file_types"`
	VerificationTimeoutHours int                    `json:"verification_timeout_hours"`
	ShippingCost             float64                `json:"shipping_cost"`
	TaxRate                  float64                `json:"tax_rate"`
	Currency                 string                 `json:"currency"`
}

func (uc *PaymentSettingsUseCase) Public(ctx context.Context) (*PublicSettings, error) {
	settings, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &PublicSettings{
		Methods:                  settings.ActiveMethods(),
		MaxFileSizeMB:            settings.General.MaxFileSizeMB,
		AllowedFileTypes:         settings.General.AllowedFileTypes,
		VerificationTimeoutHours: settings.General.VerificationTimeoutHours,
		ShippingCost:             settings.General.ShippingCost,
		TaxRate:                  settings.General.TaxRate,
		Currency:                 settings.General.Currency,
	}, nil
}

type UpdatePaymentSettingsInput struct {
	Methods []entity.PaymentMethod        `json:"methods" validate:"dive"`
	General entity.GeneralPaymentSettings `json:"general"`
}

func (uc *PaymentSettingsUseCase) Update(ctx context.Context, actorID primitive.ObjectID, input UpdatePaymentSettingsInput) (*entity.PaymentSettings, error) {
	seen := map[string]bool{}
	for i := range input.Methods {
		key := strings.TrimSpace(input.Methods[i].Key)
		if key == "" {
			return nil, errors.BadRequest("Payment method key is required", nil)
		}
		if seen[key] {
			return nil, errors.BadRequest(fmt.Sprintf("Duplicate payment method %q", key), nil)
		}
		seen[key] = true
		input.Methods[i].Key = key
	}
	if input.General.TaxRate < 0 || input.General.TaxRate > 1 {
		return nil, errors.BadRequest("Tax rate must be between 0 and 1", nil)
	}
	if input.General.ShippingCost < 0 {
		return nil, errors.BadRequest("Shipping cost cannot be negative", nil)
	}

	current, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}

	current.Methods = input.Methods
	current.General = input.General
	current.UpdatedBy = &actorID
	current.Normalize()

	if err := uc.settingsRepo.Save(ctx, current); err != nil {
		return nil, err
	}

	record(ctx, uc.activity, entity.ActivitySettingsUpdated, "payment_settings", current.ID.Hex(), actorID.Hex(), "Payment settings updated")
	return current, nil
}
