package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentSettingsKey = "default"

type PaymentMethod struct {
	Key            string            `json:"key" bson:"key" validate:"required"`
	Name           Bilingual         `json:"name" bson:"name"`
	Instructions   Bilingual         `json:"instructions" bson:"instructions"`
	AccountDetails map[string]string `json:"account_details,omitempty" bson:"accountDetails,omitempty"`
	Active         bool              `json:"active" bson:"active"`
}

type GeneralPaymentSettings struct {
	MaxFileSizeMB            int      `json:"max_file_size_mb" bson:"maxFileSizeMB"`
	AllowedFileTypes         []string `json:"allowed_file_types" bson:"allowedFileTypes"`
	VerificationTimeoutHours int      `json:"verification_timeout_hours" bson:"verificationTimeoutHours"`
	ShippingCost             float64  `json:"shipping_cost" bson:"shippingCost"`
	TaxRate                  float64  `json:"tax_rate" bson:"taxRate"`
	Currency                 string   `json:"currency" bson:"currency"`
}

// PaymentSettings is a singleton document keyed by PaymentSettingsKey.
type PaymentSettings struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	Key       string                 `json:"-" bson:"key"`
	Methods   []PaymentMethod        `json:"methods" bson:"methods"`
	General   GeneralPaymentSettings `json:"general" bson:"general"`
	UpdatedBy *primitive.ObjectID    `json:"updated_by,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updatedAt"`
}

// DefaultPaymentSettings is served until an admin saves settings.
func DefaultPaymentSettings() *PaymentSettings {
	return &PaymentSettings{
		Key: PaymentSettingsKey,
		Methods: []PaymentMethod{
			{
				Key:          "bank_transfer",
				Name:         Bilingual{En: "Bank Transfer", Ta: "வங்கி பரிமாற்றம்"},
				Instructions: Bilingual{En: "Transfer the order total and upload the receipt."},
				Active:       true,
			},
			{
				Key:          "upi",
				Name:         Bilingual{En: "UPI", Ta: "யுபிஐ"},
				Instructions: Bilingual{En: "Pay via UPI and upload a screenshot of the confirmation."},
				Active:       true,
			},
		},
		General: GeneralPaymentSettings{
			MaxFileSizeMB:            5,
			AllowedFileTypes:         []string{"image/jpeg", "image/png", "application/pdf"},
			VerificationTimeoutHours: 24,
			Currency:                 "INR",
		},
	}
}

// Normalize fills zero general values with defaults.
func (s *PaymentSettings) Normalize() {
	def := DefaultPaymentSettings().General
	if s.General.MaxFileSizeMB <= 0 {
		s.General.MaxFileSizeMB = def.MaxFileSizeMB
	}
	if len(s.General.AllowedFileTypes) == 0 {
		s.General.AllowedFileTypes = def.AllowedFileTypes
	}
	if s.General.VerificationTimeoutHours <= 0 {
		s.General.VerificationTimeoutHours = def.VerificationTimeoutHours
	}
	if s.General.Currency == "" {
		s.General.Currency = def.Currency
	}
	if s.General.TaxRate < 0 {
		s.General.TaxRate = 0
	}
	if s.Methods == nil {
		s.Methods = []PaymentMethod{}
	}
}

func (s *PaymentSettings) ActiveMethods() []PaymentMethod {
	out := make([]PaymentMethod, 0, len(s.Methods))
	for _, m := range s.Methods {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

func (s *PaymentSettings) IsMethodActive(key string) bool {
	for _, m := range s.Methods {
		if m.Key == key && m.Active {
			return true
		}
	}
	return false
}

func (s *PaymentSettings) MaxFileSizeBytes() int64 {
	return int64(s.General.MaxFileSizeMB) * 1024 * 1024
}

func (s *PaymentSettings) IsFileTypeAllowed(contentType string) bool {
	for _, t := range s.General.AllowedFileTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s *PaymentSettings) VerificationTimeout() time.Duration {
	return time.Duration(s.General.VerificationTimeoutHours) * time.Hour
}
