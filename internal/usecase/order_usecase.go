package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/repository"
	"tamilsociety/pkg/errors"
	"tamilsociety/pkg/logger"
	"tamilsociety/pkg/utils"
)

const orderSequence = "orders"

var orderSortFields = utils.TimestampSortFields(map[string]string{
	"order_number": "orderNumber",
	"total":        "totals.total",
	"status":       "status",
})

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	counterRepo repository.CounterRepository
	products    ProductResolver
	settings    SettingsProvider
	activity    ActivityRecorder
	now         func() time.Time
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	counterRepo repository.CounterRepository,
	products ProductResolver,
	settings SettingsProvider,
	activity ActivityRecorder,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		counterRepo: counterRepo,
		products:    products,
		settings:    settings,
		activity:    activity,
		now:         time.Now,
	}
}

type OrderItemInput struct {
	ProductID   string             `json:"product_id" validate:"required"`
	ProductType entity.ProductType `json:"product_type" validate:"required,oneof=book ebook poster"`
	Quantity    int                `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderInput struct {
	Items            []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress  *entity.Address  `json:"shipping_address" validate:"required"`
	PaymentMethod    string           `json:"payment_method" validate:"required"`
	TransactionProof string           `json:"transaction_proof" validate:"required"`
	TransactionRef   string           `json:"transaction_ref"`
	Phone            string           `json:"phone"`
	Notes            string           `json:"notes" validate:"max=2000"`
}

func validateAddress(a *entity.Address) error {
	if a == nil {
		return errors.BadRequest("Shipping address is required", nil)
	}
	missing := []string{}
	if strings.TrimSpace(a.Line1) == "" {
		missing = append(missing, "line1")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if strings.TrimSpace(a.Country) == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return errors.BadRequest("Shipping address is incomplete: missing "+strings.Join(missing, ", "), nil)
	}
	return nil
}

func (uc *OrderUseCase) Create(ctx context.Context, customer *entity.User, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}
	if err := validateAddress(input.ShippingAddress); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, errors.BadRequest("Payment method is required", nil)
	}
	if strings.TrimSpace(input.TransactionProof) == "" {
		return nil, errors.BadRequest("Transaction proof is required", nil)
	}

	settings, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.IsMethodActive(input.PaymentMethod) {
		return nil, errors.BadRequest(fmt.Sprintf("Payment method %q is not available", input.PaymentMethod), nil)
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	physical := false
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, errors.BadRequest("Item quantity must be at least 1", nil)
		}
		productID, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, errors.BadRequest(fmt.Sprintf("Invalid product id %q", in.ProductID), err)
		}
		product, err := uc.products.ResolveProduct(ctx, in.ProductType, productID)
		if err != nil {
			return nil, err
		}
		physical = physical || product.Type.Physical()

		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductType: product.Type,
			Title:       product.Title,
			Quantity:    in.Quantity,
			UnitPrice:   product.Price,
		})
	}

	now := uc.now()
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		phone = customer.Phone
	}

	order := &entity.Order{
		Customer: entity.Customer{
			UserID: customer.ID,
			Name:   customer.Name,
			Email:  customer.Email,
			Phone:  phone,
		},
		Items: items,
		Payment: entity.Payment{
			Method:         input.PaymentMethod,
			ProofFile:      input.TransactionProof,
			TransactionRef: strings.TrimSpace(input.TransactionRef),
			Status:         entity.PaymentStatusPending,
		},
		Shipping: entity.Shipping{
			Enabled: physical,
			Address: *input.ShippingAddress,
			Status:  entity.ShippingStatusPending,
		},
		Status:               entity.OrderStatusPending,
		Notes:                strings.TrimSpace(input.Notes),
		VerificationDeadline: now.Add(settings.VerificationTimeout()),
	}
	if physical {
		order.Shipping.Cost = settings.General.ShippingCost
	}

	order.RecalculateTotals()
	order.Totals.Tax = order.Totals.Subtotal * settings.General.TaxRate
	order.RecalculateTotals()
	order.Payment.Amount = order.Totals.Total

	seq, err := uc.counterRepo.Next(ctx, orderSequence)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = entity.FormatOrderNumber(now, seq)

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Order %s created by %s, total %.2f", order.OrderNumber, customer.Email, order.Totals.Total)
	record(ctx, uc.activity, entity.ActivityOrderCreated, "order", order.ID.Hex(), customer.ID.Hex(),
		fmt.Sprintf("Order %s placed by %s", order.OrderNumber, customer.Name))

	return order, nil
}

const (
	VerifyActionApprove = "approve"
	VerifyActionReject  = "reject"
)

type VerifyPaymentInput struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason" validate:"max=1000"`
}

// VerifyPayment approves or rejects a pending payment. The transition is a
// single conditional write so concurrent verifications cannot both succeed.
func (uc *OrderUseCase) VerifyPayment(ctx context.Context, actor *entity.User, orderID primitive.ObjectID, input VerifyPaymentInput) (*entity.Order, error) {
	transition := repository.PaymentTransition{
		From:       entity.PaymentStatusPending,
		VerifiedBy: actor.ID,
		At:         uc.now(),
	}

	action := entity.ActivityPaymentVerified
	switch input.Action {
	case VerifyActionApprove:
		transition.To = entity.PaymentStatusVerified
		transition.OrderStatus = entity.OrderStatusConfirmed
	case VerifyActionReject:
		transition.To = entity.PaymentStatusRejected
		transition.Reason = strings.TrimSpace(input.Reason)
		if transition.Reason == "" {
			transition.Reason = "Payment proof rejected"
		}
		action = entity.ActivityPaymentRejected
	default:
		return nil, errors.BadRequest("Action must be approve or reject", nil)
	}

	order, err := uc.orderRepo.TransitionPayment(ctx, orderID, transition)
	if err == repository.ErrPreconditionFailed {
		return nil, errors.BadRequest("Payment already processed", err)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Payment for order %s marked %s by %s", order.OrderNumber, transition.To, actor.Email)
	record(ctx, uc.activity, action, "order", order.ID.Hex(), actor.ID.Hex(),
		fmt.Sprintf("Payment for %s %s", order.OrderNumber, transition.To))

	return order, nil
}

type UpdateOrderInput struct {
	Status         *entity.OrderStatus    `json:"status"`
	ShippingStatus *entity.ShippingStatus `json:"shipping_status"`
	TrackingNumber *string                `json:"tracking_number"`
	ShippingCost   *float64               `json:"shipping_cost" validate:"omitempty,gte=0"`
	AdminNotes     *string                `json:"admin_notes" validate:"omitempty,max=2000"`
}

var shippingForOrderStatus = map[entity.OrderStatus]entity.ShippingStatus{
	entity.OrderStatusProcessing: entity.ShippingStatusProcessing,
	entity.OrderStatusShipped:    entity.ShippingStatusShipped,
	entity.OrderStatusDelivered:  entity.ShippingStatusDelivered,
}

// updateAttempts bounds how often Update re-reads an order that changed
// underneath it.
const updateAttempts = 3

// Update applies input to the current order. The write is conditional on the
// version that was read; when a concurrent write (a payment verification,
// say) got there first, the order is re-read and input applied again.
func (uc *OrderUseCase) Update(ctx context.Context, actor *entity.User, orderID primitive.ObjectID, input UpdateOrderInput) (*entity.Order, error) {
	for attempt := 1; ; attempt++ {
		order, err := uc.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if err := uc.applyUpdate(order, input); err != nil {
			return nil, err
		}

		err = uc.orderRepo.Update(ctx, order)
		if err == repository.ErrPreconditionFailed {
			if attempt < updateAttempts {
				logger.Debug("Order %s changed during update, retrying", order.OrderNumber)
				continue
			}
			return nil, errors.Conflict("Order was modified concurrently, please retry", err)
		}
		if err != nil {
			return nil, err
		}

		record(ctx, uc.activity, entity.ActivityOrderUpdated, "order", order.ID.Hex(), actor.ID.Hex(),
			fmt.Sprintf("Order %s updated (status %s, shipping %s)", order.OrderNumber, order.Status, order.Shipping.Status))
		return order, nil
	}
}

func (uc *OrderUseCase) applyUpdate(order *entity.Order, input UpdateOrderInput) error {
	shippingStatus := input.ShippingStatus
	if input.Status != nil {
		status := *input.Status
		switch {
		case status == entity.OrderStatusCancelled:
			if order.Status == entity.OrderStatusShipped || order.Status == entity.OrderStatusDelivered {
				return errors.BadRequest("Shipped orders cannot be cancelled", nil)
			}
			order.Status = entity.OrderStatusCancelled
		case shippingForOrderStatus[status] != "":
			s := shippingForOrderStatus[status]
			if shippingStatus != nil && *shippingStatus != s {
				return errors.BadRequest("Status and shipping status disagree", nil)
			}
			shippingStatus = &s
		case status.Valid():
			return errors.BadRequest(fmt.Sprintf("Order status %q is set through payment verification", status), nil)
		default:
			return errors.BadRequest(fmt.Sprintf("Invalid order status %q", status), nil)
		}
	}

	if shippingStatus != nil && *shippingStatus != entity.ShippingStatusPending {
		if order.Status == entity.OrderStatusCancelled {
			return errors.BadRequest("Cancelled orders cannot be shipped", nil)
		}
		if order.Payment.Status != entity.PaymentStatusVerified {
			return errors.BadRequest("Payment must be verified before shipping", nil)
		}
	}

	tracking := ""
	if input.TrackingNumber != nil {
		tracking = strings.TrimSpace(*input.TrackingNumber)
	}
	if shippingStatus != nil {
		if err := order.ApplyShippingStatus(*shippingStatus, tracking, uc.now()); err != nil {
			return errors.BadRequest(err.Error(), err)
		}
	} else if tracking != "" {
		order.Shipping.TrackingNumber = tracking
	}

	if input.ShippingCost != nil {
		order.Shipping.Cost = *input.ShippingCost
	}
	if input.AdminNotes != nil {
		order.AdminNotes = strings.TrimSpace(*input.AdminNotes)
	}

	order.RecalculateTotals()
	if order.Payment.Status == entity.PaymentStatusPending {
		order.Payment.Amount = order.Totals.Total
	}
	return nil
}

// Delete removes a pending or cancelled order. The status guard is part of
// the delete itself, so an order verified after it was read survives.
func (uc *OrderUseCase) Delete(ctx context.Context, actor *entity.User, orderID primitive.ObjectID) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return errors.BadRequest("Only pending or cancelled orders can be deleted", nil)
	}

	err = uc.orderRepo.Delete(ctx, orderID, entity.DeletableOrderStatuses)
	if err == repository.ErrPreconditionFailed {
		return errors.BadRequest("Only pending or cancelled orders can be deleted", err)
	}
	if err != nil {
		return err
	}

	record(ctx, uc.activity, entity.ActivityOrderDeleted, "order", order.ID.Hex(), actor.ID.Hex(),
		fmt.Sprintf("Order %s deleted", order.OrderNumber))
	return nil
}

type ListOrdersInput struct {
	Status        string
	PaymentStatus string
	Search        string
	Sort          string
	Page          int
	Limit         int
}

// List returns every order to order managers and only their own to
// everybody else.
func (uc *OrderUseCase) List(ctx context.Context, actor *entity.User, input ListOrdersInput) ([]*entity.Order, int64, error) {
	filter := repository.OrderFilter{Search: input.Search}

	if input.Status != "" {
		status := entity.OrderStatus(input.Status)
		if !status.Valid() {
			return nil, 0, errors.BadRequest(fmt.Sprintf("Invalid status %q", input.Status), nil)
		}
		filter.Status = status
	}
	if input.PaymentStatus != "" {
		ps := entity.PaymentStatus(input.PaymentStatus)
		if ps != entity.PaymentStatusPending && ps != entity.PaymentStatusVerified && ps != entity.PaymentStatusRejected {
			return nil, 0, errors.BadRequest(fmt.Sprintf("Invalid payment status %q", input.PaymentStatus), nil)
		}
		filter.PaymentStatus = ps
	}
	if !actor.Role.Can(entity.CapManageOrders) {
		filter.CustomerID = actor.ID
	}

	sort, err := utils.ParseSort(input.Sort, orderSortFields)
	if err != nil {
		return nil, 0, errors.BadRequest(err.Error(), err)
	}
	p := utils.NewPaginationParams(input.Page, input.Limit)

	return uc.orderRepo.List(ctx, filter, repository.ListOptions{Sort: sort, Limit: p.PageSize, Offset: p.Offset})
}

func (uc *OrderUseCase) Get(ctx context.Context, actor *entity.User, orderID primitive.ObjectID) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.Can(entity.CapManageOrders) && !order.IsOwnedBy(actor.ID) {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}
	return order, nil
}

// GetByNumber looks an order up by its human-facing number, with the same
// visibility rules as Get.
func (uc *OrderUseCase) GetByNumber(ctx context.Context, actor *entity.User, orderNumber string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByOrderNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
	if err != nil {
		return nil, err
	}
	if !actor.Role.Can(entity.CapManageOrders) && !order.IsOwnedBy(actor.ID) {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}
	return order, nil
}

func (uc *OrderUseCase) Stats(ctx context.Context) (*repository.OrderStats, error) {
	return uc.orderRepo.Stats(ctx)
}
