package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/teris-io/shortid"

	"luxeshop/middleware"
	"luxeshop/model"
	"luxeshop/utils"
)

// Shipping policy: a flat fee waived above the free-shipping threshold,
// except cash on delivery which always pays its own fee.
var (
	taxRate           = decimal.NewFromFloat(0.10)
	standardShipping  = decimal.NewFromInt(10)
	codShipping       = decimal.NewFromInt(15)
	freeShippingAbove = decimal.NewFromInt(100)
)

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals is the single place checkout arithmetic lives.
func CalculateTotals(lines []model.CartLine, method model.PaymentMethod) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxRate).Round(2)

	var shipping decimal.Decimal
	switch {
	case method == model.PaymentMethodCOD:
		shipping = codShipping
	case subtotal.GreaterThan(freeShippingAbove):
		shipping = decimal.Zero
	default:
		shipping = standardShipping
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

type TotalsResponse struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func toTotalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: t.Subtotal.InexactFloat64(),
		Tax:      t.Tax.InexactFloat64(),
		Shipping: t.Shipping.InexactFloat64(),
		Total:    t.Total.InexactFloat64(),
	}
}

type CheckoutCartProvider interface {
	ListCart(userID int64) ([]model.CartLine, error)
	ClearCart(userID int64) error
}

type CheckoutHandler struct {
	cart     CheckoutCartProvider
	validate *validator.Validate
}

func NewCheckoutHandler(cart CheckoutCartProvider) *CheckoutHandler {
	return &CheckoutHandler{
		cart:     cart,
		validate: validator.New(),
	}
}

// Quote prices the current cart without placing an order.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	var body model.QuoteRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	lines, err := h.cart.ListCart(user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to retrieve cart")
		return
	}
	if len(lines) == 0 {
		utils.RespondError(w, http.StatusBadRequest, nil, "Cart is empty")
		return
	}

	utils.RespondJSON(w, http.StatusOK, "", toTotalsResponse(CalculateTotals(lines, body.PaymentMethod)))
}

type OrderResponse struct {
	ID                string             `json:"id"`
	Items             []CartLineResponse `json:"items"`
	Totals            TotalsResponse     `json:"totals"`
	PaymentMethod     model.PaymentMethod `json:"payment_method"`
	Status            model.OrderStatus  `json:"status"`
	OrderDate         time.Time          `json:"order_date"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
}

// PlaceOrder simulates checkout: it prices the cart, fabricates an order
// reference and clears the cart. Nothing is persisted, so the confirmation
// payload is the only record the client gets.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	var body model.CheckoutRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	lines, err := h.cart.ListCart(user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to retrieve cart")
		return
	}
	if len(lines) == 0 {
		utils.RespondError(w, http.StatusBadRequest, nil, "Cart is empty")
		return
	}

	ref, err := shortid.Generate()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to generate order reference")
		return
	}

	order := OrderResponse{
		ID:                "ORD-" + ref,
		Items:             toCartLineResponses(lines),
		Totals:            toTotalsResponse(CalculateTotals(lines, body.PaymentMethod)),
		PaymentMethod:     body.PaymentMethod,
		Status:            model.OrderStatusPending,
		OrderDate:         time.Now().UTC(),
		EstimatedDelivery: time.Now().UTC().Add(7 * 24 * time.Hour),
	}

	if err := h.cart.ClearCart(user.ID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to clear cart")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "Order placed successfully", order)
}
