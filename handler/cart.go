package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"luxeshop/database/store"
	"luxeshop/middleware"
	"luxeshop/model"
	"luxeshop/utils"
)

type CartProvider interface {
	ListCart(userID int64) ([]model.CartLine, error)
	GetCartLine(cartID, userID int64) (model.CartLine, error)
	FindCartLine(userID, productID int64) (model.CartLine, error)
	AddCartLine(userID, productID int64, quantity int) error
	SetCartQuantity(cartID int64, quantity int) error
	RemoveCartLine(cartID, userID int64) error
	ClearCart(userID int64) error
	CountCartItems(userID int64) (int, error)
}

type ProductGetter interface {
	GetProductByID(id int64) (model.Product, error)
}

type CartHandler struct {
	cart     CartProvider
	products ProductGetter
	validate *validator.Validate
}

func NewCartHandler(cart CartProvider, products ProductGetter) *CartHandler {
	return &CartHandler{
		cart:     cart,
		products: products,
		validate: validator.New(),
	}
}

type CartLineResponse struct {
	CartID        int64     `json:"cart_id"`
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"`
	Quantity      int       `json:"quantity"`
	Subtotal      float64   `json:"subtotal"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCartLineResponses(lines []model.CartLine) []CartLineResponse {
	out := make([]CartLineResponse, len(lines))
	for i, line := range lines {
		out[i] = CartLineResponse{
			CartID:        line.CartID,
			ID:            line.ProductID,
			Name:          line.Name,
			Description:   line.Description,
			Price:         line.Price.InexactFloat64(),
			ImageURL:      line.ImageURL,
			StockQuantity: line.StockQuantity,
			Quantity:      line.Quantity,
			Subtotal:      line.Subtotal.InexactFloat64(),
			CreatedAt:     line.CreatedAt,
		}
	}
	return out
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	lines, err := h.cart.ListCart(user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to retrieve cart")
		return
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	utils.RespondJSON(w, http.StatusOK, "Cart retrieved successfully", map[string]interface{}{
		"cartItems": toCartLineResponses(lines),
		"total":     total.Round(2).InexactFloat64(),
		"itemCount": len(lines),
	})
}

// Add merges with an existing line for the same product: quantities are
// summed and the merge is rejected when the sum would exceed stock.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	var body model.AddToCartRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	product, err := h.products.GetProductByID(body.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Product not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch product")
		return
	}
	if body.Quantity > product.StockQuantity {
		utils.RespondError(w, http.StatusBadRequest, nil, "Insufficient stock")
		return
	}

	existing, err := h.cart.FindCartLine(user.ID, body.ProductID)
	switch {
	case err == nil:
		newQuantity := existing.Quantity + body.Quantity
		if newQuantity > product.StockQuantity {
			utils.RespondError(w, http.StatusBadRequest, nil, "Cannot add more items than available in stock")
			return
		}
		if err := h.cart.SetCartQuantity(existing.CartID, newQuantity); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update cart item")
			return
		}
	case errors.Is(err, store.ErrNotFound):
		if err := h.cart.AddCartLine(user.ID, body.ProductID, body.Quantity); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to add item to cart")
			return
		}
	default:
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, fmt.Sprintf("%s added to cart successfully", product.Name), nil)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}
	cartID, err := pathID(r, "cartID")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid cart item ID is required")
		return
	}

	var body model.UpdateCartRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	line, err := h.cart.GetCartLine(cartID, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Cart item not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch cart item")
		return
	}
	if body.Quantity > line.StockQuantity {
		utils.RespondError(w, http.StatusBadRequest, nil, "Insufficient stock")
		return
	}

	if err := h.cart.SetCartQuantity(cartID, body.Quantity); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update cart")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Cart updated successfully", nil)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}
	cartID, err := pathID(r, "cartID")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid cart item ID is required")
		return
	}

	if err := h.cart.RemoveCartLine(cartID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Cart item not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to remove item from cart")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Item removed from cart successfully", nil)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}
	if err := h.cart.ClearCart(user.ID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to clear cart")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Cart cleared successfully", nil)
}

func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}
	count, err := h.cart.CountCartItems(user.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to count cart items")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", map[string]int{"count": count})
}
