package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"luxeshop/model"
	"luxeshop/utils"
)

type InventoryProvider interface {
	ListAllProducts() ([]model.Product, error)
	CountProducts() (int64, error)
	InventoryValue() (decimal.Decimal, error)
}

type CategoryCounter interface {
	CountCategories() (int64, error)
}

type AdminHandler struct {
	inventory  InventoryProvider
	categories CategoryCounter
}

func NewAdminHandler(inventory InventoryProvider, categories CategoryCounter) *AdminHandler {
	return &AdminHandler{inventory: inventory, categories: categories}
}

// ListProducts is the admin inventory view, out-of-stock rows included.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.ListAllProducts()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch products")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", toProductResponses(products))
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	productCount, err := h.inventory.CountProducts()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch dashboard stats")
		return
	}
	categoryCount, err := h.categories.CountCategories()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch dashboard stats")
		return
	}
	inventoryValue, err := h.inventory.InventoryValue()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch dashboard stats")
		return
	}

	utils.RespondJSON(w, http.StatusOK, "", map[string]interface{}{
		"totalProducts":   productCount,
		"totalCategories": categoryCount,
		"inventoryValue":  inventoryValue.Round(2).InexactFloat64(),
	})
}
