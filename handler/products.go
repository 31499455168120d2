package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"luxeshop/database/store"
	"luxeshop/model"
	"luxeshop/utils"
)

type ProductProvider interface {
	ListProducts(params model.ProductListParams) ([]model.Product, int64, error)
	GetProductByID(id int64) (model.Product, error)
	CreateProduct(p model.Product) (int64, error)
	UpdateProduct(id int64, upd model.ProductUpdate) error
	DeleteProduct(id int64) error
}

type CategoryGetter interface {
	GetCategoryByID(id int64) (model.CategoryWithCount, error)
}

type ProductHandler struct {
	products   ProductProvider
	categories CategoryGetter
	validate   *validator.Validate
}

func NewProductHandler(products ProductProvider, categories CategoryGetter) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
		validate:   validator.New(),
	}
}

type ProductResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      *string   `json:"image_url"`
	CategoryID    int64     `json:"category_id"`
	CategoryName  *string   `json:"category_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := model.ProductListParams{
		Page:   1,
		Limit:  defaultPageSize,
		Search: r.URL.Query().Get("search"),
	}
	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			params.Page = p
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				params.Limit = 1
			} else if l > maxPageSize {
				params.Limit = maxPageSize
			} else {
				params.Limit = l
			}
		}
	}
	if cStr := r.URL.Query().Get("category"); cStr != "" {
		if c, err := strconv.ParseInt(cStr, 10, 64); err == nil {
			params.CategoryID = c
		}
	}

	products, total, err := h.products.ListProducts(params)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch products")
		return
	}

	totalPages := total / int64(params.Limit)
	if total%int64(params.Limit) != 0 {
		totalPages++
	}
	utils.RespondJSON(w, http.StatusOK, "", map[string]interface{}{
		"products": toProductResponses(products),
		"pagination": model.Pagination{
			CurrentPage: params.Page,
			PerPage:     params.Limit,
			Total:       total,
			TotalPages:  totalPages,
		},
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid product ID is required")
		return
	}
	product, err := h.products.GetProductByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Product not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", toProductResponse(product))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body model.ProductCreateRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}
	if body.Price.IsNegative() {
		utils.RespondError(w, http.StatusBadRequest, nil, "Price must not be negative")
		return
	}
	if !h.categoryExists(body.CategoryID) {
		utils.RespondError(w, http.StatusBadRequest, nil, "Invalid category ID")
		return
	}

	product := model.Product{
		Name:          body.Name,
		Description:   body.Description,
		Price:         body.Price,
		StockQuantity: body.StockQuantity,
		ImageURL:      body.ImageURL,
		CategoryID:    body.CategoryID,
	}
	id, err := h.products.CreateProduct(product)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to create product")
		return
	}

	created, err := h.products.GetProductByID(id)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch created product")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "Product created successfully", toProductResponse(created))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid product ID is required")
		return
	}

	var upd model.ProductUpdate
	if err := utils.ParseBody(r.Body, &upd); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		utils.RespondError(w, http.StatusBadRequest, nil, "Price must not be negative")
		return
	}
	if upd.StockQuantity != nil && *upd.StockQuantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, nil, "Stock quantity must not be negative")
		return
	}
	if upd.CategoryID != nil && !h.categoryExists(*upd.CategoryID) {
		utils.RespondError(w, http.StatusBadRequest, nil, "Invalid category ID")
		return
	}

	if err := h.products.UpdateProduct(id, upd); err != nil {
		switch {
		case errors.Is(err, store.ErrNoFields):
			utils.RespondError(w, http.StatusBadRequest, nil, "No valid fields to update")
		case errors.Is(err, store.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, nil, "Product not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update product")
		}
		return
	}

	updated, err := h.products.GetProductByID(id)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch updated product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Product updated successfully", toProductResponse(updated))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid product ID is required")
		return
	}
	if err := h.products.DeleteProduct(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Product not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) categoryExists(id int64) bool {
	_, err := h.categories.GetCategoryByID(id)
	return err == nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
