package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"luxeshop/database/store"
	"luxeshop/model"
	"luxeshop/utils"
)

type CategoryProvider interface {
	ListCategories() ([]model.CategoryWithCount, error)
	GetCategoryByID(id int64) (model.CategoryWithCount, error)
	CreateCategory(name string, description *string) (model.CategoryWithCount, error)
	UpdateCategory(id int64, upd model.CategoryUpdate) error
	DeleteCategory(id int64) error
}

type CategoryHandler struct {
	categories CategoryProvider
	validate   *validator.Validate
}

func NewCategoryHandler(categories CategoryProvider) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		validate:   validator.New(),
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.categories.ListCategories()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch categories")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", list)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid category ID is required")
		return
	}
	category, err := h.categories.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, nil, "Category not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body model.CategoryCreateRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	category, err := h.categories.CreateCategory(body.Name, body.Description)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondError(w, http.StatusBadRequest, nil, "Category with this name already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to create category")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid category ID is required")
		return
	}

	var upd model.CategoryUpdate
	if err := utils.ParseBody(r.Body, &upd); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if upd.Name != nil && len(*upd.Name) < 2 {
		utils.RespondError(w, http.StatusBadRequest, nil, "Category name must be at least 2 characters")
		return
	}

	if err := h.categories.UpdateCategory(id, upd); err != nil {
		switch {
		case errors.Is(err, store.ErrNoFields):
			utils.RespondError(w, http.StatusBadRequest, nil, "No valid fields to update")
		case errors.Is(err, store.ErrDuplicate):
			utils.RespondError(w, http.StatusBadRequest, nil, "Category with this name already exists")
		case errors.Is(err, store.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, nil, "Category not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update category")
		}
		return
	}

	updated, err := h.categories.GetCategoryByID(id)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to fetch updated category")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Category updated successfully", updated)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Valid category ID is required")
		return
	}
	if err := h.categories.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, store.ErrInUse):
			utils.RespondError(w, http.StatusBadRequest, nil, "Cannot delete category with existing products")
		case errors.Is(err, store.ErrNotFound):
			utils.RespondError(w, http.StatusNotFound, nil, "Category not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete category")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Category deleted successfully", nil)
}
