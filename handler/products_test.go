package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"luxeshop/database/store"
	"luxeshop/model"
)

type mockProductStore struct {
	products []model.Product
	total    int64
	listErr  error

	product model.Product
	getErr  error

	createdID int64
	created   *model.Product
	createErr error

	updated   *model.ProductUpdate
	updateErr error

	deleteErr error

	lastParams model.ProductListParams
}

func (m *mockProductStore) ListProducts(params model.ProductListParams) ([]model.Product, int64, error) {
	m.lastParams = params
	return m.products, m.total, m.listErr
}
func (m *mockProductStore) GetProductByID(id int64) (model.Product, error) {
	return m.product, m.getErr
}
func (m *mockProductStore) CreateProduct(p model.Product) (int64, error) {
	m.created = &p
	return m.createdID, m.createErr
}
func (m *mockProductStore) UpdateProduct(id int64, upd model.ProductUpdate) error {
	m.updated = &upd
	return m.updateErr
}
func (m *mockProductStore) DeleteProduct(id int64) error { return m.deleteErr }

type stubCategoryGetter struct {
	err error
}

func (s *stubCategoryGetter) GetCategoryByID(id int64) (model.CategoryWithCount, error) {
	return model.CategoryWithCount{Category: model.Category{ID: id}}, s.err
}

func TestProductList(t *testing.T) {
	testCases := []struct {
		name          string
		target        string
		expectedPage  int
		expectedLimit int
	}{
		{name: "defaults", target: "/api/products", expectedPage: 1, expectedLimit: 20},
		{name: "explicit paging", target: "/api/products?page=3&limit=50", expectedPage: 3, expectedLimit: 50},
		{name: "limit clamped high", target: "/api/products?limit=500", expectedPage: 1, expectedLimit: 100},
		{name: "limit clamped low", target: "/api/products?limit=0", expectedPage: 1, expectedLimit: 1},
		{name: "negative page ignored", target: "/api/products?page=-2", expectedPage: 1, expectedLimit: 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockProductStore{total: 42}
			h := NewProductHandler(repo, &stubCategoryGetter{})
			rec := httptest.NewRecorder()

			h.List(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.expectedPage, repo.lastParams.Page)
			assert.Equal(t, tc.expectedLimit, repo.lastParams.Limit)
		})
	}
}

func TestProductListPagination(t *testing.T) {
	repo := &mockProductStore{
		products: []model.Product{{ID: 1, Name: "Lamp", Price: decimal.NewFromInt(30), CategoryID: 2}},
		total:    41,
	}
	h := NewProductHandler(repo, &stubCategoryGetter{})
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/products?limit=20", nil))

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(41), pagination["total"])
	assert.Equal(t, float64(3), pagination["total_pages"])
	assert.Equal(t, float64(20), pagination["per_page"])
}

func TestProductGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		categoryName := "Electronics"
		repo := &mockProductStore{
			product: model.Product{
				ID:            5,
				Name:          "Wireless Headphones",
				Price:         decimal.NewFromFloat(19.99),
				StockQuantity: 10,
				CategoryID:    1,
				CategoryName:  &categoryName,
			},
		}
		h := NewProductHandler(repo, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/5", nil), "id", "5")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, 19.99, data["price"])
		assert.Equal(t, "Electronics", data["category_name"])
	})

	t.Run("missing", func(t *testing.T) {
		h := NewProductHandler(&mockProductStore{getErr: store.ErrNotFound}, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/99", nil), "id", "99")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h := NewProductHandler(&mockProductStore{}, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), "id", "abc")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductCreate(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		categories         *stubCategoryGetter
		expectedStatusCode int
	}{
		{
			name:               "created",
			body:               `{"name":"Desk Lamp","price":34.5,"stock_quantity":12,"category_id":2}`,
			categories:         &stubCategoryGetter{},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "unknown category",
			body:               `{"name":"Desk Lamp","price":34.5,"category_id":99}`,
			categories:         &stubCategoryGetter{err: store.ErrNotFound},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "negative stock",
			body:               `{"name":"Desk Lamp","price":34.5,"stock_quantity":-1,"category_id":2}`,
			categories:         &stubCategoryGetter{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "negative price",
			body:               `{"name":"Desk Lamp","price":-1,"category_id":2}`,
			categories:         &stubCategoryGetter{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "missing name",
			body:               `{"price":34.5,"category_id":2}`,
			categories:         &stubCategoryGetter{},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockProductStore{createdID: 7, product: model.Product{ID: 7, Name: "Desk Lamp", Price: decimal.NewFromFloat(34.5), CategoryID: 2}}
			h := NewProductHandler(repo, tc.categories)
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestProductUpdate(t *testing.T) {
	t.Run("partial update passes only present fields", func(t *testing.T) {
		repo := &mockProductStore{product: model.Product{ID: 5, Name: "Renamed", Price: decimal.NewFromInt(20), CategoryID: 1}}
		h := NewProductHandler(repo, &stubCategoryGetter{})
		body := `{"name":"Renamed","stock_quantity":4}`
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/products/5", strings.NewReader(body)), "id", "5")
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, repo.updated.Name)
		assert.Equal(t, "Renamed", *repo.updated.Name)
		assert.NotNil(t, repo.updated.StockQuantity)
		assert.Equal(t, 4, *repo.updated.StockQuantity)
		assert.Nil(t, repo.updated.Price)
		assert.Nil(t, repo.updated.Description)
	})

	t.Run("no recognized fields", func(t *testing.T) {
		h := NewProductHandler(&mockProductStore{updateErr: store.ErrNoFields}, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/products/5", strings.NewReader(`{}`)), "id", "5")
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		repo := &mockProductStore{}
		h := NewProductHandler(repo, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/products/5", strings.NewReader(`{"stock_quantity":-3}`)), "id", "5")
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, repo.updated)
	})

	t.Run("missing product", func(t *testing.T) {
		h := NewProductHandler(&mockProductStore{updateErr: store.ErrNotFound}, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/products/99", strings.NewReader(`{"name":"X"}`)), "id", "99")
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductDelete(t *testing.T) {
	t.Run("missing product", func(t *testing.T) {
		h := NewProductHandler(&mockProductStore{deleteErr: store.ErrNotFound}, &stubCategoryGetter{})
		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/products/99", nil), "id", "99")
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
