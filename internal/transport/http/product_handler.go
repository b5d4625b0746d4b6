package http

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/archive_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/bulk_create"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/set_stock"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// maxImageSize caps a single uploaded image at 5MB, matching the
// admin form's limit.
const maxImageSize = 5 << 20

type productCreator interface {
	Execute(ctx context.Context, req *create_product.Request) (string, error)
}

type productUpdater interface {
	Execute(ctx context.Context, req *update_product.Request) error
}

type productArchiver interface {
	Execute(ctx context.Context, req *archive_product.Request) error
}

type stockSetter interface {
	Execute(ctx context.Context, req *set_stock.Request) error
}

type bulkCreator interface {
	Execute(ctx context.Context, req *bulk_create.Request) (*bulk_create.Result, error)
}

type productGetter interface {
	Execute(ctx context.Context, req *get_product.Request) (*contracts.ProductDTO, error)
}

type productLister interface {
	Execute(ctx context.Context, req *list_products.Request) (*contracts.ListResult, error)
}

// ProductHandler serves the product admin and storefront endpoints.
type ProductHandler struct {
	create  productCreator
	update  productUpdater
	archive productArchiver
	stock   stockSetter
	bulk    bulkCreator
	get     productGetter
	list    productLister
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(
	create productCreator,
	update productUpdater,
	archive productArchiver,
	stock stockSetter,
	bulk bulkCreator,
	get productGetter,
	list productLister,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		create:  create,
		update:  update,
		archive: archive,
		stock:   stock,
		bulk:    bulk,
		get:     get,
		list:    list,
		logger:  logger,
	}
}

// productResponse is the JSON shape of a product. Prices are formatted
// to two decimals for display.
type productResponse struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           string `json:"price"`
	EffectivePrice  string `json:"effective_price"`
	Stock           int64  `json:"stock"`
	DiscountPercent int64  `json:"discount_percent"`
	IsNew           bool   `json:"is_new"`
	IsBestSeller    bool   `json:"is_best_seller"`
	ImageURL        string `json:"image_url"`
	HoverImageURL   string `json:"hover_image_url,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toProductResponse(dto *contracts.ProductDTO) *productResponse {
	return &productResponse{
		ProductID:       dto.ProductID,
		Name:            dto.Name,
		Description:     dto.Description,
		Category:        dto.Category,
		Price:           dto.Price.String(),
		EffectivePrice:  dto.EffectivePrice.String(),
		Stock:           dto.Stock,
		DiscountPercent: dto.DiscountPercent,
		IsNew:           dto.IsNew,
		IsBestSeller:    dto.IsBestSeller,
		ImageURL:        dto.ImageURL,
		HoverImageURL:   dto.HoverImageURL,
		Status:          dto.Status,
		CreatedAt:       dto.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       dto.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_products.Request{
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be an integer")
			return
		}
		req.PageSize = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		req.Offset = n
	}

	result, err := h.list.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	products := make([]*productResponse, 0, len(result.Products))
	for _, dto := range result.Products {
		products = append(products, toProductResponse(dto))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products":    products,
		"total_count": result.TotalCount,
	})
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := h.get.Execute(r.Context(), &get_product.Request{ProductID: chi.URLParam(r, "id")})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(dto))
}

// Create handles POST /api/v1/products. The body is a multipart form:
// product fields plus a required main_image file and an optional
// hover_image file.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(2 * maxImageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", "expected multipart form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, ok := h.parseCreateForm(w, r)
	if !ok {
		return
	}

	productID, err := h.create.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"product_id": productID})
}

// Update handles PATCH /api/v1/products/{id}. Absent form fields are
// left unchanged.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(2 * maxImageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", "expected multipart form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := &update_product.Request{ProductID: chi.URLParam(r, "id")}

	form := r.MultipartForm.Value
	if v, ok := formValue(form, "name"); ok {
		req.Name = &v
	}
	if v, ok := formValue(form, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(form, "category"); ok {
		req.Category = &v
	}
	if v, ok := formValue(form, "price"); ok {
		price, err := money.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price", "price must be a decimal number")
			return
		}
		req.Price = price
	}
	if v, ok := formValue(form, "discount_percent"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_discount", "discount_percent must be an integer")
			return
		}
		req.DiscountPercent = &n
	}
	if v, ok := formValue(form, "is_new"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_flag", "is_new must be a boolean")
			return
		}
		req.IsNew = &b
	}
	if v, ok := formValue(form, "is_best_seller"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_flag", "is_best_seller must be a boolean")
			return
		}
		req.IsBestSeller = &b
	}

	var err error
	req.MainImage, err = imageUpload(r, "main_image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return
	}
	req.HoverImage, err = imageUpload(r, "hover_image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return
	}

	if err := h.update.Execute(r.Context(), req); err != nil {
		h.logger.Error("update product failed", zap.String("product_id", req.ProductID), zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"product_id": req.ProductID})
}

// Archive handles DELETE /api/v1/products/{id}. Products are archived,
// never hard-deleted, so past orders keep their references.
func (h *ProductHandler) Archive(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.archive.Execute(r.Context(), &archive_product.Request{ProductID: productID}); err != nil {
		h.logger.Error("archive product failed", zap.String("product_id", productID), zap.Error(err))
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStock handles PUT /api/v1/products/{id}/stock.
func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Stock int64 `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	productID := chi.URLParam(r, "id")

	if err := h.stock.Execute(r.Context(), &set_stock.Request{ProductID: productID, Stock: body.Stock}); err != nil {
		h.logger.Error("set stock failed", zap.String("product_id", productID), zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"stock":      body.Stock,
	})
}

// bulkItemMeta is one product's metadata in a bulk upload form.
type bulkItemMeta struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           string `json:"price"`
	Stock           int64  `json:"stock"`
	DiscountPercent int64  `json:"discount_percent"`
	IsNew           bool   `json:"is_new"`
	IsBestSeller    bool   `json:"is_best_seller"`
}

// bulkItemResult reports one item's outcome.
type bulkItemResult struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkCreate handles POST /api/v1/products/bulk. The body is a
// multipart form: an "items" field holding a JSON array of metadata
// and one "image_{i}" file per item. Items are created one at a time,
// in order.
func (h *ProductHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_form", "expected multipart form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	metaField, ok := formValue(r.MultipartForm.Value, "items")
	if !ok {
		respondError(w, http.StatusBadRequest, "missing_items", "items field is required")
		return
	}

	var metas []bulkItemMeta
	if err := json.Unmarshal([]byte(metaField), &metas); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_items", "items must be a JSON array")
		return
	}
	if len(metas) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_items", "items must not be empty")
		return
	}

	items := make([]bulk_create.Item, 0, len(metas))
	for i, meta := range metas {
		price, err := money.Parse(meta.Price)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price",
				"item "+strconv.Itoa(i)+": price must be a decimal number")
			return
		}

		image, err := imageUpload(r, "image_"+strconv.Itoa(i))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
			return
		}
		if image == nil {
			respondError(w, http.StatusBadRequest, "missing_image",
				"item "+strconv.Itoa(i)+": image file is required")
			return
		}

		items = append(items, bulk_create.Item{
			Name:            meta.Name,
			Description:     meta.Description,
			Category:        meta.Category,
			Price:           price,
			Stock:           meta.Stock,
			DiscountPercent: meta.DiscountPercent,
			IsNew:           meta.IsNew,
			IsBestSeller:    meta.IsBestSeller,
			MainImage:       image,
		})
	}

	results := make([]bulkItemResult, 0, len(items))

	outcome, err := h.bulk.Execute(r.Context(), &bulk_create.Request{
		Items: items,
		OnProgress: func(p bulk_create.Progress) {
			h.logger.Info("bulk upload progress",
				zap.Int("current", p.Index+1),
				zap.Int("total", p.Total),
				zap.String("product_id", p.ProductID),
				zap.Error(p.Err))

			result := bulkItemResult{Index: p.Index, ProductID: p.ProductID}
			if p.Err != nil {
				result.Error = p.Err.Error()
			}
			results = append(results, result)
		},
	})
	if err != nil {
		h.logger.Error("bulk create aborted", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if outcome.Failed > 0 {
		status = http.StatusMultiStatus
	}

	respondJSON(w, status, map[string]interface{}{
		"succeeded": outcome.Succeeded,
		"failed":    outcome.Failed,
		"results":   results,
	})
}

func (h *ProductHandler) parseCreateForm(w http.ResponseWriter, r *http.Request) (*create_product.Request, bool) {
	form := r.MultipartForm.Value

	req := &create_product.Request{}
	req.Name = r.FormValue("name")
	req.Description = r.FormValue("description")
	req.Category = r.FormValue("category")

	price, err := money.Parse(r.FormValue("price"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a decimal number")
		return nil, false
	}
	req.Price = price

	if v, ok := formValue(form, "stock"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_stock", "stock must be an integer")
			return nil, false
		}
		req.Stock = n
	}
	if v, ok := formValue(form, "discount_percent"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_discount", "discount_percent must be an integer")
			return nil, false
		}
		req.DiscountPercent = n
	}
	req.IsNew = r.FormValue("is_new") == "true"
	req.IsBestSeller = r.FormValue("is_best_seller") == "true"

	req.MainImage, err = imageUpload(r, "main_image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return nil, false
	}
	req.HoverImage, err = imageUpload(r, "hover_image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_image", err.Error())
		return nil, false
	}

	return req, true
}

func formValue(form map[string][]string, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// imageUpload opens the named file from the multipart form. A missing
// file returns nil without error.
func imageUpload(r *http.Request, field string) (*contracts.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	if header.Size > maxImageSize {
		file.Close()
		return nil, &imageTooLargeError{field: field}
	}

	return &contracts.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentTypeOf(header),
		Content:     file,
	}, nil
}

type imageTooLargeError struct {
	field string
}

func (e *imageTooLargeError) Error() string {
	return e.field + " exceeds the 5MB limit"
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
