package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/vivek-boini/furniture/internal/catalog"
	"github.com/vivek-boini/furniture/internal/events"
	"github.com/vivek-boini/furniture/internal/logging"
	"github.com/vivek-boini/furniture/internal/media"
	"github.com/vivek-boini/furniture/internal/models"
	"github.com/vivek-boini/furniture/internal/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
	Uploader media.Uploader
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_failed", "error", err)
	}
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if err := search.IndexProduct(c.Request().Context(), h.ES, p); err != nil {
		logging.FromContext(c.Request().Context()).Warn("es_index_failed", "productID", p.ID, "error", err)
	}
}

// GetProducts is the catalog filter engine endpoint: AND across filter
// groups, no pagination, the whole matching set every call.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	f := catalog.ParseFilter(
		c.QueryParam("category"),
		c.QueryParam("search"),
		c.QueryParam("minPrice"),
		c.QueryParam("maxPrice"),
		c.QueryParam("material"),
		c.QueryParam("sort"),
	)

	products := []models.Product{}
	if err := f.Apply(h.DB.WithContext(ctx).Model(&models.Product{})).Find(&products).Error; err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, product)
}

// productForm reads the multipart fields shared by create and update.
type productForm struct {
	Name          string
	Category      string
	SubCategory   string
	Price         *float64
	DiscountPrice *float64
	Description   string
	Material      string
	IsOffer       bool
}

func bindProductForm(c echo.Context) (productForm, error) {
	var f productForm
	f.Name = c.FormValue("name")
	f.Category = c.FormValue("category")
	f.SubCategory = c.FormValue("subCategory")
	f.Description = c.FormValue("description")
	f.Material = c.FormValue("material")
	f.IsOffer = c.FormValue("isOffer") == "true"

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("price must be a number")
		}
		f.Price = &price
	}
	if v := c.FormValue("discountPrice"); v != "" {
		dp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("discountPrice must be a number")
		}
		f.DiscountPrice = &dp
	}

	if f.Price != nil && f.DiscountPrice != nil && *f.DiscountPrice >= *f.Price {
		return f, fmt.Errorf("discountPrice must be less than price")
	}

	return f, nil
}

// resolveImages uploads the main image and gallery files, if any. A new
// gallery replaces the prior one entirely.
func (h *ProductHandler) resolveImages(c echo.Context) (string, []string, error) {
	if h.Uploader == nil {
		return "", nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return "", nil, nil
	}

	ctx := c.Request().Context()

	var mainURL string
	if files := form.File["image"]; len(files) > 0 {
		mainURL, err = media.UploadHeader(ctx, h.Uploader, files[0])
		if err != nil {
			return "", nil, err
		}
	}

	var gallery []string
	for _, fh := range form.File["additionalImages"] {
		url, err := media.UploadHeader(ctx, h.Uploader, fh)
		if err != nil {
			return "", nil, err
		}
		gallery = append(gallery, url)
	}

	return mainURL, gallery, nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	form, err := bindProductForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if form.Name == "" || form.Category == "" || form.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name, category and price are required")
	}
	if *form.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	imageURL, gallery, err := h.resolveImages(c)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "reason", "upload error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	product := models.Product{
		Name:          form.Name,
		Category:      form.Category,
		SubCategory:   form.SubCategory,
		Price:         *form.Price,
		DiscountPrice: form.DiscountPrice,
		Description:   form.Description,
		Material:      form.Material,
		ImageURL:      imageURL,
		Images:        gallery,
		IsOffer:       form.IsOffer,
	}

	if err := h.DB.WithContext(ctx).Create(&product).Error; err != nil {
		l.Error("create_product_failed", "status", 500, "reason", "create error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.index(c, &product)
	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("update_product_failed", "status", 500, "reason", "query error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	form, err := bindProductForm(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if form.Name != "" {
		product.Name = form.Name
	}
	if form.Category != "" {
		product.Category = form.Category
	}
	if form.SubCategory != "" {
		product.SubCategory = form.SubCategory
	}
	if form.Description != "" {
		product.Description = form.Description
	}
	if form.Material != "" {
		product.Material = form.Material
	}
	if form.Price != nil {
		if *form.Price <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		product.Price = *form.Price
	}
	product.DiscountPrice = form.DiscountPrice
	product.IsOffer = form.IsOffer

	if product.DiscountPrice != nil && *product.DiscountPrice >= product.Price {
		return echo.NewHTTPError(http.StatusBadRequest, "discountPrice must be less than price")
	}

	imageURL, gallery, err := h.resolveImages(c)
	if err != nil {
		l.Error("update_product_failed", "status", 500, "reason", "upload error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if imageURL != "" {
		product.ImageURL = imageURL
	}
	if len(gallery) > 0 {
		product.Images = gallery
	}

	if err := h.DB.WithContext(ctx).Save(&product).Error; err != nil {
		l.Error("update_product_failed", "status", 500, "reason", "save error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.index(c, &product)
	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("update_product_success", "productID", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		l.Error("delete_product_failed", "status", 500, "reason", "delete error", "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	if err := search.DeleteProduct(ctx, h.ES, uint(id)); err != nil {
		l.Warn("es_delete_failed", "productID", id, "error", err)
	}
	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "productID", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// SearchProducts runs the full-text search against the mirror index.
// This is separate from the catalog filter endpoint.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	total, products, err := search.Search(ctx, h.ES, search.ProductIndex, q)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "es error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
