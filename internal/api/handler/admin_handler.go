package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkbasket/catalog/internal/api/metrics"
	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// AdminHandler serves the admin panel and the catalog mutations behind it.
type AdminHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewAdminHandler(catalog ports.CatalogService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, log: log}
}

type adminPage struct {
	Products []*domain.Product
}

type createProductForm struct {
	Title        string `form:"title" validate:"required"`
	ImageURL     string `form:"imageUrl"`
	AffiliateURL string `form:"affiliateUrl" validate:"required"`
	Price        string `form:"price"`
	Description  string `form:"description"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Dashboard handles GET /admin — all products with delete controls.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	products, err := h.catalog.Search(c.Request().Context(), "")
	if err != nil {
		h.log.Error().Err(err).Msg("admin listing failed")
		return c.String(http.StatusInternalServerError, "Failed to load admin panel")
	}
	return c.Render(http.StatusOK, "admin.html", adminPage{Products: products})
}

// CreateProduct handles POST /admin/products (multipart form). The
// optional imageFile field wins over imageUrl when both are present.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var form createProductForm
	if err := c.Bind(&form); err != nil {
		return c.String(http.StatusBadRequest, "Invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return c.String(http.StatusBadRequest, "Missing required fields")
	}

	input := ports.CreateProductInput{
		Title:        form.Title,
		ImageURL:     form.ImageURL,
		AffiliateURL: form.AffiliateURL,
		Price:        form.Price,
		Description:  form.Description,
	}

	imageSource := "url"
	if fh, err := c.FormFile("imageFile"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			h.log.Error().Err(err).Str("filename", fh.Filename).Msg("open uploaded file failed")
			return c.String(http.StatusInternalServerError, "Failed to add product")
		}
		defer f.Close()
		input.Upload = &ports.UploadInput{Filename: fh.Filename, Content: f}
		imageSource = "upload"
	}

	if _, err := h.catalog.Create(c.Request().Context(), input); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.String(http.StatusBadRequest, "Missing required fields")
		}
		h.log.Error().Err(err).Msg("create product failed")
		return c.String(http.StatusInternalServerError, "Failed to add product")
	}

	metrics.ProductsCreatedTotal.WithLabelValues(imageSource).Inc()
	return c.Redirect(http.StatusFound, "/admin")
}

// DeleteProduct handles DELETE /admin/products/:id. Deleting an id that
// no longer exists still reports success — the listing is gone either way.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("delete product failed")
		return c.JSON(http.StatusInternalServerError, deleteResponse{
			Success: false,
			Message: "Failed to delete product",
		})
	}

	metrics.ProductsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}
