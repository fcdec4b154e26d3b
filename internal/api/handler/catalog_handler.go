package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkbasket/catalog/internal/api/metrics"
	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// CatalogHandler serves the public listing page and the JSON search API.
type CatalogHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

type homePage struct {
	Products []*domain.Product
	Query    string
}

type productsResponse struct {
	Products []*domain.Product `json:"products"`
}

// Home handles GET / — the public listing, optionally filtered by ?q=.
func (h *CatalogHandler) Home(c echo.Context) error {
	q := c.QueryParam("q")

	products, err := h.catalog.Search(c.Request().Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("home listing failed")
		return c.String(http.StatusInternalServerError, "Failed to load products")
	}

	countSearch(q)
	return c.Render(http.StatusOK, "index.html", homePage{Products: products, Query: q})
}

// Search handles GET /api/products — the JSON variant used for live
// client-side refresh. Failures return an empty product list with a 500
// so the page degrades instead of breaking.
//
// @Summary      Search the catalog
// @Tags         catalog
// @Produce      json
// @Param        q  query     string  false  "Case-insensitive substring matched against title and description"
// @Success      200  {object}  productsResponse
// @Failure      500  {object}  productsResponse
// @Router       /api/products [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")

	products, err := h.catalog.Search(c.Request().Context(), q)
	if err != nil {
		h.log.Error().Err(err).Str("q", q).Msg("api search failed")
		return c.JSON(http.StatusInternalServerError, productsResponse{Products: []*domain.Product{}})
	}

	countSearch(q)
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

func countSearch(q string) {
	kind := "filtered"
	if q == "" {
		kind = "all"
	}
	metrics.SearchesTotal.WithLabelValues(kind).Inc()
}
