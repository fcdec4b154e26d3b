package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkbasket/catalog/internal/api/view"
	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub catalog service
// ---------------------------------------------------------------------------

type stubCatalog struct {
	products   []*domain.Product
	created    []ports.CreateProductInput
	deletedIDs []string
	searchErr  error
	createErr  error
	deleteErr  error
}

func (s *stubCatalog) Search(_ context.Context, term string) ([]*domain.Product, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.products, nil
}

func (s *stubCatalog) Create(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if in.Upload != nil {
		_, _ = io.Copy(io.Discard, in.Upload.Content)
	}
	s.created = append(s.created, in)
	now := time.Now().UTC()
	return &domain.Product{
		ID:           fmt.Sprintf("id-%d", len(s.created)),
		Title:        in.Title,
		ImageURL:     in.ImageURL,
		AffiliateURL: in.AffiliateURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *stubCatalog) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testLogger = zerolog.Nop()

// newEcho builds an Echo instance with the real renderer and validator,
// matching what the router wires up.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// ---------------------------------------------------------------------------
// CreateProduct tests
// ---------------------------------------------------------------------------

func TestAdminHandler_CreateProduct_Success(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{}
	h := NewAdminHandler(svc, testLogger)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "Widget",
		"imageUrl":     "https://img/1.png",
		"affiliateUrl": "https://a.co/x",
		"price":        "19.99",
	}, "", "", "")

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", loc)
	}
	if len(svc.created) != 1 || svc.created[0].Price != "19.99" {
		t.Fatalf("unexpected create input: %+v", svc.created)
	}
}

func TestAdminHandler_CreateProduct_MissingFields(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{}
	h := NewAdminHandler(svc, testLogger)

	body, contentType := multipartBody(t, map[string]string{
		"imageUrl": "https://img/1.png",
	}, "", "", "")

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(svc.created) != 0 {
		t.Fatal("nothing may be created on validation failure")
	}
}

func TestAdminHandler_CreateProduct_BlankFieldsRejectedByService(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{createErr: domain.ErrValidation}
	h := NewAdminHandler(svc, testLogger)

	// Whitespace passes form validation; the service rejects after trimming.
	body, contentType := multipartBody(t, map[string]string{
		"title":        "   ",
		"imageUrl":     "https://img/1.png",
		"affiliateUrl": "https://a.co/x",
	}, "", "", "")

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_CreateProduct_WithUpload(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{}
	h := NewAdminHandler(svc, testLogger)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "Widget",
		"affiliateUrl": "https://a.co/x",
	}, "imageFile", "photo.jpg", "jpegbytes")

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if len(svc.created) != 1 || svc.created[0].Upload == nil {
		t.Fatal("upload not passed to the service")
	}
	if svc.created[0].Upload.Filename != "photo.jpg" {
		t.Fatalf("unexpected upload filename %q", svc.created[0].Upload.Filename)
	}
}

func TestAdminHandler_CreateProduct_StorageFailure(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{createErr: errors.New("mongo down")}
	h := NewAdminHandler(svc, testLogger)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "Widget",
		"imageUrl":     "https://img/1.png",
		"affiliateUrl": "https://a.co/x",
	}, "", "", "")

	req := httptest.NewRequest(http.MethodPost, "/admin/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// DeleteProduct tests
// ---------------------------------------------------------------------------

func TestAdminHandler_DeleteProduct_Success(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{}
	h := NewAdminHandler(svc, testLogger)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/abc123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/admin/products/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.DeleteProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp deleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if len(svc.deletedIDs) != 1 || svc.deletedIDs[0] != "abc123" {
		t.Fatalf("unexpected deleted ids: %v", svc.deletedIDs)
	}
}

func TestAdminHandler_DeleteProduct_StorageFailure(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{deleteErr: errors.New("mongo down")}
	h := NewAdminHandler(svc, testLogger)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/abc123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.DeleteProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp deleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false on storage failure")
	}
	if resp.Message == "" {
		t.Fatal("expected a failure message")
	}
}

// ---------------------------------------------------------------------------
// Dashboard tests
// ---------------------------------------------------------------------------

func TestAdminHandler_Dashboard_RendersProducts(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{products: []*domain.Product{
		{ID: "1", Title: "Widget", ImageURL: "/uploads/x.jpg", AffiliateURL: "https://a.co/x", CreatedAt: time.Now()},
	}}
	h := NewAdminHandler(svc, testLogger)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Widget") {
		t.Fatal("rendered page does not contain the product title")
	}
}

func TestAdminHandler_Dashboard_StorageFailure(t *testing.T) {
	e := newEcho(t)
	svc := &stubCatalog{searchErr: errors.New("mongo down")}
	h := NewAdminHandler(svc, testLogger)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
