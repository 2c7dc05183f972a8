package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/platform/metrics"
	"github.com/MateoKaloshi/MotoLine/internal/port/http/middleware"
	"github.com/MateoKaloshi/MotoLine/internal/service"
)

// flexInt accepts both 2019 and "2019", since form-built clients send
// numeric fields as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type createBikeRequest struct {
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	ProductionYear flexInt   `json:"production_year"`
	Engine         string    `json:"engine"`
	Description    string    `json:"description"`
	Price          flexFloat `json:"price"`
	Location       string    `json:"location"`
	IsSold         bool      `json:"is_sold"`
	IsSoldAlt      bool      `json:"isSold"`
}

func (r createBikeRequest) sold() bool {
	return r.IsSold || r.IsSoldAlt
}

type updateBikeRequest struct {
	Price       *flexFloat `json:"price"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
}

type purchaseRequest struct {
	Price *flexFloat `json:"price"`
	Notes string     `json:"notes"`
}

type removeImageRequest struct {
	Filename string `json:"filename"`
}

type BikeHandler struct {
	bikes   service.BikeService
	sales   service.SaleService
	images  service.ImageService
	catalog service.CatalogService
	metrics *metrics.Manager
	log     logger.Logger
}

func NewBikeHandler(
	bikes service.BikeService,
	sales service.SaleService,
	images service.ImageService,
	catalog service.CatalogService,
	m *metrics.Manager,
	log logger.Logger,
) *BikeHandler {
	return &BikeHandler{
		bikes:   bikes,
		sales:   sales,
		images:  images,
		catalog: catalog,
		metrics: m,
		log:     log,
	}
}

func (h *BikeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	var req createBikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	bike, err := h.bikes.Create(r.Context(), userID, service.CreateBikeInput{
		Brand:          req.Brand,
		Model:          req.Model,
		ProductionYear: int(req.ProductionYear),
		Engine:         req.Engine,
		Description:    req.Description,
		Price:          float64(req.Price),
		Location:       req.Location,
		IsSold:         req.sold(),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BikesCreatedTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)
	feed, err := h.bikes.ListAvailable(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *BikeHandler) HandleListByBrand(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)
	feed, err := h.bikes.ListByBrand(r.Context(), chi.URLParam(r, "brand"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *BikeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)
	feed, err := h.bikes.Search(r.Context(), r.URL.Query().Get("query"), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *BikeHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	detail, err := h.bikes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *BikeHandler) HandleMyBikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	page, limit := pagingParams(r)
	view, err := h.bikes.MyBikes(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BikeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	var req updateBikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	input := service.UpdateBikeInput{
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Price != nil {
		price := float64(*req.Price)
		input.Price = &price
	}

	bike, err := h.bikes.Update(r.Context(), userID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	if err := h.bikes.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "bike deleted"})
}

func (h *BikeHandler) HandleMarkSold(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	// An empty body means buy at the listed price.
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	var price *float64
	if req.Price != nil {
		p := float64(*req.Price)
		price = &p
	}

	result, err := h.sales.Purchase(r.Context(), chi.URLParam(r, "id"), buyerID, price, req.Notes)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BikesSoldTotal.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "bike marked as sold",
		"bike":      result.Bike,
		"soldEntry": result.Sale,
	})
}

func (h *BikeHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.catalog.Models(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"models": models})
}

func (h *BikeHandler) HandleEngines(w http.ResponseWriter, r *http.Request) {
	engines, err := h.catalog.Engines(r.Context(), r.URL.Query().Get("brand"), r.URL.Query().Get("model"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"engines": engines})
}

func (h *BikeHandler) HandleBikeImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.images.ListForBike(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"images": images})
}

func (h *BikeHandler) HandleRemoveImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, service.ErrInvalidToken)
		return
	}

	var req removeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "filename is required"})
		return
	}

	removed, err := h.images.Remove(r.Context(), userID, chi.URLParam(r, "id"), req.Filename)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "images removed",
		"removed": removed,
	})
}

// pagingParams reads page/limit from the query string; the services
// clamp them to valid ranges.
func pagingParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
