package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
	"github.com/ummataliyev/estatehub/internal/server/repositories/buildings"
)

// BuildingService is what the building endpoints need from the service layer.
type BuildingService interface {
	GetByID(ctx context.Context, id int64) (*models.Building, error)
	ListByComplex(ctx context.Context, complexID int64, limit, offset int) ([]*models.Building, int, error)
	Create(ctx context.Context, complexID int64, name string, floors int) (*models.Building, error)
	Update(ctx context.Context, id int64, upd buildings.Update) (*models.Building, error)
	Delete(ctx context.Context, id int64) (*models.Building, error)
	Restore(ctx context.Context, id int64) (*models.Building, error)
}

type BuildingHandler struct {
	service BuildingService
}

func NewBuildingHandler(service BuildingService) *BuildingHandler {
	return &BuildingHandler{service: service}
}

type buildingResponse struct {
	ID        int64      `json:"id"`
	ComplexID int64      `json:"complex_id"`
	Name      string     `json:"name"`
	Floors    int        `json:"floors"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func toBuildingResponse(b *models.Building) buildingResponse {
	return buildingResponse{
		ID:        b.ID,
		ComplexID: b.ComplexID,
		Name:      b.Name,
		Floors:    b.Floors,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		DeletedAt: b.DeletedAt,
	}
}

type buildingCreateRequest struct {
	ComplexID int64  `json:"complex_id"`
	Name      string `json:"name"`
	Floors    int    `json:"floors"`
}

type buildingPatchRequest struct {
	Name   base.Opt[string] `json:"name"`
	Floors base.Opt[int]    `json:"floors"`
}

// ListByComplex handles GET /api/complexes/{id}/buildings.
func (h *BuildingHandler) ListByComplex(w http.ResponseWriter, r *http.Request) {
	complexID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, common.ErrInvalidArgument)
		return
	}

	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	bs, total, err := h.service.ListByComplex(r.Context(), complexID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]buildingResponse, 0, len(bs))
	for _, b := range bs {
		items = append(items, toBuildingResponse(b))
	}
	writeJSON(w, http.StatusOK, listResponse[buildingResponse]{Items: items, Total: total})
}

// Get handles GET /api/buildings/{id}.
func (h *BuildingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(b))
}

// Create handles POST /api/buildings.
func (h *BuildingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req buildingCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.service.Create(r.Context(), req.ComplexID, req.Name, req.Floors)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBuildingResponse(b))
}

// Update handles PATCH /api/buildings/{id}.
func (h *BuildingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req buildingPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.service.Update(r.Context(), id, buildings.Update{
		Name:   req.Name,
		Floors: req.Floors,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(b))
}

// Delete handles DELETE /api/buildings/{id}.
func (h *BuildingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(b))
}

// Restore handles POST /api/buildings/{id}/restore.
func (h *BuildingHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBuildingResponse(b))
}
