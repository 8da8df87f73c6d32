package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
	"github.com/ummataliyev/estatehub/internal/server/repositories/complexes"
)

// ComplexService is what the complex endpoints need from the service layer.
type ComplexService interface {
	GetByID(ctx context.Context, id int64) (*models.Complex, error)
	List(ctx context.Context, limit, offset int) ([]*models.Complex, int, error)
	Create(ctx context.Context, name, address string) (*models.Complex, error)
	Import(ctx context.Context, items []*models.Complex) error
	Update(ctx context.Context, id int64, upd complexes.Update) (*models.Complex, error)
	Delete(ctx context.Context, id int64) (*models.Complex, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Restore(ctx context.Context, id int64) (*models.Complex, error)
	RestoreMany(ctx context.Context, ids []int64) (int64, error)
}

type ComplexHandler struct {
	service ComplexService
}

func NewComplexHandler(service ComplexService) *ComplexHandler {
	return &ComplexHandler{service: service}
}

type complexResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func toComplexResponse(c *models.Complex) complexResponse {
	return complexResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

type complexCreateRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type complexPatchRequest struct {
	Name    base.Opt[string] `json:"name"`
	Address base.Opt[string] `json:"address"`
}

type complexImportRequest struct {
	Items []complexCreateRequest `json:"items"`
}

// List handles GET /api/complexes.
func (h *ComplexHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cs, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]complexResponse, 0, len(cs))
	for _, c := range cs {
		items = append(items, toComplexResponse(c))
	}
	writeJSON(w, http.StatusOK, listResponse[complexResponse]{Items: items, Total: total})
}

// Get handles GET /api/complexes/{id}.
func (h *ComplexHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplexResponse(c))
}

// Create handles POST /api/complexes.
func (h *ComplexHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req complexCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Create(r.Context(), req.Name, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComplexResponse(c))
}

// Import handles POST /api/complexes/import: all-or-nothing batch insert.
func (h *ComplexHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req complexImportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	items := make([]*models.Complex, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.Complex{Name: item.Name, Address: item.Address})
	}

	if err := h.service.Import(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, affectedResponse{Affected: int64(len(items))})
}

// Update handles PATCH /api/complexes/{id}.
func (h *ComplexHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req complexPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Update(r.Context(), id, complexes.Update{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplexResponse(c))
}

// Delete handles DELETE /api/complexes/{id}.
func (h *ComplexHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplexResponse(c))
}

// Restore handles POST /api/complexes/{id}/restore.
func (h *ComplexHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplexResponse(c))
}

// DeleteMany handles POST /api/complexes/batch-delete.
func (h *ComplexHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	n, err := h.service.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, affectedResponse{Affected: n})
}

// RestoreMany handles POST /api/complexes/batch-restore.
func (h *ComplexHandler) RestoreMany(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	n, err := h.service.RestoreMany(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, affectedResponse{Affected: n})
}
