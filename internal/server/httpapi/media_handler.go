package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ummataliyev/estatehub/internal/common"
)

// MediaService is what the photo endpoints need from the service layer.
type MediaService interface {
	GetUploadURL(ctx context.Context) (key string, url string, err error)
	GetDownloadURL(ctx context.Context, key string) (string, error)
}

type MediaHandler struct {
	service MediaService
}

func NewMediaHandler(service MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type downloadURLResponse struct {
	URL string `json:"url"`
}

// UploadURL handles POST /api/photos/upload-url. The client PUTs the photo
// bytes straight to object storage; the server only mints the URL.
func (h *MediaHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.service.GetUploadURL(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

// DownloadURL handles GET /api/photos/download-url?key=....
func (h *MediaHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, fmt.Errorf("%w: key is required", common.ErrInvalidArgument))
		return
	}

	url, err := h.service.GetDownloadURL(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downloadURLResponse{URL: url})
}
