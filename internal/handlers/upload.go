package handlers

import (
	"net/http"

	"github.com/cinelog/cinelog-backend/internal/services"
)

// UploadHandler pushes poster artwork to Cloudinary. The service is nil when
// Cloudinary credentials are not configured.
type UploadHandler struct {
	Cloudinary *services.CloudinaryService
}

func NewUploadHandler(cloudinary *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{Cloudinary: cloudinary}
}

type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// UploadPoster handles POST /api/upload. The returned URL is what clients
// store on the movie row.
func (h *UploadHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	if h.Cloudinary == nil {
		writeError(w, http.StatusInternalServerError, "File upload service not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "posters"
	}

	url, err := h.Cloudinary.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{Message: "File uploaded", URL: url})
}
