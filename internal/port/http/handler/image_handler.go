package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/platform/metrics"
	"github.com/MateoKaloshi/MotoLine/internal/service"
)

// Uploads are capped at 10 MiB per request to keep memory bounded.
const maxUploadBytes = 10 << 20

type ImageHandler struct {
	images  service.ImageService
	metrics *metrics.Manager
	log     logger.Logger
}

func NewImageHandler(images service.ImageService, m *metrics.Manager, log logger.Logger) *ImageHandler {
	return &ImageHandler{images: images, metrics: m, log: log}
}

// HandleUpload accepts a multipart form with a bike_id field and one
// or more files under "images", "files", or a single-file "image".
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid multipart form"})
		return
	}

	bikeID := r.FormValue("bike_id")
	if bikeID == "" {
		bikeID = r.FormValue("bikeId")
	}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = append(headers, r.MultipartForm.File["images"]...)
		headers = append(headers, r.MultipartForm.File["files"]...)
		headers = append(headers, r.MultipartForm.File["image"]...)
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "could not read uploaded file"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "could not read uploaded file"})
			return
		}
		files = append(files, service.UploadFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	uploaded, err := h.images.Upload(r.Context(), bikeID, files)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ImagesUploaded.Add(float64(len(uploaded)))
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "images uploaded",
		"images":  uploaded,
	})
}
