package handler

import (
	"errors"
	"net/http"

	"luxeshop/middleware"
	"luxeshop/utils"
)

type UploadHandler struct {
	uploader *middleware.Uploader
}

func NewUploadHandler(uploader *middleware.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload stores a product image and returns the URL to reference from a
// product's image_url field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	url, err := h.uploader.SaveImage(r, "image")
	if err != nil {
		switch {
		case errors.Is(err, middleware.ErrNoFile):
			utils.RespondError(w, http.StatusBadRequest, nil, "Image file is required")
		case errors.Is(err, middleware.ErrFileTooLarge):
			utils.RespondError(w, http.StatusBadRequest, nil, "File too large. Maximum size is 5MB.")
		case errors.Is(err, middleware.ErrNotAnImage):
			utils.RespondError(w, http.StatusBadRequest, nil, "Only image files (JPEG, JPG, PNG, GIF, WebP) are allowed")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed to store image")
		}
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "Image uploaded successfully", map[string]string{"url": url})
}
