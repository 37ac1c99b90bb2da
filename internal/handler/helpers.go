package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/middleware"
	"github.com/askboard-dev/askboard/internal/utils"
	"github.com/go-chi/chi/v5"
)

func parseIdParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("Invalid %s", name), StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

// actingUser pulls the authenticated identity the auth middleware stored.
func actingUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return user
}

// readImageUpload reads and validates the named multipart file field.
// A missing field is not an error: (nil, "", nil).
func (h *Handler) readImageUpload(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(h.cfg.Public.MaxImageBytes); err != nil {
		return nil, "", &errors.ErrorWithStatusCode{Message: "Invalid multipart body", StatusCode: http.StatusBadRequest}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", nil
		}
		return nil, "", &errors.ErrorWithStatusCode{Message: "Invalid file upload", StatusCode: http.StatusBadRequest}
	}
	defer file.Close()

	if header.Size > h.cfg.Public.MaxImageBytes {
		return nil, "", &errors.ErrorWithStatusCode{Message: "Image too large", StatusCode: http.StatusRequestEntityTooLarge}
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.Public.MaxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > h.cfg.Public.MaxImageBytes {
		return nil, "", &errors.ErrorWithStatusCode{Message: "Image too large", StatusCode: http.StatusRequestEntityTooLarge}
	}

	ext, err := utils.ValidateImage(data)
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}
