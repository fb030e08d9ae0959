package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/refugio-dev/refugio/internal/domain"
	internal_errors "github.com/refugio-dev/refugio/internal/errors"
	"github.com/refugio-dev/refugio/internal/utils"
	"github.com/refugio-dev/refugio/internal/validation"
)

// parseMultipartRequest parses a multipart form request carrying a "json"
// payload field and optional "photos" file fields. Returns the decoded
// payload and the validated pending files.
func parseMultipartRequest[T any](w http.ResponseWriter, r *http.Request, h *Handler) (body T, pendingFiles []*domain.PendingFile, err error) {
	// One extra MiB covers the json field and multipart framing overhead.
	maxRequestSize := h.cfg.Public.MaxUploadSize + 1<<20
	if err = validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		maxSizeMB := validation.FormatSizeMB(h.cfg.Public.MaxUploadSize)
		err = &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Upload exceeds the limit of %.0f MB. Please reduce the number or size of files", maxSizeMB),
			StatusCode: http.StatusRequestEntityTooLarge,
		}
		return
	}

	jsonPayload := r.FormValue("json")
	if jsonPayload == "" {
		err = &internal_errors.ErrorWithStatusCode{Message: "Missing JSON payload in multipart form", StatusCode: http.StatusBadRequest}
		return
	}
	if err = utils.DecodeValidate(strings.NewReader(jsonPayload), &body); err != nil {
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) > 0 {
		pendingFiles, err = validation.ValidatePhotos(files, h.cfg.Public.AllowedImageMimeTypes)
		if err != nil {
			err = &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
			return
		}
	}

	return
}

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("invalid %s: must be an integer", paramName),
			StatusCode: http.StatusBadRequest,
		}
	}
	return val, nil
}
