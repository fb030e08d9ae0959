package validation

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/refugio-dev/refugio/internal/domain"
)

// ValidatePhotos checks each uploaded file against the image MIME
// allow-list and reads it into memory for the transform pipeline.
func ValidatePhotos(fileHeaders []*multipart.FileHeader, allowedImageMimes []string) ([]*domain.PendingFile, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}

	allowedMimes := make(map[string]bool, len(allowedImageMimes))
	for _, m := range allowedImageMimes {
		allowedMimes[m] = true
	}

	var pendingFiles []*domain.PendingFile

	for _, fileHeader := range fileHeaders {
		mimeType, err := DetectMimeType(fileHeader)
		if err != nil {
			return nil, err
		}

		if !allowedMimes[mimeType] {
			return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", fileHeader.Filename, err)
		}

		pendingFiles = append(pendingFiles, &domain.PendingFile{
			Filename: fileHeader.Filename,
			MimeType: mimeType,
			Data:     data,
		})
	}

	return pendingFiles, nil
}

func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	// If no Content-Type or it's generic, detect from extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	return mimeType, nil
}
