// Package httputil holds helpers shared by the HTTP adapters.
package httputil

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
)

// MaxUploadBytes bounds files accepted from forms (keys, content, ciphertext).
const MaxUploadBytes = 10 << 20

// ErrFileTooLarge is returned when an uploaded file exceeds MaxUploadBytes.
var ErrFileTooLarge = errors.New("uploaded file is too large")

// ReadFileHeader reads the whole content of an uploaded file.
func ReadFileHeader(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > MaxUploadBytes {
		return nil, fmt.Errorf("%s: %w", fileHeader.Filename, ErrFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", fileHeader.Filename, err)
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", fileHeader.Filename, err)
	}
	if len(content) > MaxUploadBytes {
		return nil, fmt.Errorf("%s: %w", fileHeader.Filename, ErrFileTooLarge)
	}
	return content, nil
}

// AttachmentDisposition returns a Content-Disposition value that makes browsers save the
// response as fileName.
func AttachmentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", fileName, url.PathEscape(fileName))
}
