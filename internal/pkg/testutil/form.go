package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// FormFile is a file part of a multipart test request.
type FormFile struct {
	Name    string
	Content []byte
}

// NewMultipartRequest builds a POST request carrying fields and files as multipart/form-data.
func NewMultipartRequest(t *testing.T, url string, fields map[string]string, files map[string]FormFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// Deterministic part order keeps failures reproducible.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		require.NoError(t, writer.WriteField(k, fields[k]))
	}

	for field, file := range files {
		part, err := writer.CreateFormFile(field, file.Name)
		require.NoError(t, err)

		_, err = part.Write(file.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// CreateFileHeader returns a parsed multipart.FileHeader holding content.
func CreateFileHeader(t *testing.T, field, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	req := NewMultipartRequest(t, "/", nil, map[string]FormFile{field: {Name: fileName, Content: content}})
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File[field]
	require.Len(t, headers, 1)
	return headers[0]
}
