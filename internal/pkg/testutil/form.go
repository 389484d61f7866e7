package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// CreateForm encodes files under field and parses the result back into a multipart form.
// FileHeader.Size is set from the content since the reader leaves it empty for in-memory parts.
func CreateForm(files map[string][]byte, field string) (*multipart.Form, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for fileName, content := range files {
		part, err := writer.CreateFormFile(field, fileName)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		return nil, fmt.Errorf("failed to read multipart form: %w", err)
	}

	for _, header := range form.File[field] {
		if content, ok := files[header.Filename]; ok {
			header.Size = int64(len(content))
		}
	}
	return form, nil
}
