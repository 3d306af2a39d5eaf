package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"tenderai/pkg/apierrors"
)

// File is the payload of an upload. Name defaults to "file".
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// FormField is the multipart field that carries the file.
const FormField = "file"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadFile posts file as multipart form data together with fields.
// Slice-valued fields are written once per element. The response is always
// decoded as JSON.
func (c *Client) UploadFile(ctx context.Context, endpoint string, file File, fields Params, out any, cfg *RequestConfig) error {
	body, err := buildMultipart(file, fields)
	if err != nil {
		return apierrors.New("Failed to build upload body", apierrors.StatusNetwork, apierrors.CodeInvalidInput, nil, err)
	}
	rc := c.resolveConfig(cfg)
	rc.ResponseType = ResponseJSON
	return c.send(ctx, http.MethodPost, endpoint, body, out, rc)
}

func buildMultipart(file File, fields Params) (*requestBody, error) {
	if file.Reader == nil {
		return nil, errors.New("file reader is nil")
	}
	name := file.Name
	if name == "" {
		name = FormField
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set(HeaderContentType, contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, field := range fields {
		values, _, ok := paramValues(field.Value)
		if !ok {
			continue
		}
		for _, v := range values {
			if err := w.WriteField(field.Key, v); err != nil {
				return nil, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &requestBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}
