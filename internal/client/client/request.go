package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// Request describes one backend call. Path is relative to the client's base
// URL and keeps the backend's trailing slash, e.g. "/projects/12/".
//
// Body is encoded by type:
//   - nil: no body
//   - *Form: multipart/form-data with a generated boundary
//   - []byte, io.Reader: sent as is (binary payload)
//   - anything else, json.RawMessage included: JSON
//
// Content-Type: application/json is attached unless the body is a *Form or
// binary payload, or SkipContentType is set.
type Request struct {
	Method          string
	Path            string
	Query           url.Values
	Body            any
	Public          bool
	SkipContentType bool
	Header          http.Header
}

// Form is a multipart form body. Field and file order is preserved.
type Form struct {
	Fields []FormField
	Files  []FormFile
}

type FormField struct {
	Name  string
	Value string
}

type FormFile struct {
	Field       string
	FileName    string
	ContentType string
	Content     io.Reader
}

func (f *Form) AddField(name, value string) *Form {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
	return f
}

func (f *Form) AddFile(field, fileName, contentType string, content io.Reader) *Form {
	f.Files = append(f.Files, FormFile{Field: field, FileName: fileName, ContentType: contentType, Content: content})
	return f
}

// encode renders the form and returns its body and Content-Type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.Name, err)
		}
	}

	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.FileName))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy form file %s: %w", file.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// encodeBody returns the request body, the Content-Type dictated by the
// body itself (multipart), and whether the body is JSON-compatible.
func encodeBody(body any) (r io.Reader, contentType string, jsonish bool, err error) {
	switch b := body.(type) {
	case nil:
		return nil, "", true, nil
	case *Form:
		buf, ct, err := b.encode()
		if err != nil {
			return nil, "", false, err
		}
		return buf, ct, false, nil
	case json.RawMessage:
		return bytes.NewReader(b), "", true, nil
	case []byte:
		return bytes.NewReader(b), "", false, nil
	case io.Reader:
		return b, "", false, nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, "", false, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(encoded), "", true, nil
	}
}

// PayloadKind tells how a successful response body was interpreted.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadJSON
	PayloadText
)

// Result is a successful (2xx) response. For 204 Kind is PayloadNone and
// the body is never read.
type Result struct {
	Status int
	Kind   PayloadKind
	JSON   json.RawMessage
	Text   string
}

// Decode unmarshals a JSON payload into v.
func (r *Result) Decode(v any) error {
	if r == nil || r.Kind != PayloadJSON {
		return fmt.Errorf("%w: expected a JSON payload", ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
