// internal/services/aps_service.go
// APS (Autodesk Platform Services) STEP upload. Only a placeholder exists today.

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
)

// ErrNotImplemented marks results that did not come from a real APS upload.
var ErrNotImplemented = errors.New("aps upload pipeline not implemented")

var errNotObject = errors.New("request body must be a JSON object")

// UploadRequest is the body of POST /api/aps/v2/upload-step.
type UploadRequest struct {
	FileURL string   `json:"file_url"`
	Scopes  []string `json:"scopes"`
}

// UnmarshalJSON accepts any JSON object. file_url is kept only when it is a
// string and scopes only when it is an array; non-string scope entries are
// dropped. Anything that is not an object (null, arrays, scalars) is an error.
func (r *UploadRequest) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return errNotObject
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return errNotObject
	}

	*r = UploadRequest{}
	if raw, ok := fields["file_url"]; ok {
		_ = json.Unmarshal(raw, &r.FileURL)
	}
	if raw, ok := fields["scopes"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil && items != nil {
			r.Scopes = make([]string, 0, len(items))
			for _, it := range items {
				var s string
				if json.Unmarshal(it, &s) == nil && !bytes.Equal(bytes.TrimSpace(it), []byte("null")) {
					r.Scopes = append(r.Scopes, s)
				}
			}
		}
	}
	return nil
}

// Normalize fills defaults: a missing or null scopes list becomes empty.
func (r *UploadRequest) Normalize() {
	if r.Scopes == nil {
		r.Scopes = []string{}
	}
}

// UploadResult is what a StepUploader produced for one request.
type UploadResult interface {
	URN() string
	// Implemented is false for placeholder results that must not be
	// mistaken for a real upload.
	Implemented() bool
}

type StepUploader interface {
	UploadStep(ctx context.Context, req UploadRequest) (UploadResult, error)
}

// PlaceholderResult carries the fixed URN handed out by PlaceholderUploader.
type PlaceholderResult struct {
	urn string
}

func (p PlaceholderResult) URN() string       { return p.urn }
func (p PlaceholderResult) Implemented() bool { return false }

// Reason explains why the result is a placeholder.
func (p PlaceholderResult) Reason() error { return ErrNotImplemented }

// PlaceholderUploader acknowledges every request with the same URN and
// performs no I/O.
type PlaceholderUploader struct {
	URNValue string
}

func NewPlaceholderUploader(urn string) *PlaceholderUploader {
	return &PlaceholderUploader{URNValue: urn}
}

func (u *PlaceholderUploader) UploadStep(ctx context.Context, _ UploadRequest) (UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return PlaceholderResult{urn: u.URNValue}, nil
}
