// internal/services/translation_service.go
// Model Derivative translation (STEP -> SVF). Placeholder, no job state is kept.

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aps-bridge/internal/util"
)

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobInProgress JobStatus = "in_progress"
	JobSuccess    JobStatus = "success"
	JobFailed     JobStatus = "failed"
)

// ErrTranslationNotImplemented marks jobs that no translation backend will run.
var ErrTranslationNotImplemented = errors.New("translation pipeline not implemented")

var targetFormats = map[string]bool{"svf": true, "svf2": true}

type TranslateRequest struct {
	URN          string `json:"urn"`
	TargetFormat string `json:"targetFormat"`
}

// Validate checks the request and defaults TargetFormat to svf.
func (r *TranslateRequest) Validate() error {
	r.URN = strings.TrimSpace(r.URN)
	if r.URN == "" {
		return util.BadInput("urn required")
	}
	r.TargetFormat = strings.ToLower(strings.TrimSpace(r.TargetFormat))
	if r.TargetFormat == "" {
		r.TargetFormat = "svf"
	}
	if !targetFormats[r.TargetFormat] {
		return util.BadInput(fmt.Sprintf("unsupported targetFormat %q", r.TargetFormat))
	}
	return nil
}

type TranslationJob struct {
	URN      string    `json:"urn"`
	Status   JobStatus `json:"status"`
	Progress int       `json:"progress"`
	Message  string    `json:"message,omitempty"`
	JobID    string    `json:"jobId"`
}

type Translator interface {
	StartTranslation(ctx context.Context, req TranslateRequest) (TranslationJob, error)
	TranslationStatus(ctx context.Context, jobID string) (TranslationJob, error)
}

// PlaceholderTranslator hands out job ids but never translates anything.
type PlaceholderTranslator struct{}

func (PlaceholderTranslator) Implemented() bool { return false }

func (PlaceholderTranslator) StartTranslation(ctx context.Context, req TranslateRequest) (TranslationJob, error) {
	if err := ctx.Err(); err != nil {
		return TranslationJob{}, err
	}
	return TranslationJob{
		URN:     req.URN,
		Status:  JobPending,
		Message: ErrTranslationNotImplemented.Error(),
		JobID:   util.NewID(),
	}, nil
}

func (PlaceholderTranslator) TranslationStatus(ctx context.Context, jobID string) (TranslationJob, error) {
	if err := ctx.Err(); err != nil {
		return TranslationJob{}, err
	}
	if !util.ValidID(jobID) {
		return TranslationJob{}, util.BadInput("jobId must be a UUID")
	}
	return TranslationJob{
		Status:  JobPending,
		Message: ErrTranslationNotImplemented.Error(),
		JobID:   jobID,
	}, nil
}
