package generate

import (
	"context"
	"fmt"

	"github.com/brandlens/photogen/prompt"
)

// ImageRef is a reference image resolved to inline data, ready for the
// backend payload.
type ImageRef struct {
	MimeType string
	Data     string // base64
	Id       string // upstream identifier, recorded with the generation entry
}

type References struct {
	Product *ImageRef
	Model   *ImageRef
	Scene   *ImageRef
}

func (r References) Count() int {
	count := 0
	for _, ref := range []*ImageRef{r.Product, r.Model, r.Scene} {
		if ref != nil {
			count++
		}
	}
	return count
}

// Request is one generation batch, immutable for the life of a call.
type Request struct {
	Prompt              string
	References          References
	AspectRatio         string
	Count               int
	Quality             string
	Polish              bool
	ModelTextContext    string
	StylePresetKeywords []string
	Brand               *prompt.BrandContext
	UserNegatives       []string
	CameraStyle         prompt.CameraStyle
	UserId              int
	QueueInternal       bool
	ProductId           string
	ModelRefId          string
	SceneId             string
}

// BatchResult is the caller-visible outcome of all attempts. Blocked with a
// non-empty Images slice means the block landed after at least one success.
type BatchResult struct {
	Images      []string
	Blocked     bool
	BlockReason string
	Errors      []string
	Mode        prompt.Mode
}

type ContentKind string

const (
	ContentText  ContentKind = "text"
	ContentImage ContentKind = "image"
)

// ContentItem is one element of the interleaved multimodal payload.
type ContentItem struct {
	Kind  ContentKind
	Text  string
	Image *ImageRef
}

// BackendOutput is a single completed backend call: either an image or a
// content-policy block. Transport and missing-output problems come back as
// errors instead.
type BackendOutput struct {
	ImageB64    string
	MimeType    string
	Blocked     bool
	BlockReason string
}

// Backend is the multimodal image-generation call.
type Backend interface {
	Generate(ctx context.Context, model string, payload []ContentItem, aspectRatio string) (*BackendOutput, error)
}

// Persister stores one accepted image and returns a fetchable URL. Recording
// bookkeeping rows is the persister's business; its failure must never fail
// the attempt.
type Persister interface {
	Persist(ctx context.Context, out *BackendOutput, req *Request) (string, error)
}

// FatalError aborts the whole batch: rate-limit and exhausted-credit
// responses are caller-level conditions, not per-attempt ones.
type FatalError struct {
	StatusCode int
	Message    string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("backend returned fatal status %d: %s", e.StatusCode, e.Message)
}
