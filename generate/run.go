package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
	"github.com/brandlens/photogen/prompt"
)

const (
	// tries per attempt: 1 call + 2 retries; queue-relayed calls get less
	attemptTries      = 3
	queueAttemptTries = 2

	defaultRetryPause = 500 * time.Millisecond
)

const batchConsistencyNote = "\n\nBatch consistency: keep palette, lighting, and mood identical across every image in this batch; vary only composition."

type Orchestrator struct {
	Backend    Backend
	Persister  Persister
	RetryPause time.Duration
	// AttemptRate paces attempts within a single batch so it does not burst
	// the backend. Each Run gets its own limiter, batches never contend with
	// each other.
	AttemptRate rate.Limit
}

func NewOrchestrator(backend Backend, persister Persister) *Orchestrator {
	return &Orchestrator{
		Backend:     backend,
		Persister:   persister,
		RetryPause:  defaultRetryPause,
		AttemptRate: rate.Every(time.Second),
	}
}

// Run produces up to req.Count independent images from one compiled prompt.
// Attempts execute sequentially: a content-policy block on attempt k must
// prevent attempts k+1..N from ever being issued, and sequential calls keep
// rate-limit pressure on the backend predictable. A returned error is always
// a *FatalError; everything else lands inside the BatchResult.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*BatchResult, error) {
	compiled := prompt.Compile(&prompt.Request{
		Prompt:              req.Prompt,
		HasProduct:          req.References.Product != nil,
		HasModel:            req.References.Model != nil,
		HasScene:            req.References.Scene != nil,
		ModelTextContext:    req.ModelTextContext,
		StylePresetKeywords: req.StylePresetKeywords,
		Brand:               req.Brand,
		UserNegatives:       req.UserNegatives,
		CameraStyle:         req.CameraStyle,
		Polish:              req.Polish,
	})
	model := SelectModel(req.References.Model != nil, req.QueueInternal, req.Quality, req.References.Count())
	logger.Infof(ctx, "generation batch: mode=%s model=%s count=%d", compiled.Mode, model, req.Count)

	tries := attemptTries
	if req.QueueInternal {
		tries = queueAttemptTries
	}

	result := &BatchResult{Mode: compiled.Mode}
	limiter := rate.NewLimiter(o.AttemptRate, 1)
	for attempt := 0; attempt < req.Count; attempt++ {
		if attempt > 0 {
			if err := limiter.Wait(ctx); err != nil {
				result.Errors = append(result.Errors, err.Error())
				break
			}
		}
		instruction := compiled.Text + variationDirective(attempt, req.Count)
		payload := AssemblePayload(instruction, req.References)

		out, err := o.generateWithRetry(ctx, model, payload, req.AspectRatio, tries)
		if err != nil {
			var fatal *FatalError
			if errors.As(err, &fatal) {
				return nil, err
			}
			logger.Errorf(ctx, "attempt %d failed: %s", attempt+1, err.Error())
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if out.Blocked {
			// a block is a batch-level signal: retrying the same payload is
			// pointless and the remaining attempts would hit the same wall
			logger.Warnf(ctx, "attempt %d blocked by content policy: %s", attempt+1, out.BlockReason)
			result.Blocked = true
			result.BlockReason = out.BlockReason
			break
		}
		result.Images = append(result.Images, o.persist(ctx, out, req))
	}
	return result, nil
}

func (o *Orchestrator) generateWithRetry(ctx context.Context, model string, payload []ContentItem, aspectRatio string, tries int) (*BackendOutput, error) {
	var lastErr error
	for try := 0; try < tries; try++ {
		if try > 0 {
			logger.Infof(ctx, "retrying backend call, try %d/%d", try+1, tries)
			time.Sleep(o.RetryPause)
		}
		callCtx, cancel := context.WithTimeout(ctx, time.Duration(config.BackendTimeout)*time.Second)
		out, err := o.Backend.Generate(callCtx, model, payload, aspectRatio)
		cancel()
		if err == nil {
			return out, nil
		}
		var fatal *FatalError
		if errors.As(err, &fatal) {
			return nil, err
		}
		lastErr = err
	}
	return nil, errors.Wrapf(lastErr, "backend call failed after %d tries", tries)
}

// persist hands the image to the persistence adapter. Storage is best-effort
// bookkeeping: the image was already generated and paid for, so on failure
// the caller still gets it, inline.
func (o *Orchestrator) persist(ctx context.Context, out *BackendOutput, req *Request) string {
	url, err := o.Persister.Persist(ctx, out, req)
	if err != nil {
		logger.Errorf(ctx, "persisting image failed, returning inline data: %s", err.Error())
		return fmt.Sprintf("data:%s;base64,%s", out.MimeType, out.ImageB64)
	}
	return url
}

// variationDirective is the only per-attempt difference in the instruction
// text. Attempt 0 gets the batch-consistency note when more images follow;
// later attempts ask for a different composition over the same subject.
func variationDirective(attempt int, total int) string {
	if attempt == 0 {
		if total > 1 {
			return batchConsistencyNote
		}
		return ""
	}
	return fmt.Sprintf("\n\nVariation %d: different composition and camera angle, same subject, style, and lighting.", attempt)
}
