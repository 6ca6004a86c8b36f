package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/brandlens/photogen/backend/gemini"
	"github.com/brandlens/photogen/common"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/ctxkey"
	"github.com/brandlens/photogen/common/helper"
	"github.com/brandlens/photogen/common/logger"
	"github.com/brandlens/photogen/generate"
	"github.com/brandlens/photogen/model"
	"github.com/brandlens/photogen/prompt"
	"github.com/brandlens/photogen/storage"
)

var (
	orchestrator *generate.Orchestrator
	validate     = validator.New()
)

// InitPipeline wires the generation pipeline. Called once from main after
// config and clients are ready.
func InitPipeline() {
	orchestrator = generate.NewOrchestrator(gemini.NewClient(), storage.NewPersister())
}

type ReferenceRequest struct {
	Url      string `json:"url" validate:"omitempty,url"`
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
	Id       string `json:"id" validate:"omitempty,max=64"`
}

type ReferencesRequest struct {
	Product *ReferenceRequest `json:"product"`
	Model   *ReferenceRequest `json:"model"`
	Scene   *ReferenceRequest `json:"scene"`
}

type BrandContextRequest struct {
	Tone           string   `json:"tone"`
	ColorFeel      string   `json:"colorFeel"`
	DoNotRules     []string `json:"doNotRules" validate:"max=32"`
	BrandKeywords  []string `json:"brandKeywords" validate:"max=32"`
	ColorPalette   []string `json:"colorPalette" validate:"max=16"`
	TargetAudience string   `json:"targetAudience"`
}

type GenerationRequest struct {
	Prompt              string               `json:"prompt" validate:"max=4000"`
	References          ReferencesRequest    `json:"references"`
	AspectRatio         string               `json:"aspectRatio" validate:"omitempty,oneof=1:1 3:4 4:5 9:16 16:9"`
	Count               int                  `json:"count" validate:"omitempty,min=1"`
	Quality             string               `json:"quality" validate:"omitempty,oneof=standard high"`
	Polish              *bool                `json:"polish"`
	ModelTextContext    string               `json:"modelTextContext" validate:"max=500"`
	StylePresetKeywords []string             `json:"stylePresetKeywords" validate:"max=32"`
	Brand               *BrandContextRequest `json:"brandContext"`
	UserNegatives       []string             `json:"userNegatives" validate:"max=64"`
	CameraStyle         string               `json:"cameraStyle" validate:"omitempty,oneof=pro natural"`
}

type GenerationResponse struct {
	Images         []string `json:"images"`
	GeneratedCount int      `json:"generatedCount"`
	RequestedCount int      `json:"requestedCount"`
	PartialSuccess bool     `json:"partialSuccess"`
	ContentBlocked bool     `json:"contentBlocked,omitempty"`
	BlockReason    string   `json:"blockReason,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

// GenerateImages is the POST /v1/photos/generations handler.
func GenerateImages(c *gin.Context) {
	ctx := c.Request.Context()
	var req GenerationRequest
	if err := common.UnmarshalBodyReusable(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	queueInternal := c.GetBool(ctxkey.QueueInternal)
	applyDefaults(&req, queueInternal)

	refInputs := referenceInputs(req.References)
	if strings.TrimSpace(req.Prompt) == "" &&
		refInputs.Product == nil && refInputs.Model == nil && refInputs.Scene == nil {
		respondError(c, http.StatusBadRequest, "prompt is required when no reference image is provided")
		return
	}

	refs, err := generate.ResolveReferences(ctx, refInputs)
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to resolve reference image: "+err.Error())
		return
	}

	rawPrompt := strings.TrimSpace(req.Prompt)
	if rawPrompt == "" {
		rawPrompt = prompt.FallbackPrompt
	}

	genReq := &generate.Request{
		Prompt:              rawPrompt,
		References:          refs,
		AspectRatio:         req.AspectRatio,
		Count:               req.Count,
		Quality:             req.Quality,
		Polish:              req.Polish == nil || *req.Polish,
		ModelTextContext:    req.ModelTextContext,
		StylePresetKeywords: req.StylePresetKeywords,
		Brand:               brandContext(req.Brand),
		UserNegatives:       req.UserNegatives,
		CameraStyle:         prompt.CameraStyle(req.CameraStyle),
		UserId:              c.GetInt(ctxkey.Id),
		QueueInternal:       queueInternal,
		ProductId:           referenceId(req.References.Product),
		ModelRefId:          referenceId(req.References.Model),
		SceneId:             referenceId(req.References.Scene),
	}

	result, err := orchestrator.Run(ctx, genReq)
	if err != nil {
		var fatal *generate.FatalError
		if errors.As(err, &fatal) {
			respondError(c, fatal.StatusCode, fatal.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondResult(c, genReq, result)
}

func applyDefaults(req *GenerationRequest, queueInternal bool) {
	if req.Count < 1 {
		req.Count = 1
	}
	if req.Count > config.MaxImagesPerRequest {
		req.Count = config.MaxImagesPerRequest
	}
	if queueInternal {
		// the scheduler fans batches out as separate relayed requests
		req.Count = 1
	}
	if req.Quality == "" {
		req.Quality = "standard"
	}
	if req.CameraStyle == "" {
		req.CameraStyle = string(prompt.CameraStylePro)
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "1:1"
	}
}

func referenceInputs(refs ReferencesRequest) generate.ReferenceInputs {
	convert := func(r *ReferenceRequest) *generate.ReferenceInput {
		if r == nil {
			return nil
		}
		return &generate.ReferenceInput{Url: r.Url, Data: r.Data, MimeType: r.MimeType, Id: r.Id}
	}
	return generate.ReferenceInputs{
		Product: convert(refs.Product),
		Model:   convert(refs.Model),
		Scene:   convert(refs.Scene),
	}
}

func referenceId(r *ReferenceRequest) string {
	if r == nil {
		return ""
	}
	return r.Id
}

func brandContext(b *BrandContextRequest) *prompt.BrandContext {
	if b == nil {
		return nil
	}
	return &prompt.BrandContext{
		Tone:           b.Tone,
		ColorFeel:      b.ColorFeel,
		DoNotRules:     b.DoNotRules,
		BrandKeywords:  b.BrandKeywords,
		ColorPalette:   b.ColorPalette,
		TargetAudience: b.TargetAudience,
	}
}

func respondResult(c *gin.Context, req *generate.Request, result *generate.BatchResult) {
	generated := len(result.Images)
	if generated == 0 {
		if result.Blocked {
			c.JSON(http.StatusOK, GenerationResponse{
				Images:         []string{},
				RequestedCount: req.Count,
				ContentBlocked: true,
				BlockReason:    result.BlockReason,
			})
			return
		}
		respondErrorWithDetails(c, http.StatusBadGateway, "image generation failed on every attempt", result.Errors)
		return
	}
	c.JSON(http.StatusOK, GenerationResponse{
		Images:         result.Images,
		GeneratedCount: generated,
		RequestedCount: req.Count,
		PartialSuccess: generated < req.Count,
		ContentBlocked: result.Blocked,
		BlockReason:    result.BlockReason,
		Errors:         result.Errors,
	})
}

// ListGenerations is the GET /v1/photos/generations handler. Queue-relayed
// generations are recorded server-side, this is how their owners page through
// them.
func ListGenerations(c *gin.Context) {
	startIdx, _ := strconv.Atoi(c.Query("start_idx"))
	num, _ := strconv.Atoi(c.Query("num"))
	if num <= 0 || num > 100 {
		num = 20
	}
	generations, err := model.GetUserGenerations(c.GetInt(ctxkey.Id), startIdx, num)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": generations,
	})
}

func respondError(c *gin.Context, statusCode int, message string) {
	logger.Error(c.Request.Context(), message)
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"message": helper.MessageWithRequestId(message, helper.GetRequestID(c)),
			"type":    "photogen_api_error",
		},
	})
}

func respondErrorWithDetails(c *gin.Context, statusCode int, message string, details []string) {
	logger.Error(c.Request.Context(), message)
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"message": helper.MessageWithRequestId(message, helper.GetRequestID(c)),
			"type":    "photogen_api_error",
			"details": details,
		},
	})
}
