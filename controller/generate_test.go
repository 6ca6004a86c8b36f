package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/prompt"
)

func TestAspectRatioValidation(t *testing.T) {
	for _, ratio := range []string{"1:1", "3:4", "4:5", "9:16", "16:9"} {
		req := GenerationRequest{Prompt: "coffee cup", AspectRatio: ratio}
		assert.NoError(t, validate.Struct(&req), ratio)
	}
	for _, ratio := range []string{"4:3", "2:3", "21:9", "16-9", "square"} {
		req := GenerationRequest{Prompt: "coffee cup", AspectRatio: ratio}
		assert.Error(t, validate.Struct(&req), ratio)
	}
}

func TestAspectRatioOptional(t *testing.T) {
	req := GenerationRequest{Prompt: "coffee cup"}
	assert.NoError(t, validate.Struct(&req))
}

func TestApplyDefaults(t *testing.T) {
	req := GenerationRequest{}
	applyDefaults(&req, false)
	assert.Equal(t, 1, req.Count)
	assert.Equal(t, "standard", req.Quality)
	assert.Equal(t, string(prompt.CameraStylePro), req.CameraStyle)
	assert.Equal(t, "1:1", req.AspectRatio)

	capped := GenerationRequest{Count: 99}
	applyDefaults(&capped, false)
	assert.Equal(t, config.MaxImagesPerRequest, capped.Count)

	queued := GenerationRequest{Count: 3}
	applyDefaults(&queued, true)
	assert.Equal(t, 1, queued.Count)
}
