package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/photogen/generate"
)

func TestFoldResponseImage(t *testing.T) {
	resp := &ChatResponse{Candidates: []ChatCandidate{{
		Content: ChatContent{Parts: []Part{
			{Text: "Here is your image."},
			{InlineData: &InlineData{MimeType: "image/png", Data: "aW1n"}},
		}},
		FinishReason: "STOP",
	}}}
	out, err := foldResponse(resp)
	require.NoError(t, err)
	assert.False(t, out.Blocked)
	assert.Equal(t, "aW1n", out.ImageB64)
	assert.Equal(t, "image/png", out.MimeType)
}

func TestFoldResponseSafetyFinishReason(t *testing.T) {
	for _, reason := range []string{"IMAGE_SAFETY", "SAFETY", "PROHIBITED_CONTENT", "RECITATION"} {
		resp := &ChatResponse{Candidates: []ChatCandidate{{FinishReason: reason}}}
		out, err := foldResponse(resp)
		require.NoError(t, err, reason)
		assert.True(t, out.Blocked, reason)
		assert.Contains(t, out.BlockReason, reason)
	}
}

func TestFoldResponsePromptFeedbackBlock(t *testing.T) {
	resp := &ChatResponse{PromptFeedback: &ChatPromptFeedback{BlockReason: "PROHIBITED_CONTENT"}}
	out, err := foldResponse(resp)
	require.NoError(t, err)
	assert.True(t, out.Blocked)
}

func TestFoldResponseTextualRefusal(t *testing.T) {
	resp := &ChatResponse{Candidates: []ChatCandidate{{
		Content:      ChatContent{Parts: []Part{{Text: "I cannot create images of that subject."}}},
		FinishReason: "STOP",
	}}}
	out, err := foldResponse(resp)
	require.NoError(t, err)
	assert.True(t, out.Blocked)
	assert.Equal(t, "I cannot create images of that subject.", out.BlockReason)
}

func TestFoldResponseRefusalTextTooLongGetsGenericReason(t *testing.T) {
	long := strings.Repeat("no ", 200)
	resp := &ChatResponse{Candidates: []ChatCandidate{{
		Content:      ChatContent{Parts: []Part{{Text: "I cannot create that. " + long}}},
		FinishReason: "STOP",
	}}}
	out, err := foldResponse(resp)
	require.NoError(t, err)
	assert.True(t, out.Blocked)
	assert.Equal(t, "content blocked by upstream policy", out.BlockReason)
}

func TestFoldResponseNoImageNoBlockIsTransient(t *testing.T) {
	resp := &ChatResponse{Candidates: []ChatCandidate{{
		Content:      ChatContent{Parts: []Part{{Text: "Sure, generating now."}}},
		FinishReason: "STOP",
	}}}
	_, err := foldResponse(resp)
	require.Error(t, err)
}

func TestFoldResponseEmptyCandidates(t *testing.T) {
	_, err := foldResponse(&ChatResponse{})
	require.Error(t, err)
}

func TestBuildRequestAspectRatio(t *testing.T) {
	c := &Client{}
	payload := []generate.ContentItem{
		{Kind: generate.ContentText, Text: "instruction"},
		{Kind: generate.ContentImage, Image: &generate.ImageRef{MimeType: "image/jpeg", Data: "cmVm"}},
	}
	req := c.buildRequest(payload, "9:16")
	require.Len(t, req.Contents, 1)
	require.Len(t, req.Contents[0].Parts, 2)
	assert.Equal(t, "instruction", req.Contents[0].Parts[0].Text)
	assert.Equal(t, "cmVm", req.Contents[0].Parts[1].InlineData.Data)
	require.NotNil(t, req.GenerationConfig.ImageConfig)
	assert.Equal(t, "9:16", req.GenerationConfig.ImageConfig.AspectRatio)
	assert.Equal(t, []string{"TEXT", "IMAGE"}, req.GenerationConfig.ResponseModalities)

	noRatio := c.buildRequest(payload, "")
	assert.Nil(t, noRatio.GenerationConfig.ImageConfig)
}
