package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/brandlens/photogen/common/client"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
	"github.com/brandlens/photogen/generate"
)

// blockFinishReasons matches the finish reasons the API uses when it withholds
// image output for policy reasons. IMAGE_SAFETY and PROHIBITED_CONTENT are the
// common ones for image models.
var blockFinishReasons = regexp.MustCompile(`(?i)safety|prohibited|recitation|block`)

// refusalPhrases covers the case where the model answers with a polite text
// refusal instead of a structured block signal.
var refusalPhrases = []string{
	"i can't", "i cannot", "i'm unable", "i am unable",
	"unable to generate", "cannot generate", "can't create", "cannot create",
	"against my", "not able to",
}

type Client struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		APIKey:     config.GeminiAPIKey,
		BaseURL:    config.GeminiBaseURL,
		APIVersion: config.GeminiAPIVersion,
		HTTPClient: client.HTTPClient,
	}
}

// Generate issues one generateContent call and folds the response into a
// BackendOutput. HTTP 429 and 402 abort the whole batch via FatalError since
// retrying them per attempt only burns more quota.
func (c *Client) Generate(ctx context.Context, model string, payload []generate.ContentItem, aspectRatio string) (*generate.BackendOutput, error) {
	reqBody := c.buildRequest(payload, aspectRatio)
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	fullURL := fmt.Sprintf("%s/%s/models/%s:generateContent", strings.TrimSuffix(c.BaseURL, "/"), c.APIVersion, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		message := upstreamErrorMessage(responseBody)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
			return nil, &generate.FatalError{StatusCode: resp.StatusCode, Message: message}
		}
		logger.Errorf(ctx, "upstream status %d: %s", resp.StatusCode, message)
		return nil, errors.Errorf("upstream status %d: %s", resp.StatusCode, message)
	}

	var geminiResponse ChatResponse
	if err = json.Unmarshal(responseBody, &geminiResponse); err != nil {
		return nil, errors.Wrap(err, "unmarshal response")
	}
	return foldResponse(&geminiResponse)
}

func (c *Client) buildRequest(payload []generate.ContentItem, aspectRatio string) *ChatRequest {
	parts := make([]Part, 0, len(payload))
	for _, item := range payload {
		switch item.Kind {
		case generate.ContentText:
			parts = append(parts, Part{Text: item.Text})
		case generate.ContentImage:
			parts = append(parts, Part{InlineData: &InlineData{
				MimeType: item.Image.MimeType,
				Data:     item.Image.Data,
			}})
		}
	}
	geminiRequest := &ChatRequest{
		Contents: []ChatContent{{Role: "user", Parts: parts}},
		GenerationConfig: ChatGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}
	if aspectRatio != "" {
		geminiRequest.GenerationConfig.ImageConfig = &ImageConfig{AspectRatio: aspectRatio}
	}
	return geminiRequest
}

// foldResponse maps the upstream 200 into exactly one of: image output, block,
// or a transient error. A 200 with neither image nor block signal is treated
// as transient so the retry loop gets another shot at it.
func foldResponse(resp *ChatResponse) (*generate.BackendOutput, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return &generate.BackendOutput{
			Blocked:     true,
			BlockReason: blockReasonText(resp.PromptFeedback.BlockReason, ""),
		}, nil
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("empty candidates in upstream response")
	}

	candidate := resp.Candidates[0]
	var refusalText string
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &generate.BackendOutput{ImageB64: part.InlineData.Data, MimeType: mimeType}, nil
		}
		if part.Text != "" {
			refusalText = part.Text
		}
	}

	if blockFinishReasons.MatchString(candidate.FinishReason) {
		return &generate.BackendOutput{
			Blocked:     true,
			BlockReason: blockReasonText(candidate.FinishReason, refusalText),
		}, nil
	}
	if refusalText != "" && looksLikeRefusal(refusalText) {
		return &generate.BackendOutput{
			Blocked:     true,
			BlockReason: blockReasonText("", refusalText),
		}, nil
	}
	return nil, errors.Errorf("no image in upstream response, finishReason=%s", candidate.FinishReason)
}

func looksLikeRefusal(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// blockReasonText prefers the model's own short explanation over the enum
// value. Long texts get replaced wholesale, the client only needs a headline.
func blockReasonText(reason string, text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && len(trimmed) <= 300 {
		return trimmed
	}
	if reason != "" {
		return fmt.Sprintf("content blocked by upstream policy (%s)", reason)
	}
	return "content blocked by upstream policy"
}

func upstreamErrorMessage(body []byte) string {
	var errResp GeminiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	message := strings.TrimSpace(string(body))
	if len(message) > 300 {
		message = message[:300]
	}
	return message
}
