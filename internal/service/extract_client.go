package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// BookingExtractor turns a pasted booking-confirmation image into proposed
// form fields. Implementations may fail (network, quota, unreadable image);
// callers surface that as an error result, never a crash.
type BookingExtractor interface {
	ExtractBooking(ctx context.Context, imageBase64, mimeType string) (BookingForm, error)
}

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

const extractPrompt = `Read this hotel booking confirmation image and answer with only a JSON object,
no markdown, using exactly these keys (empty string when a value is not visible):
"guest_name", "room_name", "check_in", "check_out", "booked_on",
"total_payment", "commission", "booking_id", "status", "collector".
Dates must be formatted YYYY-MM-DD. Amounts are plain numbers without currency units.`

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewGeminiClient(baseURL, apiKey, model string, logger *zap.Logger) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	// vision calls are slow, hence the long timeout
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(45*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", apiKey)
	return &GeminiClient{httpClient: client, model: model, logger: logger}
}

// ExtractBooking implements BookingExtractor.
func (c *GeminiClient) ExtractBooking(ctx context.Context, imageBase64, mimeType string) (BookingForm, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	request := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: extractPrompt},
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageBase64}},
			},
		}},
	}

	c.logger.Info("calling Gemini API for booking extraction",
		zap.String("model", c.model),
		zap.String("mime_type", mimeType),
	)

	var response geminiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		SetError(&response).
		// the API always answers JSON; decode it even without the header
		ForceContentType("application/json").
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return BookingForm{}, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if response.Error != nil {
			msg = response.Error.Message
		}
		return BookingForm{}, fmt.Errorf("Gemini API error: %s", msg)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return BookingForm{}, fmt.Errorf("Gemini API returned no candidates")
	}

	text := response.Candidates[0].Content.Parts[0].Text
	form, err := parseExtractedForm(text)
	if err != nil {
		c.logger.Warn("unparseable extraction output", zap.String("text", text), zap.Error(err))
		return BookingForm{}, err
	}
	return form, nil
}

// parseExtractedForm decodes the model's JSON answer, tolerating the code
// fences models wrap JSON in despite instructions.
func parseExtractedForm(text string) (BookingForm, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var form BookingForm
	if err := json.Unmarshal([]byte(text), &form); err != nil {
		return BookingForm{}, fmt.Errorf("failed to parse extracted booking: %w", err)
	}
	return form, nil
}
