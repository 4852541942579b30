package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"expense-tracker/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrExtractionService covers upstream failures of the vision service:
// network errors, timeouts and responses without usable text.
var ErrExtractionService = errors.New("bill extraction service failed")

// billExtractionPrompt enumerates the exact fields the model must return.
// The parser depends on these key names verbatim.
const billExtractionPrompt = `Extract the following details from the bill image:
- Vendor Name
- Type of the Expense
- Category of the Expense
- Bill Date
- Total Amount
Return the data in valid JSON format as an array of objects using exactly those field names.`

// BillExtractor sends a bill image to a vision model and returns its raw
// text response. Extracted as an interface so the ingestion flow can be
// tested without a live model.
type BillExtractor interface {
	ExtractBill(ctx context.Context, imagePath string) (string, error)
}

type ExtractionService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewExtractionService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*ExtractionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &ExtractionService{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// ExtractBill reads the bill image, sends it inline with the extraction
// instruction and returns the model's raw text response. The whole call is
// bounded by the configured timeout; one retry is attempted on transport
// failure since re-extracting the same image is pure.
func (s *ExtractionService) ExtractBill(ctx context.Context, imagePath string) (string, error) {
	fileData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: read image: %v", ErrExtractionService, err)
	}

	imageData, mimeType, err := prepareBillImage(fileData, imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionService, err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     imageData,
					},
				},
				{Text: billExtractionPrompt},
			},
		},
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1),
		TopP:             genai.Ptr[float32](0.95),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var resp *genai.GenerateContentResponse
	for attempt := 0; ; attempt++ {
		resp, err = s.client.Models.GenerateContent(ctx, s.model, contents, genConfig)
		if err == nil {
			break
		}
		if attempt >= 1 || ctx.Err() != nil {
			return "", fmt.Errorf("%w: generate content: %v", ErrExtractionService, err)
		}

		s.logger.Warn("Bill extraction call failed, retrying",
			zap.String("image_path", imagePath),
			zap.Error(err),
		)
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrExtractionService, ctx.Err())
		}
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrExtractionService)
	}

	s.logger.Info("Bill extraction completed",
		zap.String("image_path", imagePath),
		zap.Int("response_length", len(text)),
	)

	return text, nil
}
