package out

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"pmhub/internal/modules/extract/domain"
	extractout "pmhub/internal/modules/extract/port/out"
	apperrors "pmhub/internal/platform/errors"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const extractPrompt = `You read screenshots and photos of task lists, boards and notes.
Return a JSON object {"tasks": [...]} where every task has:
"title" (string), "start_date" (YYYY-MM-DD or ""), "end_date" (YYYY-MM-DD),
"priority" ("low", "medium" or "high") and "confidence" (0..1).
Only include tasks you can read in the image. Use "" for unknown start dates.`

type OpenAIExtractor struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

type extractResponse struct {
	Tasks []struct {
		Title      string  `json:"title"`
		StartDate  string  `json:"start_date"`
		EndDate    string  `json:"end_date"`
		Priority   string  `json:"priority"`
		Confidence float64 `json:"confidence"`
	} `json:"tasks"`
}

// NewOpenAIExtractor returns apperrors.ErrExtractorDisabled when no API key
// is configured.
func NewOpenAIExtractor(apiKey, baseURL, model string, logger zerolog.Logger) (extractout.Extractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.ErrExtractorDisabled
	}
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		log:    logger,
	}, nil
}

func (e *OpenAIExtractor) Extract(ctx context.Context, image domain.Image) ([]domain.Candidate, error) {
	dataURL := "data:" + image.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: "Extract the tasks from " + image.Name + "."},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	e.log.Debug().Str("model", e.model).Str("image", image.Name).Int("bytes", len(image.Data)).Msg("openai request")
	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	e.log.Debug().
		Str("finishReason", string(resp.Choices[0].FinishReason)).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("openai response")
	return decodeCandidates(resp.Choices[0].Message.Content)
}

func decodeCandidates(content string) ([]domain.Candidate, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var parsed extractResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return nil, fmt.Errorf("decode extractor response: %w", err)
	}
	out := make([]domain.Candidate, 0, len(parsed.Tasks))
	for _, task := range parsed.Tasks {
		out = append(out, domain.Candidate{
			Title:      task.Title,
			StartDate:  task.StartDate,
			EndDate:    task.EndDate,
			Priority:   task.Priority,
			Confidence: task.Confidence,
		})
	}
	return out, nil
}
