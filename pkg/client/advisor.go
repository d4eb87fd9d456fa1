package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"enviro-dashboard/internal/models"
	"go.uber.org/zap"
)

// AdvisorClient talks to the remote analysis endpoint. The endpoint may
// answer with a plain suggestion array or with a chat-completion envelope
// whose message content embeds a (possibly code-fenced) JSON array; both
// shapes are handled by a dedicated decoder, selected by sniffing the
// payload's first token.
type AdvisorClient struct {
	*BaseClient
	endpointURL string
	apiKey      string
	logger      *zap.Logger
}

type analysisRequest struct {
	Stations []models.Station `json:"stations"`
}

// chatEnvelope mirrors the chat-completion response shape.
type chatEnvelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewAdvisorClient(endpointURL, apiKey string, config ClientConfig, logger *zap.Logger) *AdvisorClient {
	return &AdvisorClient{
		BaseClient:  NewBaseClient("advisor", config, logger),
		endpointURL: endpointURL,
		apiKey:      apiKey,
		logger:      logger,
	}
}

// FetchSuggestions sends the full station list for analysis and returns the
// decoded suggestion records. Any transport, status, or decoding problem is
// returned as an error; the caller decides what to do about it.
func (c *AdvisorClient) FetchSuggestions(ctx context.Context, stations []models.Station) ([]models.Suggestion, error) {
	if c.endpointURL == "" {
		return nil, fmt.Errorf("no analysis endpoint configured")
	}

	body, err := json.Marshal(analysisRequest{Stations: stations})
	if err != nil {
		return nil, fmt.Errorf("encoding analysis request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	payload, err := c.PostWithRetry(ctx, c.endpointURL, body, headers)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	suggestions, err := DecodeSuggestionPayload(payload)
	if err != nil {
		c.logger.Warn("Unusable analysis payload",
			zap.Int("payload_size", len(payload)),
			zap.Error(err))
		return nil, err
	}

	return suggestions, nil
}

// DecodeSuggestionPayload picks the decoder matching the payload shape.
func DecodeSuggestionPayload(payload []byte) ([]models.Suggestion, error) {
	trimmed := strings.TrimSpace(string(payload))
	switch {
	case strings.HasPrefix(trimmed, "["):
		return decodeDirectArray(payload)
	case strings.HasPrefix(trimmed, "{"):
		return decodeChatEnvelope(payload)
	default:
		return nil, fmt.Errorf("unrecognized analysis payload shape")
	}
}

// decodeDirectArray handles payloads that are directly a suggestion array.
func decodeDirectArray(payload []byte) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestion array: %w", err)
	}
	return suggestions, nil
}

// decodeChatEnvelope handles chat-completion envelopes: the nested message
// content is expected to be a JSON suggestion array, possibly wrapped in
// markdown code-fence markers.
func decodeChatEnvelope(payload []byte) ([]models.Suggestion, error) {
	var envelope chatEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decoding chat envelope: %w", err)
	}

	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("chat envelope has no choices")
	}

	content := stripCodeFences(envelope.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("chat envelope has empty content")
	}

	var suggestions []models.Suggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("decoding embedded suggestion array: %w", err)
	}
	return suggestions, nil
}

// stripCodeFences removes leading/trailing markdown code-fence markers such
// as ```json ... ``` around the embedded JSON.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	// Drop a language tag like "json" on the opening fence.
	if idx := strings.Index(content, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(content[:idx])
		if len(firstLine) <= 10 && !strings.ContainsAny(firstLine, "[{") {
			content = content[idx+1:]
		}
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
