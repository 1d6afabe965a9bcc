package respond

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// systemInstruction steers Gemini to answer inside the structured response
// contract. The data field may arrive as a nested JSON string; parsing
// unwraps it.
const systemInstruction = `You are the Maersk AI Data Analyst Copilot. You are a formal and professional AI assistant.

Your primary purpose is to help users explore and understand the Olist Brazilian e-commerce dataset by providing data visualizations and insights. However, you must also be able to handle general conversational queries.

Response guidelines:

1. ALWAYS respond with a single JSON object. Do not include any text outside of the JSON object. Do not use markdown backticks. There are NO exceptions.
2. The JSON object MUST conform to this schema:
   {
     "visualization": "kpi" | "chart" | "map" | "text" | "error",
     "data": "A JSON string. The structure of the parsed string depends on the visualization type.",
     "summary": "A concise, insightful summary of the findings, written in natural language.",
     "followUpSuggestions": ["A relevant follow-up question", "Another interesting question"]
   }

For data analysis queries, choose the best visualization (kpi, chart, map). For general or conversational queries (greetings, questions about your identity or about Maersk), use the text visualization with data {"insights": ["Your full, formal response goes here."]}. If you cannot answer, use the error visualization.

Data schema for the data field (after parsing from string):
- kpi: [{"title": string, "value": string, "change"?: number}]
- chart: {"type": "bar" | "line", "title": string, "labels": string[], "values": number[]}
- map: {"title": string, "highlightedStates": {[stateCode: string]: number}}
- text: {"insights": string[]}
- error: {"message": string}`

// GeminiResponder answers unmatched questions via the Gemini API.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

func NewGeminiResponder(ctx context.Context, model, apiKeyEnv, directAPIKey string) (*GeminiResponder, error) {
	apiKey := directAPIKey
	if apiKey == "" && apiKeyEnv != "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in config or environment variable %s", apiKeyEnv)
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiResponder{client: client, model: model}, nil
}

// buildContents maps the conversation onto Gemini turns, with the new
// question last. Assistant turns become model turns.
func buildContents(question string, history []types.ConversationTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == types.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return append(contents, genai.NewContentFromText(question, genai.RoleUser))
}

func (g *GeminiResponder) Respond(ctx context.Context, question string, history []types.ConversationTurn) (*types.StructuredResponse, error) {
	contents := buildContents(question, history)

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return ParseModelOutput(result.Text()), nil
}

func (g *GeminiResponder) Model() string {
	return g.model
}

var fenceRe = regexp.MustCompile("^```(?:json)?\\s*|```\\s*$")

// ParseModelOutput turns raw model text into a structured response. Text that
// isn't JSON at all becomes a text-kind answer; JSON with a payload that
// doesn't fit its declared kind becomes an error-kind answer. It never fails.
func ParseModelOutput(raw string) *types.StructuredResponse {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(strings.TrimSpace(raw), ""))

	resp, err := types.DecodeResponse([]byte(cleaned))
	if err == nil {
		return resp
	}

	if !json.Valid([]byte(cleaned)) {
		// The model answered in prose despite the instructions.
		return &types.StructuredResponse{
			Visualization: types.VisualizationText,
			Data:          &types.TextData{Insights: []string{cleaned}},
			Summary:       cleaned,
			FollowUpSuggestions: []string{
				"What can you do?",
				"What is this dataset about?",
			},
		}
	}

	return types.ErrorResponse(
		fmt.Sprintf("AI returned an invalid data format: %v", err),
		"An error occurred while processing the AI's response.",
	)
}

// Compile-time interface check
var _ types.Responder = (*GeminiResponder)(nil)
