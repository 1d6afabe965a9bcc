package respond

import (
	"context"
	"strings"
	"unicode"

	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// MockResponder returns canned structured answers so the copilot runs
// offline. Used by the mock provider and in tests.
type MockResponder struct {
	model string
}

func NewMockResponder(model string) *MockResponder {
	return &MockResponder{model: model}
}

func (m *MockResponder) Respond(ctx context.Context, question string, history []types.ConversationTurn) (*types.StructuredResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "maersk"):
		return m.text(
			"Maersk is a Danish integrated logistics company and one of the largest container shipping operators in the world.",
			"Maersk is a global integrated logistics company headquartered in Copenhagen.",
		), nil
	case isGreeting(q):
		return m.text(
			"Hello. I am the Maersk AI Data Analyst Copilot. Ask me about orders, sellers, customers, revenue, or product categories in the Olist dataset.",
			"Hello, how can I help you explore the dataset?",
		), nil
	case strings.Contains(q, "dataset"):
		return m.text(
			"This copilot works on a sample of the Olist Brazilian e-commerce public dataset: orders, order items, customers, sellers, products and category translations.",
			"The dataset is a sample of the Olist Brazilian e-commerce public data.",
		), nil
	}

	return m.text(
		"I don't have a specific analysis for that question, but I can look up order status, sellers, customers, revenue by category, top categories, distribution maps, revenue trends and AOV.",
		"I couldn't map that to a known analysis, but I can help with order, seller, customer and revenue questions.",
	), nil
}

// isGreeting matches greeting words only as whole words, so "this" or
// "something" never reads as "hi".
func isGreeting(q string) bool {
	words := strings.FieldsFunc(q, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		switch w {
		case "hi", "hello", "hey":
			return true
		}
	}
	return false
}

func (m *MockResponder) text(insight, summary string) *types.StructuredResponse {
	return &types.StructuredResponse{
		Visualization: types.VisualizationText,
		Data:          &types.TextData{Insights: []string{insight}},
		Summary:       summary,
		FollowUpSuggestions: []string{
			"What are the top categories?",
			"Show monthly revenue",
		},
	}
}

func (m *MockResponder) Model() string {
	return m.model + "-mock"
}

// Compile-time interface check
var _ types.Responder = (*MockResponder)(nil)
