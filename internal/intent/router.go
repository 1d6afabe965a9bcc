package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/analytics"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// DefaultFallbackTimeout bounds the fallback collaborator call.
const DefaultFallbackTimeout = 60 * time.Second

// Router maps free-text questions to analytics operations, missing-parameter
// prompts, or the fallback responder. It keeps no state of its own: the
// pending-input marker is an explicit input and output of Route.
type Router struct {
	engine          *analytics.Engine
	fallback        types.Responder
	fallbackTimeout time.Duration
	logger          *zap.Logger
	recognizers     []recognizer
}

// recognizer is one entry of the ordered pattern table. Parameterized
// patterns are declared before their parameter-less counterparts so the
// generic form never shadows a query that already carries its identifier.
type recognizer struct {
	name   string
	match  func(query string) (param string, ok bool)
	handle func(r *Router, param string) *types.StructuredResponse
}

func NewRouter(engine *analytics.Engine, fallback types.Responder, logger *zap.Logger) *Router {
	r := &Router{
		engine:          engine,
		fallback:        fallback,
		fallbackTimeout: DefaultFallbackTimeout,
		logger:          logger.Named("intent"),
	}
	r.recognizers = buildRecognizers()
	return r
}

// SetFallbackTimeout overrides the fallback call deadline.
func (r *Router) SetFallbackTimeout(d time.Duration) {
	if d > 0 {
		r.fallbackTimeout = d
	}
}

var (
	orderStatusRe   = regexp.MustCompile(`status for order (.+)`)
	sellerOrderRe   = regexp.MustCompile(`seller for order (.+)`)
	sellerDetailsRe = regexp.MustCompile(`(?:seller info|seller details) (.+)`)
	customerLocRe   = regexp.MustCompile(`location for customer (.+)`)
	revenueRe       = regexp.MustCompile(`(?:revenue for|revenue of|show revenue for)\s(.+)`)
	topNRe          = regexp.MustCompile(`top (\d+)\s*(?:product )?categories`)
	topGenericRe    = regexp.MustCompile(`(?:top|what are the top)\s*(?:product )?categories`)
)

func capture(re *regexp.Regexp) func(string) (string, bool) {
	return func(query string) (string, bool) {
		m := re.FindStringSubmatch(query)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

func contains(substrings ...string) func(string) (string, bool) {
	return func(query string) (string, bool) {
		for _, s := range substrings {
			if strings.Contains(query, s) {
				return "", true
			}
		}
		return "", false
	}
}

func matches(re *regexp.Regexp) func(string) (string, bool) {
	return func(query string) (string, bool) {
		return "", re.MatchString(query)
	}
}

func buildRecognizers() []recognizer {
	return []recognizer{
		{
			name:  "order-status",
			match: capture(orderStatusRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				return r.engine.OrderStatus(param)
			},
		},
		{
			name:  "order-status-missing-id",
			match: contains("order status"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return awaitingResponse(
					"I can help with that.",
					"Please provide the Order ID you'd like me to check.",
					types.AwaitingOrderIDForStatus,
				)
			},
		},
		{
			name:  "seller-for-order",
			match: capture(sellerOrderRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				return r.engine.SellerForOrder(param)
			},
		},
		{
			name:  "seller-for-order-missing-id",
			match: contains("who is selling", "seller for my product"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return awaitingResponse(
					"I can look up the seller for an order.",
					"Please provide the Order ID.",
					types.AwaitingOrderIDForSeller,
				)
			},
		},
		{
			name:  "seller-details",
			match: capture(sellerDetailsRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				return r.engine.SellerDetails(param)
			},
		},
		{
			name:  "seller-details-missing-id",
			match: contains("seller details", "seller info", "get seller info"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return awaitingResponse(
					"I can look up a seller's details.",
					"Please provide the Seller ID.",
					types.AwaitingSellerIDForDetails,
				)
			},
		},
		{
			name:  "customer-location",
			match: capture(customerLocRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				return r.engine.CustomerLocation(param)
			},
		},
		{
			name:  "customer-location-missing-id",
			match: contains("customer's city and state", "customer location"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return awaitingResponse(
					"I can find a customer's location.",
					"Please provide the Customer ID.",
					types.AwaitingCustomerIDLocation,
				)
			},
		},
		{
			name:  "revenue-for-category",
			match: capture(revenueRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				return r.engine.RevenueForCategory(param)
			},
		},
		{
			name:  "top-n-categories",
			match: capture(topNRe),
			handle: func(r *Router, param string) *types.StructuredResponse {
				count, err := strconv.Atoi(param)
				if err != nil {
					count = analytics.DefaultTopCategories
				}
				return r.engine.TopCategories(count)
			},
		},
		{
			name:  "top-categories",
			match: matches(topGenericRe),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.TopCategories(analytics.DefaultTopCategories)
			},
		},
		{
			name:  "orders-by-state",
			match: contains("state has the most orders"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.CustomerDistribution()
			},
		},
		{
			name:  "seller-distribution",
			match: contains("most sellers", "seller distribution"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.SellerDistribution()
			},
		},
		{
			name:  "revenue-trend",
			match: contains("monthly revenue"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.RevenueTrend()
			},
		},
		{
			name:  "revenue-forecast",
			match: contains("forecast revenue"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.RevenueForecast()
			},
		},
		{
			name:  "average-order-value",
			match: contains("aov"),
			handle: func(r *Router, _ string) *types.StructuredResponse {
				return r.engine.AverageOrderValue()
			},
		},
	}
}

func awaitingResponse(insight, summary string, kind types.AwaitingInput) *types.StructuredResponse {
	return &types.StructuredResponse{
		Visualization: types.VisualizationText,
		Data:          &types.TextData{Insights: []string{insight}},
		Summary:       summary,
		AwaitingInput: kind,
	}
}

// rewritePrefixes turn a raw identifier supplied after a missing-parameter
// prompt into the canonical parameterized query for its pending kind.
var rewritePrefixes = map[types.AwaitingInput]string{
	types.AwaitingOrderIDForStatus:   "status for order ",
	types.AwaitingOrderIDForSeller:   "seller for order ",
	types.AwaitingSellerIDForDetails: "seller details ",
	types.AwaitingCustomerIDLocation: "location for customer ",
}

// Route resolves one user turn. When pending names a required identifier, the
// raw text is reinterpreted as that identifier and the marker is consumed.
// Returns the response and the pending marker for the next turn.
func (r *Router) Route(ctx context.Context, rawText string, pending types.AwaitingInput, history []types.ConversationTurn) (*types.StructuredResponse, types.AwaitingInput) {
	text := rawText
	if prefix, ok := rewritePrefixes[pending]; ok {
		text = prefix + strings.TrimSpace(rawText)
	}

	query := strings.ToLower(strings.TrimSpace(text))

	for _, rec := range r.recognizers {
		param, ok := rec.match(query)
		if !ok {
			continue
		}
		r.logger.Debug("intent matched",
			zap.String("recognizer", rec.name),
			zap.String("query", query),
		)
		resp := rec.handle(r, param)
		return resp, resp.AwaitingInput
	}

	// The fallback sees the original text, not the rewritten query.
	resp := r.delegate(ctx, rawText, history)
	return resp, resp.AwaitingInput
}

// delegate hands an unmatched question to the fallback responder. All
// failure modes resolve to an error-kind response.
func (r *Router) delegate(ctx context.Context, rawText string, history []types.ConversationTurn) *types.StructuredResponse {
	r.logger.Info("no intent matched, delegating to fallback", zap.String("question", rawText))

	ctx, cancel := context.WithTimeout(ctx, r.fallbackTimeout)
	defer cancel()

	resp, err := r.fallback.Respond(ctx, rawText, history)
	if err != nil {
		r.logger.Error("fallback responder failed", zap.Error(err))
		return types.ErrorResponse(
			"Sorry, I encountered an error. The AI may have returned an invalid format. Please try rephrasing your question.",
			"An unexpected error occurred.",
		)
	}
	if err := resp.Validate(); err != nil {
		r.logger.Error("fallback response failed shape validation", zap.Error(err))
		return types.ErrorResponse(
			"Sorry, the AI returned a response I couldn't display. Please try rephrasing your question.",
			"An unexpected error occurred.",
		)
	}
	return resp
}
