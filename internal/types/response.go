package types

import (
	"encoding/json"
	"fmt"
)

// VisualizationType determines which payload shape the Data field carries.
type VisualizationType string

const (
	VisualizationKPI   VisualizationType = "kpi"
	VisualizationChart VisualizationType = "chart"
	VisualizationMap   VisualizationType = "map"
	VisualizationText  VisualizationType = "text"
	VisualizationError VisualizationType = "error"
)

// AwaitingInput marks which identifier the assistant needs before it can
// resolve the previous question. At most one is pending per conversation.
type AwaitingInput string

const (
	AwaitingNone               AwaitingInput = ""
	AwaitingOrderIDForStatus   AwaitingInput = "order_id_for_status"
	AwaitingOrderIDForSeller   AwaitingInput = "order_id_for_seller"
	AwaitingCustomerIDLocation AwaitingInput = "customer_id_for_location"
	AwaitingSellerIDForDetails AwaitingInput = "seller_id_for_details"
)

// Kpi is a single metric card.
type Kpi struct {
	Title  string   `json:"title"`
	Value  string   `json:"value"`
	Change *float64 `json:"change,omitempty"`
}

type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// ChartData backs bar and line charts. ForecastValues, when present,
// continues the series after the last actual point.
type ChartData struct {
	Type           ChartType `json:"type"`
	Title          string    `json:"title"`
	Labels         []string  `json:"labels"`
	Values         []float64 `json:"values"`
	ForecastValues []float64 `json:"forecastValues,omitempty"`
}

// MapData maps two-letter state codes to counts.
type MapData struct {
	Title             string         `json:"title"`
	HighlightedStates map[string]int `json:"highlightedStates"`
}

type TextData struct {
	Insights []string `json:"insights"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// StructuredResponse is the universal result envelope. Data holds one of
// []Kpi, *ChartData, *MapData, *TextData or *ErrorData depending on
// Visualization. Instances are built once and never mutated.
type StructuredResponse struct {
	Visualization       VisualizationType `json:"visualization"`
	Data                any               `json:"data"`
	Summary             string            `json:"summary"`
	FollowUpSuggestions []string          `json:"followUpSuggestions,omitempty"`
	AwaitingInput       AwaitingInput     `json:"awaitingInput,omitempty"`
}

// Validate checks that Data matches the declared visualization kind and, for
// charts, that labels and values line up.
func (r *StructuredResponse) Validate() error {
	switch r.Visualization {
	case VisualizationKPI:
		if _, ok := r.Data.([]Kpi); !ok {
			return fmt.Errorf("kpi response carries %T, want []Kpi", r.Data)
		}
	case VisualizationChart:
		chart, ok := r.Data.(*ChartData)
		if !ok {
			return fmt.Errorf("chart response carries %T, want *ChartData", r.Data)
		}
		if chart.Type != ChartBar && chart.Type != ChartLine {
			return fmt.Errorf("unknown chart type %q", chart.Type)
		}
		if len(chart.Labels) != len(chart.Values)+len(chart.ForecastValues) {
			return fmt.Errorf("chart has %d labels for %d values and %d forecast values",
				len(chart.Labels), len(chart.Values), len(chart.ForecastValues))
		}
	case VisualizationMap:
		if _, ok := r.Data.(*MapData); !ok {
			return fmt.Errorf("map response carries %T, want *MapData", r.Data)
		}
	case VisualizationText:
		if _, ok := r.Data.(*TextData); !ok {
			return fmt.Errorf("text response carries %T, want *TextData", r.Data)
		}
	case VisualizationError:
		if _, ok := r.Data.(*ErrorData); !ok {
			return fmt.Errorf("error response carries %T, want *ErrorData", r.Data)
		}
	default:
		return fmt.Errorf("unknown visualization kind %q", r.Visualization)
	}
	return nil
}

// UnmarshalJSON decodes the payload into the concrete shape for the declared
// visualization kind. External payloads (the fallback collaborator) sometimes
// nest Data as a JSON string; that layer is unwrapped first.
func (r *StructuredResponse) UnmarshalJSON(b []byte) error {
	var raw struct {
		Visualization       VisualizationType `json:"visualization"`
		Data                json.RawMessage   `json:"data"`
		Summary             string            `json:"summary"`
		FollowUpSuggestions []string          `json:"followUpSuggestions"`
		AwaitingInput       AwaitingInput     `json:"awaitingInput"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	payload := raw.Data
	if len(payload) > 0 && payload[0] == '"' {
		var nested string
		if err := json.Unmarshal(payload, &nested); err != nil {
			return fmt.Errorf("unwrap nested data: %w", err)
		}
		payload = json.RawMessage(nested)
	}

	data, err := decodePayload(raw.Visualization, payload)
	if err != nil {
		return err
	}

	r.Visualization = raw.Visualization
	r.Data = data
	r.Summary = raw.Summary
	r.FollowUpSuggestions = raw.FollowUpSuggestions
	r.AwaitingInput = raw.AwaitingInput
	return nil
}

func decodePayload(kind VisualizationType, payload json.RawMessage) (any, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("missing data payload for %q response", kind)
	}
	switch kind {
	case VisualizationKPI:
		var kpis []Kpi
		if err := json.Unmarshal(payload, &kpis); err != nil {
			return nil, fmt.Errorf("decode kpi payload: %w", err)
		}
		return kpis, nil
	case VisualizationChart:
		var chart ChartData
		if err := json.Unmarshal(payload, &chart); err != nil {
			return nil, fmt.Errorf("decode chart payload: %w", err)
		}
		return &chart, nil
	case VisualizationMap:
		var m MapData
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode map payload: %w", err)
		}
		return &m, nil
	case VisualizationText:
		var text TextData
		if err := json.Unmarshal(payload, &text); err != nil {
			return nil, fmt.Errorf("decode text payload: %w", err)
		}
		return &text, nil
	case VisualizationError:
		var e ErrorData
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode error payload: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unknown visualization kind %q", kind)
	}
}

// DecodeResponse parses an external StructuredResponse and verifies its
// payload shape. Anything malformed comes back as an error, never a panic.
func DecodeResponse(b []byte) (*StructuredResponse, error) {
	var resp StructuredResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ErrorResponse builds an error-kind response with the given user-facing
// message and summary.
func ErrorResponse(message, summary string) *StructuredResponse {
	return &StructuredResponse{
		Visualization: VisualizationError,
		Data:          &ErrorData{Message: message},
		Summary:       summary,
	}
}
