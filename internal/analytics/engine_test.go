package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohithhhh/maersk-copilot/internal/dataset"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

func sampleEngine() *Engine {
	return NewEngine(dataset.NewSampleStore())
}

func requireKpis(t *testing.T, resp *types.StructuredResponse) []types.Kpi {
	t.Helper()
	require.Equal(t, types.VisualizationKPI, resp.Visualization)
	kpis, ok := resp.Data.([]types.Kpi)
	require.True(t, ok)
	return kpis
}

func requireError(t *testing.T, resp *types.StructuredResponse) *types.ErrorData {
	t.Helper()
	require.Equal(t, types.VisualizationError, resp.Visualization)
	e, ok := resp.Data.(*types.ErrorData)
	require.True(t, ok)
	assert.NotEmpty(t, e.Message)
	return e
}

func requireChart(t *testing.T, resp *types.StructuredResponse) *types.ChartData {
	t.Helper()
	require.Equal(t, types.VisualizationChart, resp.Visualization)
	chart, ok := resp.Data.(*types.ChartData)
	require.True(t, ok)
	return chart
}

func TestOrderStatus(t *testing.T) {
	engine := sampleEngine()

	t.Run("known order", func(t *testing.T) {
		resp := engine.OrderStatus("e481f51cbdc54678b7cc49136f2d6af7")
		kpis := requireKpis(t, resp)
		require.Len(t, kpis, 4)
		assert.Equal(t, types.Kpi{Title: "Order Status", Value: "Delivered"}, kpis[0])
		assert.Equal(t, types.Kpi{Title: "Customer ID", Value: "c1"}, kpis[1])
		assert.Equal(t, types.Kpi{Title: "Purchase Date", Value: "10/2/2017"}, kpis[2])
		assert.Equal(t, types.Kpi{Title: "Delivered On", Value: "10/10/2017"}, kpis[3])
		assert.Len(t, resp.FollowUpSuggestions, 2)
		assert.NoError(t, resp.Validate())
	})

	t.Run("undelivered order omits delivery kpi", func(t *testing.T) {
		kpis := requireKpis(t, engine.OrderStatus("o3"))
		require.Len(t, kpis, 3)
		assert.Equal(t, "Shipped", kpis[0].Value)
	})

	t.Run("status is title-cased for every known order", func(t *testing.T) {
		for _, id := range []string{"e481f51cbdc54678b7cc49136f2d6af7", "o2", "o3", "o4", "o5"} {
			kpis := requireKpis(t, engine.OrderStatus(id))
			status := kpis[0].Value
			require.NotEmpty(t, status)
			assert.Equal(t, "Order Status", kpis[0].Title)
			assert.True(t, status[0] >= 'A' && status[0] <= 'Z', "status %q should be title-cased", status)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		e := requireError(t, engine.OrderStatus("missing-order"))
		assert.Contains(t, e.Message, "missing-order")
	})

	t.Run("whitespace id is just not found", func(t *testing.T) {
		requireError(t, engine.OrderStatus("   "))
	})
}

func TestSellerForOrder(t *testing.T) {
	engine := sampleEngine()

	t.Run("resolves seller location", func(t *testing.T) {
		resp := engine.SellerForOrder("e481f51cbdc54678b7cc49136f2d6af7")
		require.Equal(t, types.VisualizationText, resp.Visualization)
		text, ok := resp.Data.(*types.TextData)
		require.True(t, ok)
		require.Len(t, text.Insights, 1)
		assert.Contains(t, text.Insights[0], "sao paulo, SP")
	})

	t.Run("no items for order", func(t *testing.T) {
		e := requireError(t, engine.SellerForOrder("missing-order"))
		assert.Contains(t, e.Message, "items")
	})

	t.Run("item without seller gets a distinct error", func(t *testing.T) {
		store := dataset.NewStore(dataset.Tables{
			OrderItems: []dataset.OrderItem{
				{OrderID: "o1", ItemID: 1, ProductID: "p1", SellerID: "ghost", Price: 1},
			},
		})
		resp := NewEngine(store).SellerForOrder("o1")
		e := requireError(t, resp)
		assert.Contains(t, e.Message, "ghost")
		assert.Contains(t, resp.Summary, "found the order item")
	})
}

func TestCustomerLocation(t *testing.T) {
	engine := sampleEngine()

	resp := engine.CustomerLocation("c3")
	require.Equal(t, types.VisualizationText, resp.Visualization)
	text := resp.Data.(*types.TextData)
	assert.Contains(t, text.Insights[0], "rio de janeiro, RJ")

	requireError(t, engine.CustomerLocation("c99"))
}

func TestSellerDetails(t *testing.T) {
	engine := sampleEngine()

	resp := engine.SellerDetails("s1")
	kpis := requireKpis(t, resp)
	require.Len(t, kpis, 2)
	assert.Equal(t, types.Kpi{Title: "Seller Location", Value: "franca, SP"}, kpis[0])
	assert.Equal(t, types.Kpi{Title: "Items in Dataset", Value: "29"}, kpis[1])

	requireError(t, engine.SellerDetails("s99"))
}

func TestRevenueForCategory(t *testing.T) {
	engine := sampleEngine()

	t.Run("fuzzy match sums item prices", func(t *testing.T) {
		resp := engine.RevenueForCategory("computers")
		kpis := requireKpis(t, resp)
		require.Len(t, kpis, 1)
		// o4 at 49.90 plus seven synthetic items at 50.
		assert.Equal(t, "Revenue (Computers/Accessories)", kpis[0].Title)
		assert.Equal(t, "R$399,90", kpis[0].Value)
		assert.Contains(t, resp.Summary, "Computers/Accessories")
		assert.Len(t, resp.FollowUpSuggestions, 2)
	})

	t.Run("match is casing, whitespace and slash tolerant", func(t *testing.T) {
		want := requireKpis(t, engine.RevenueForCategory("Sports/Leisure"))[0]
		for _, query := range []string{"sports/leisure", "SPORTS LEISURE", "  sports leisure  ", "sportsleisure"} {
			got := requireKpis(t, engine.RevenueForCategory(query))[0]
			assert.Equal(t, want, got, "query %q", query)
		}
	})

	t.Run("no matching category", func(t *testing.T) {
		e := requireError(t, engine.RevenueForCategory("submarines"))
		assert.Contains(t, e.Message, "submarines")
	})

	t.Run("matched category without products", func(t *testing.T) {
		store := dataset.NewStore(dataset.Tables{
			Translations: map[string]string{"fraldas_higiene": "Diapers/Hygiene"},
		})
		resp := NewEngine(store).RevenueForCategory("diapers")
		require.Equal(t, types.VisualizationText, resp.Visualization)
		text := resp.Data.(*types.TextData)
		assert.Contains(t, text.Insights[0], "Diapers/Hygiene")
	})
}

func TestDistributions(t *testing.T) {
	engine := sampleEngine()

	t.Run("sellers by state", func(t *testing.T) {
		resp := engine.SellerDistribution()
		require.Equal(t, types.VisualizationMap, resp.Visualization)
		m := resp.Data.(*types.MapData)
		assert.Equal(t, map[string]int{"SP": 2, "PR": 1, "RJ": 1}, m.HighlightedStates)
		assert.Equal(t, "Seller Distribution by State", m.Title)
	})

	t.Run("customers by state", func(t *testing.T) {
		resp := engine.CustomerDistribution()
		require.Equal(t, types.VisualizationMap, resp.Visualization)
		m := resp.Data.(*types.MapData)
		assert.Equal(t, map[string]int{"SP": 2, "PR": 1, "RJ": 1, "MG": 1}, m.HighlightedStates)
	})
}

func TestTopCategories(t *testing.T) {
	engine := sampleEngine()

	t.Run("top 3 by item volume", func(t *testing.T) {
		resp := engine.TopCategories(3)
		chart := requireChart(t, resp)
		assert.Equal(t, types.ChartBar, chart.Type)
		assert.Equal(t, []string{"Bed/Bath/Table", "Health/Beauty", "Sports/Leisure"}, chart.Labels)
		assert.Equal(t, []float64{12, 11, 9}, chart.Values)
		assert.Contains(t, resp.Summary, "Bed/Bath/Table")
		assert.Contains(t, resp.Summary, "12")
	})

	t.Run("ties break by first appearance in the item table", func(t *testing.T) {
		chart := requireChart(t, engine.TopCategories(11))
		// Sports/Leisure and Furniture/Decor both have 9 items; Garden/Tools
		// and Automotive both have 4.
		assert.Equal(t, []string{
			"Bed/Bath/Table", "Health/Beauty", "Sports/Leisure", "Furniture/Decor",
			"Computers/Accessories", "Housewares", "Watches/Gifts", "Telephony",
			"Garden/Tools", "Automotive", "Toys",
		}, chart.Labels)
	})

	t.Run("ordering is stable across runs", func(t *testing.T) {
		first := requireChart(t, engine.TopCategories(11))
		for i := 0; i < 20; i++ {
			again := requireChart(t, engine.TopCategories(11))
			require.Equal(t, first.Labels, again.Labels)
		}
	})

	t.Run("non-positive count falls back to default", func(t *testing.T) {
		chart := requireChart(t, engine.TopCategories(0))
		assert.Len(t, chart.Labels, DefaultTopCategories)
		assert.Contains(t, chart.Title, "Top 10")
	})

	t.Run("count larger than category set", func(t *testing.T) {
		chart := requireChart(t, engine.TopCategories(50))
		assert.Len(t, chart.Labels, 11)
	})

	t.Run("empty dataset yields a defined error response", func(t *testing.T) {
		resp := NewEngine(dataset.NewStore(dataset.Tables{})).TopCategories(3)
		requireError(t, resp)
	})
}

func TestAverageOrderValue(t *testing.T) {
	engine := sampleEngine()

	resp := engine.AverageOrderValue()
	kpis := requireKpis(t, resp)
	require.Len(t, kpis, 2)
	// Sum of price+freight per order in the orders table is 486.08 over 5
	// orders; the dangling synthetic items carry no order row.
	assert.Equal(t, types.Kpi{Title: "Average Order Value (AOV)", Value: "R$97,22"}, kpis[0])
	assert.Equal(t, types.Kpi{Title: "Total Orders", Value: "5"}, kpis[1])

	empty := NewEngine(dataset.NewStore(dataset.Tables{})).AverageOrderValue()
	requireError(t, empty)
}

func TestRevenueTrend(t *testing.T) {
	engine := sampleEngine()

	resp := engine.RevenueTrend()
	chart := requireChart(t, resp)
	assert.Equal(t, types.ChartLine, chart.Type)
	assert.Equal(t, []string{"Oct '17", "Nov '17", "Feb '18", "Jul '18", "Aug '18"}, chart.Labels)
	assert.Equal(t, []float64{29.99, 49.90, 79.99, 118.70, 129.90}, chart.Values)
	assert.Empty(t, chart.ForecastValues)
	assert.NoError(t, resp.Validate())
}

func TestRevenueForecast(t *testing.T) {
	engine := sampleEngine()

	trend := requireChart(t, engine.RevenueTrend())
	resp := engine.RevenueForecast()
	forecast := requireChart(t, resp)

	// The trend is a strict prefix, extended by exactly three projections.
	assert.Equal(t, trend.Values, forecast.Values)
	require.Len(t, forecast.Labels, len(trend.Labels)+ForecastMonths)
	assert.Equal(t, trend.Labels, forecast.Labels[:len(trend.Labels)])
	assert.Equal(t, []string{"Sep '18", "Oct '18", "Nov '18"}, forecast.Labels[len(trend.Labels):])

	require.Len(t, forecast.ForecastValues, ForecastMonths)
	assert.InDelta(t, 162.28, forecast.ForecastValues[0], 0.01)
	assert.InDelta(t, 189.14, forecast.ForecastValues[1], 0.01)
	assert.InDelta(t, 216.01, forecast.ForecastValues[2], 0.01)
	assert.NoError(t, resp.Validate())
}

func TestProjectLinear(t *testing.T) {
	assert.Nil(t, projectLinear(nil, 3))
	assert.Equal(t, []float64{5, 5, 5}, projectLinear([]float64{5}, 3))
	// Perfectly linear input continues the line exactly.
	assert.Equal(t, []float64{40, 50}, projectLinear([]float64{10, 20, 30}, 2))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "Delivered", titleCase("delivered"))
	assert.Equal(t, "Shipped", titleCase("Shipped"))
	assert.Equal(t, "", titleCase(""))

	assert.Equal(t, "R$1.234,56", formatCurrency(1234.56))
	assert.Equal(t, "R$0,00", formatCurrency(0))
}
