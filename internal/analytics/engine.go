package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mohithhhh/maersk-copilot/internal/dataset"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// Engine computes analytics over the dataset store. Every operation is a
// total function: failures surface as error-kind responses, never as Go
// errors or panics.
type Engine struct {
	store *dataset.Store
}

func NewEngine(store *dataset.Store) *Engine {
	return &Engine{store: store}
}

// OrderStatus looks up an order and reports its status, customer and dates.
func (e *Engine) OrderStatus(orderID string) *types.StructuredResponse {
	order, ok := e.store.OrderByID(orderID)
	if !ok {
		return types.ErrorResponse(
			fmt.Sprintf("Order with ID %q not found.", orderID),
			"I couldn't find an order with that ID. Please check the ID and try again.",
		)
	}

	kpis := []types.Kpi{
		{Title: "Order Status", Value: titleCase(order.Status)},
		{Title: "Customer ID", Value: order.CustomerID},
		{Title: "Purchase Date", Value: shortDate(order.PurchasedAt)},
	}
	if order.DeliveredAt != nil {
		kpis = append(kpis, types.Kpi{Title: "Delivered On", Value: shortDate(*order.DeliveredAt)})
	}

	return &types.StructuredResponse{
		Visualization: types.VisualizationKPI,
		Data:          kpis,
		Summary: fmt.Sprintf("The status for order %s is %s. It was purchased on %s.",
			orderID, order.Status, shortDate(order.PurchasedAt)),
		FollowUpSuggestions: []string{
			"Who is the seller for this order?",
			"Where is this customer located?",
		},
	}
}

// SellerForOrder resolves the seller of the order's first item.
func (e *Engine) SellerForOrder(orderID string) *types.StructuredResponse {
	items := e.store.ItemsForOrder(orderID)
	if len(items) == 0 {
		return types.ErrorResponse(
			fmt.Sprintf("Could not find items for order ID %q.", orderID),
			"I couldn't find any items associated with that order ID.",
		)
	}
	seller, ok := e.store.SellerByID(items[0].SellerID)
	if !ok {
		return types.ErrorResponse(
			fmt.Sprintf("Could not find seller with ID %q.", items[0].SellerID),
			"I found the order item, but couldn't locate the seller's details.",
		)
	}
	return &types.StructuredResponse{
		Visualization: types.VisualizationText,
		Data: &types.TextData{Insights: []string{
			fmt.Sprintf("The seller for order %s is located in %s, %s.", orderID, seller.City, seller.State),
		}},
		Summary: fmt.Sprintf("The seller for this order is based in %s, %s.", seller.City, seller.State),
		FollowUpSuggestions: []string{
			"Show me the seller distribution map.",
			"What was the product in this order?",
		},
	}
}

// CustomerLocation reports the city and state of a customer.
func (e *Engine) CustomerLocation(customerID string) *types.StructuredResponse {
	customer, ok := e.store.CustomerByID(customerID)
	if !ok {
		return types.ErrorResponse(
			fmt.Sprintf("Customer with ID %q not found.", customerID),
			"I couldn't find a customer with that ID.",
		)
	}
	return &types.StructuredResponse{
		Visualization: types.VisualizationText,
		Data: &types.TextData{Insights: []string{
			fmt.Sprintf("Customer %s is located in %s, %s.", customerID, customer.City, customer.State),
		}},
		Summary: fmt.Sprintf("This customer is from %s, %s.", customer.City, customer.State),
		FollowUpSuggestions: []string{
			"Show all orders from this state.",
			"What is the most common customer city?",
		},
	}
}

// SellerDetails reports a seller's location and item volume.
func (e *Engine) SellerDetails(sellerID string) *types.StructuredResponse {
	seller, ok := e.store.SellerByID(sellerID)
	if !ok {
		return types.ErrorResponse(
			fmt.Sprintf("Seller with ID %q not found.", sellerID),
			"I couldn't find a seller with that ID.",
		)
	}
	itemsSold := e.store.ItemsBySeller(sellerID)

	return &types.StructuredResponse{
		Visualization: types.VisualizationKPI,
		Data: []types.Kpi{
			{Title: "Seller Location", Value: fmt.Sprintf("%s, %s", seller.City, seller.State)},
			{Title: "Items in Dataset", Value: fmt.Sprintf("%d", len(itemsSold))},
		},
		Summary: fmt.Sprintf("Seller %s is located in %s, %s and has %d item(s) listed in this sample dataset.",
			sellerID, seller.City, seller.State, len(itemsSold)),
		FollowUpSuggestions: []string{"Show me the seller distribution map."},
	}
}

// RevenueForCategory fuzzy-matches the query against category display names
// and sums item prices for the matched category.
func (e *Engine) RevenueForCategory(categoryQuery string) *types.StructuredResponse {
	internalName, displayName, ok := e.findCategory(categoryQuery)
	if !ok {
		return types.ErrorResponse(
			fmt.Sprintf("Product category matching %q not found.", categoryQuery),
			fmt.Sprintf("I couldn't find a category matching %q. Please check the name and try again.", categoryQuery),
		)
	}

	products := e.store.ProductsInCategory(internalName)
	if len(products) == 0 {
		return &types.StructuredResponse{
			Visualization: types.VisualizationText,
			Data: &types.TextData{Insights: []string{
				fmt.Sprintf("No products found for the category %q.", displayName),
			}},
			Summary: fmt.Sprintf("There are no products listed in the %q category in this dataset.", displayName),
		}
	}

	inCategory := make(map[string]bool, len(products))
	for _, p := range products {
		inCategory[p.ProductID] = true
	}
	var total float64
	for _, item := range e.store.OrderItems() {
		if inCategory[item.ProductID] {
			total += item.Price
		}
	}

	value := formatCurrency(total)
	return &types.StructuredResponse{
		Visualization: types.VisualizationKPI,
		Data: []types.Kpi{
			{Title: fmt.Sprintf("Revenue (%s)", displayName), Value: value},
		},
		Summary: fmt.Sprintf("The total revenue for the '%s' category is %s.", displayName, value),
		FollowUpSuggestions: []string{
			"How does this compare to other categories?",
			fmt.Sprintf("Show top sellers for %s.", displayName),
		},
	}
}

// findCategory resolves a free-text category query to a dataset category via
// bidirectional normalized substring containment.
func (e *Engine) findCategory(query string) (internalName, displayName string, ok bool) {
	normQuery := normalizeCategory(query)
	// Deterministic match order regardless of map iteration.
	internals := make([]string, 0, len(e.store.Translations()))
	for internal := range e.store.Translations() {
		internals = append(internals, internal)
	}
	sort.Strings(internals)
	for _, internal := range internals {
		display := e.store.Translations()[internal]
		normDisplay := normalizeCategory(display)
		if strings.Contains(normDisplay, normQuery) || strings.Contains(normQuery, normDisplay) {
			return internal, display, true
		}
	}
	return "", "", false
}

func normalizeCategory(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '/':
			return -1
		}
		return r
	}, s)
}

// SellerDistribution groups sellers by state.
func (e *Engine) SellerDistribution() *types.StructuredResponse {
	counts := make(map[string]int)
	for _, s := range e.store.Sellers() {
		counts[s.State]++
	}
	return &types.StructuredResponse{
		Visualization: types.VisualizationMap,
		Data: &types.MapData{
			Title:             "Seller Distribution by State",
			HighlightedStates: counts,
		},
		Summary: "This map shows the concentration of sellers across Brazil. As with customers, the majority of sellers are located in São Paulo (SP), indicating it is the central hub for the e-commerce marketplace.",
		FollowUpSuggestions: []string{
			"Which state has the most customers?",
			"What are the top categories sold by sellers in SP?",
		},
	}
}

// CustomerDistribution groups customers by state.
func (e *Engine) CustomerDistribution() *types.StructuredResponse {
	counts := make(map[string]int)
	for _, c := range e.store.Customers() {
		counts[c.State]++
	}
	return &types.StructuredResponse{
		Visualization: types.VisualizationMap,
		Data: &types.MapData{
			Title:             "Customer Distribution by State",
			HighlightedStates: counts,
		},
		Summary: "São Paulo (SP) has the highest concentration of customers, followed by states in the Southeast region. This highlights the key markets for the e-commerce business.",
	}
}

// DefaultTopCategories is the category count when the user doesn't give one.
const DefaultTopCategories = 10

// TopCategories ranks translated categories by item volume, descending, ties
// broken by first appearance in the item table.
func (e *Engine) TopCategories(count int) *types.StructuredResponse {
	if count <= 0 {
		count = DefaultTopCategories
	}

	type tally struct {
		name  string
		count int
	}
	index := make(map[string]int)
	var tallies []tally
	for _, item := range e.store.OrderItems() {
		product, ok := e.store.ProductByID(item.ProductID)
		if !ok || product.CategoryName == "" {
			continue
		}
		name := e.store.TranslateCategory(product.CategoryName)
		i, seen := index[name]
		if !seen {
			i = len(tallies)
			index[name] = i
			tallies = append(tallies, tally{name: name})
		}
		tallies[i].count++
	}

	if len(tallies) == 0 {
		return types.ErrorResponse(
			"No category data available in this dataset.",
			"I couldn't rank categories because the dataset has no categorized items.",
		)
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].count > tallies[j].count
	})
	if count < len(tallies) {
		tallies = tallies[:count]
	}

	labels := make([]string, len(tallies))
	values := make([]float64, len(tallies))
	for i, t := range tallies {
		labels[i] = t.name
		values[i] = float64(t.count)
	}

	return &types.StructuredResponse{
		Visualization: types.VisualizationChart,
		Data: &types.ChartData{
			Type:   types.ChartBar,
			Title:  fmt.Sprintf("Top %d Product Categories by Sales Volume", count),
			Labels: labels,
			Values: values,
		},
		Summary: fmt.Sprintf("The chart displays the top %d product categories by sales. '%s' is the most popular category with %d items sold.",
			count, tallies[0].name, tallies[0].count),
		FollowUpSuggestions: []string{
			fmt.Sprintf("Show revenue for %s", tallies[0].name),
			"What are the least popular categories?",
		},
	}
}

// AverageOrderValue computes AOV as the item price plus freight summed per
// order in the orders table, divided by order count.
func (e *Engine) AverageOrderValue() *types.StructuredResponse {
	orders := e.store.Orders()
	if len(orders) == 0 {
		return types.ErrorResponse(
			"No orders available in this dataset.",
			"I couldn't compute the average order value because the dataset has no orders.",
		)
	}

	var total float64
	for _, o := range orders {
		for _, item := range e.store.ItemsForOrder(o.OrderID) {
			total += item.Price + item.FreightValue
		}
	}
	aov := total / float64(len(orders))

	return &types.StructuredResponse{
		Visualization: types.VisualizationKPI,
		Data: []types.Kpi{
			{Title: "Average Order Value (AOV)", Value: formatCurrency(aov)},
			{Title: "Total Orders", Value: fmt.Sprintf("%d", len(orders))},
		},
		Summary: fmt.Sprintf("The Average Order Value (AOV) across all transactions is %s. This metric is crucial for understanding customer purchasing behavior.",
			formatCurrency(aov)),
	}
}

// RevenueTrend groups item revenue by the owning order's purchase month.
func (e *Engine) RevenueTrend() *types.StructuredResponse {
	labels, values, ok := e.monthlyRevenue()
	if !ok {
		return types.ErrorResponse(
			"No dated revenue available in this dataset.",
			"I couldn't build a revenue trend because no order items map to dated orders.",
		)
	}
	return &types.StructuredResponse{
		Visualization: types.VisualizationChart,
		Data: &types.ChartData{
			Type:   types.ChartLine,
			Title:  "Monthly Revenue Trend (R$)",
			Labels: labels,
			Values: values,
		},
		Summary: "Revenue shows a positive trend over the observed months, indicating growth in sales performance.",
	}
}

// ForecastMonths is how far past the trend the forecast extends.
const ForecastMonths = 3

// RevenueForecast extends the trend with a least-squares projection. The
// chart keeps the actual series in Values and appends the projection as
// ForecastValues with matching extra labels, so renderers can draw it as a
// distinct continuation.
func (e *Engine) RevenueForecast() *types.StructuredResponse {
	labels, values, ok := e.monthlyRevenue()
	if !ok {
		return types.ErrorResponse(
			"No dated revenue available in this dataset.",
			"I couldn't forecast revenue because no order items map to dated orders.",
		)
	}

	forecast := projectLinear(values, ForecastMonths)
	last := e.lastTrendMonth()
	for i := 1; i <= ForecastMonths; i++ {
		labels = append(labels, monthLabel(last.AddDate(0, i, 0)))
	}

	return &types.StructuredResponse{
		Visualization: types.VisualizationChart,
		Data: &types.ChartData{
			Type:           types.ChartLine,
			Title:          fmt.Sprintf("Revenue Forecast for Next %d Months (R$)", ForecastMonths),
			Labels:         labels,
			Values:         values,
			ForecastValues: forecast,
		},
		Summary: "Based on current trends, revenue is projected to continue its upward trajectory over the next quarter.",
	}
}

// monthlyRevenue sums item prices per purchase month in chronological order.
// Items whose order id has no orders row carry no timestamp and are skipped.
func (e *Engine) monthlyRevenue() (labels []string, values []float64, ok bool) {
	totals := make(map[time.Time]float64)
	for _, item := range e.store.OrderItems() {
		order, found := e.store.OrderByID(item.OrderID)
		if !found {
			continue
		}
		month := monthStart(order.PurchasedAt)
		totals[month] += item.Price
	}
	if len(totals) == 0 {
		return nil, nil, false
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	for _, m := range months {
		labels = append(labels, monthLabel(m))
		values = append(values, round2(totals[m]))
	}
	return labels, values, true
}

func (e *Engine) lastTrendMonth() time.Time {
	var last time.Time
	for _, item := range e.store.OrderItems() {
		order, found := e.store.OrderByID(item.OrderID)
		if !found {
			continue
		}
		month := monthStart(order.PurchasedAt)
		if month.After(last) {
			last = month
		}
	}
	return last
}

// projectLinear fits a least-squares line over values and extends it n points.
func projectLinear(values []float64, n int) []float64 {
	m := len(values)
	if m == 0 {
		return nil
	}
	if m == 1 {
		flat := make([]float64, n)
		for i := range flat {
			flat[i] = values[0]
		}
		return flat
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fm := float64(m)
	slope := (fm*sumXY - sumX*sumY) / (fm*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fm

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = round2(intercept + slope*float64(m+i))
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
