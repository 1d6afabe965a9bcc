package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Customer is one row of the customers table.
type Customer struct {
	CustomerID    string `json:"customer_id"`
	UniqueID      string `json:"customer_unique_id"`
	ZipCodePrefix string `json:"customer_zip_code_prefix"`
	City          string `json:"customer_city"`
	State         string `json:"customer_state"`
}

// Order belongs to exactly one customer. Status is stored as free text the
// way the Olist export ships it. DeliveredAt is nil for undelivered orders.
type Order struct {
	OrderID     string     `json:"order_id"`
	CustomerID  string     `json:"customer_id"`
	Status      string     `json:"order_status"`
	PurchasedAt time.Time  `json:"order_purchase_timestamp"`
	DeliveredAt *time.Time `json:"order_delivered_customer_date,omitempty"`
}

// timeLayout is the timestamp format of the Olist CSV export.
const timeLayout = "2006-01-02 15:04:05"

// UnmarshalJSON accepts both RFC 3339 and the Olist export timestamp format.
func (o *Order) UnmarshalJSON(b []byte) error {
	var raw struct {
		OrderID     string `json:"order_id"`
		CustomerID  string `json:"customer_id"`
		Status      string `json:"order_status"`
		PurchasedAt string `json:"order_purchase_timestamp"`
		DeliveredAt string `json:"order_delivered_customer_date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	purchased, err := parseTimestamp(raw.PurchasedAt)
	if err != nil {
		return fmt.Errorf("order %s: %w", raw.OrderID, err)
	}
	o.OrderID = raw.OrderID
	o.CustomerID = raw.CustomerID
	o.Status = raw.Status
	o.PurchasedAt = purchased
	o.DeliveredAt = nil
	if raw.DeliveredAt != "" {
		delivered, err := parseTimestamp(raw.DeliveredAt)
		if err != nil {
			return fmt.Errorf("order %s: %w", raw.OrderID, err)
		}
		o.DeliveredAt = &delivered
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// OrderItem is keyed by (order id, item sequence). Items may reference order
// ids with no row in the orders table; lookups treat those as not found.
type OrderItem struct {
	OrderID      string  `json:"order_id"`
	ItemID       int     `json:"order_item_id"`
	ProductID    string  `json:"product_id"`
	SellerID     string  `json:"seller_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// Product carries the raw internal category key.
type Product struct {
	ProductID    string `json:"product_id"`
	CategoryName string `json:"product_category_name"`
}

// Seller is one row of the sellers table.
type Seller struct {
	SellerID      string `json:"seller_id"`
	ZipCodePrefix string `json:"seller_zip_code_prefix"`
	City          string `json:"seller_city"`
	State         string `json:"seller_state"`
}

// Tables bundles the six reference tables for loading.
type Tables struct {
	Customers    []Customer        `json:"customers"`
	Orders       []Order           `json:"orders"`
	OrderItems   []OrderItem       `json:"order_items"`
	Products     []Product         `json:"products"`
	Translations map[string]string `json:"category_translations"`
	Sellers      []Seller          `json:"sellers"`
}

// Store holds the read-only dataset. It is loaded once at startup, never
// mutated, and safe to share across conversations without locking.
type Store struct {
	customers    []Customer
	orders       []Order
	orderItems   []OrderItem
	products     []Product
	translations map[string]string
	sellers      []Seller

	customersByID map[string]*Customer
	ordersByID    map[string]*Order
	productsByID  map[string]*Product
	sellersByID   map[string]*Seller
}

// NewStore builds a store and its lookup indexes from the given tables.
func NewStore(t Tables) *Store {
	s := &Store{
		customers:    t.Customers,
		orders:       t.Orders,
		orderItems:   t.OrderItems,
		products:     t.Products,
		translations: t.Translations,
		sellers:      t.Sellers,

		customersByID: make(map[string]*Customer, len(t.Customers)),
		ordersByID:    make(map[string]*Order, len(t.Orders)),
		productsByID:  make(map[string]*Product, len(t.Products)),
		sellersByID:   make(map[string]*Seller, len(t.Sellers)),
	}
	for i := range s.customers {
		s.customersByID[s.customers[i].CustomerID] = &s.customers[i]
	}
	for i := range s.orders {
		s.ordersByID[s.orders[i].OrderID] = &s.orders[i]
	}
	for i := range s.products {
		s.productsByID[s.products[i].ProductID] = &s.products[i]
	}
	for i := range s.sellers {
		s.sellersByID[s.sellers[i].SellerID] = &s.sellers[i]
	}
	return s
}

// LoadStore reads a JSON snapshot of the six tables from path.
func LoadStore(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset snapshot: %w", err)
	}
	var t Tables
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode dataset snapshot: %w", err)
	}
	return NewStore(t), nil
}

// OrderByID returns the order for id, or false when absent.
func (s *Store) OrderByID(id string) (*Order, bool) {
	o, ok := s.ordersByID[id]
	return o, ok
}

// CustomerByID returns the customer for id, or false when absent.
func (s *Store) CustomerByID(id string) (*Customer, bool) {
	c, ok := s.customersByID[id]
	return c, ok
}

// SellerByID returns the seller for id, or false when absent.
func (s *Store) SellerByID(id string) (*Seller, bool) {
	sl, ok := s.sellersByID[id]
	return sl, ok
}

// ProductByID returns the product for id, or false when absent.
func (s *Store) ProductByID(id string) (*Product, bool) {
	p, ok := s.productsByID[id]
	return p, ok
}

// ItemsForOrder returns the order items belonging to the order, in table order.
func (s *Store) ItemsForOrder(orderID string) []OrderItem {
	var items []OrderItem
	for _, it := range s.orderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items
}

// ItemsBySeller returns every order item attributed to the seller.
func (s *Store) ItemsBySeller(sellerID string) []OrderItem {
	var items []OrderItem
	for _, it := range s.orderItems {
		if it.SellerID == sellerID {
			items = append(items, it)
		}
	}
	return items
}

// ProductsInCategory returns products whose raw category key matches.
func (s *Store) ProductsInCategory(internalName string) []Product {
	var products []Product
	for _, p := range s.products {
		if p.CategoryName == internalName {
			products = append(products, p)
		}
	}
	return products
}

// TranslateCategory maps a raw category key to its display name, falling back
// to the raw key for categories absent from the translation table.
func (s *Store) TranslateCategory(internalName string) string {
	if display, ok := s.translations[internalName]; ok {
		return display
	}
	return internalName
}

// Customers returns the customers table.
func (s *Store) Customers() []Customer { return s.customers }

// Orders returns the orders table.
func (s *Store) Orders() []Order { return s.orders }

// OrderItems returns the order items table.
func (s *Store) OrderItems() []OrderItem { return s.orderItems }

// Translations returns the category translation table.
func (s *Store) Translations() map[string]string { return s.translations }

// Sellers returns the sellers table.
func (s *Store) Sellers() []Seller { return s.sellers }
