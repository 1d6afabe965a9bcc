package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleStoreLookups(t *testing.T) {
	store := NewSampleStore()

	t.Run("order by id", func(t *testing.T) {
		order, ok := store.OrderByID("e481f51cbdc54678b7cc49136f2d6af7")
		require.True(t, ok)
		assert.Equal(t, "c1", order.CustomerID)
		assert.Equal(t, "delivered", order.Status)
		assert.Equal(t, time.October, order.PurchasedAt.Month())
		require.NotNil(t, order.DeliveredAt)
		assert.Equal(t, 10, order.DeliveredAt.Day())
	})

	t.Run("undelivered order has nil delivery date", func(t *testing.T) {
		order, ok := store.OrderByID("o3")
		require.True(t, ok)
		assert.Nil(t, order.DeliveredAt)
	})

	t.Run("missing ids are not found, not fatal", func(t *testing.T) {
		_, ok := store.OrderByID("nope")
		assert.False(t, ok)
		_, ok = store.CustomerByID("nope")
		assert.False(t, ok)
		_, ok = store.SellerByID("nope")
		assert.False(t, ok)
		_, ok = store.ProductByID("nope")
		assert.False(t, ok)
		assert.Empty(t, store.ItemsForOrder("nope"))
		assert.Empty(t, store.ItemsBySeller("nope"))
		assert.Empty(t, store.ProductsInCategory("nope"))
	})

	t.Run("items for order", func(t *testing.T) {
		items := store.ItemsForOrder("e481f51cbdc54678b7cc49136f2d6af7")
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, "3504c0cb71d7fa48d96710c418d13efa", items[0].SellerID)
		assert.Equal(t, 29.99, items[0].Price)
	})

	t.Run("items by seller", func(t *testing.T) {
		// o4 plus the synthetic expansions attributed to s1.
		assert.Len(t, store.ItemsBySeller("s1"), 29)
	})

	t.Run("products in category", func(t *testing.T) {
		products := store.ProductsInCategory("informatica_acessorios")
		require.Len(t, products, 1)
		assert.Equal(t, "p4", products[0].ProductID)
	})

	t.Run("category translation falls back to raw key", func(t *testing.T) {
		assert.Equal(t, "Computers/Accessories", store.TranslateCategory("informatica_acessorios"))
		assert.Equal(t, "pet_shop", store.TranslateCategory("pet_shop"))
	})

	t.Run("dangling order items are present", func(t *testing.T) {
		items := store.ItemsForOrder("o6")
		require.Len(t, items, 1)
		_, ok := store.OrderByID("o6")
		assert.False(t, ok)
	})
}

func TestLoadStoreSnapshot(t *testing.T) {
	snapshot := `{
		"customers": [
			{"customer_id": "c1", "customer_unique_id": "u1", "customer_zip_code_prefix": "14409", "customer_city": "franca", "customer_state": "SP"}
		],
		"orders": [
			{"order_id": "o1", "customer_id": "c1", "order_status": "delivered",
			 "order_purchase_timestamp": "2017-10-02 10:56:33",
			 "order_delivered_customer_date": "2017-10-10 21:25:13"},
			{"order_id": "o2", "customer_id": "c1", "order_status": "shipped",
			 "order_purchase_timestamp": "2018-01-05T08:00:00Z"}
		],
		"order_items": [
			{"order_id": "o1", "order_item_id": 1, "product_id": "p1", "seller_id": "s1", "price": 10.5, "freight_value": 2.5}
		],
		"products": [
			{"product_id": "p1", "product_category_name": "brinquedos"}
		],
		"category_translations": {"brinquedos": "Toys"},
		"sellers": [
			{"seller_id": "s1", "seller_zip_code_prefix": "14409", "seller_city": "franca", "seller_state": "SP"}
		]
	}`

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	store, err := LoadStore(path)
	require.NoError(t, err)

	order, ok := store.OrderByID("o1")
	require.True(t, ok)
	assert.Equal(t, 2017, order.PurchasedAt.Year())
	require.NotNil(t, order.DeliveredAt)

	order, ok = store.OrderByID("o2")
	require.True(t, ok)
	assert.Equal(t, time.January, order.PurchasedAt.Month())
	assert.Nil(t, order.DeliveredAt)

	assert.Equal(t, "Toys", store.TranslateCategory("brinquedos"))
	require.Len(t, store.ItemsForOrder("o1"), 1)
}

func TestLoadStoreErrors(t *testing.T) {
	_, err := LoadStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadStore(path)
	assert.Error(t, err)
}
