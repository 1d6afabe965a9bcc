package dataset

import (
	"fmt"
	"time"
)

// NewSampleStore returns the embedded sample: a small, representative subset
// of the Olist Brazilian e-commerce public dataset, with the order-item table
// expanded so category rankings have meaningful volume.
func NewSampleStore() *Store {
	return NewStore(SampleTables())
}

// SampleTables builds the embedded sample tables.
func SampleTables() Tables {
	return Tables{
		Customers: []Customer{
			{CustomerID: "c1", UniqueID: "u1", ZipCodePrefix: "14409", City: "franca", State: "SP"},
			{CustomerID: "c2", UniqueID: "u2", ZipCodePrefix: "87705", City: "paranavai", State: "PR"},
			{CustomerID: "c3", UniqueID: "u3", ZipCodePrefix: "22790", City: "rio de janeiro", State: "RJ"},
			{CustomerID: "c4", UniqueID: "u4", ZipCodePrefix: "30150", City: "belo horizonte", State: "MG"},
			{CustomerID: "c5", UniqueID: "u5", ZipCodePrefix: "04363", City: "sao paulo", State: "SP"},
		},
		Orders: []Order{
			{OrderID: "e481f51cbdc54678b7cc49136f2d6af7", CustomerID: "c1", Status: "delivered",
				PurchasedAt: ts("2017-10-02 10:56:33"), DeliveredAt: tsp("2017-10-10 21:25:13")},
			{OrderID: "o2", CustomerID: "c2", Status: "delivered",
				PurchasedAt: ts("2018-07-24 20:41:37"), DeliveredAt: tsp("2018-08-07 15:27:45")},
			{OrderID: "o3", CustomerID: "c3", Status: "shipped",
				PurchasedAt: ts("2018-08-08 08:38:49")},
			{OrderID: "o4", CustomerID: "c4", Status: "delivered",
				PurchasedAt: ts("2017-11-18 19:28:06"), DeliveredAt: tsp("2017-12-02 00:28:42")},
			{OrderID: "o5", CustomerID: "c5", Status: "canceled",
				PurchasedAt: ts("2018-02-28 12:28:25")},
		},
		OrderItems: sampleOrderItems(),
		Products: []Product{
			{ProductID: "p1", CategoryName: "beleza_saude"},
			{ProductID: "p2", CategoryName: "esporte_lazer"},
			{ProductID: "p3", CategoryName: "cama_mesa_banho"},
			{ProductID: "p4", CategoryName: "informatica_acessorios"},
			{ProductID: "p5", CategoryName: "moveis_decoracao"},
			{ProductID: "p6", CategoryName: "utilidades_domesticas"},
			{ProductID: "p7", CategoryName: "relogios_presentes"},
			{ProductID: "p8", CategoryName: "telefonia"},
			{ProductID: "p9", CategoryName: "ferramentas_jardim"},
			{ProductID: "p10", CategoryName: "automotivo"},
			{ProductID: "p11", CategoryName: "brinquedos"},
		},
		Translations: map[string]string{
			"beleza_saude":           "Health/Beauty",
			"esporte_lazer":          "Sports/Leisure",
			"cama_mesa_banho":        "Bed/Bath/Table",
			"informatica_acessorios": "Computers/Accessories",
			"moveis_decoracao":       "Furniture/Decor",
			"utilidades_domesticas":  "Housewares",
			"relogios_presentes":     "Watches/Gifts",
			"telefonia":              "Telephony",
			"ferramentas_jardim":     "Garden/Tools",
			"automotivo":             "Automotive",
			"brinquedos":             "Toys",
		},
		Sellers: []Seller{
			{SellerID: "s1", ZipCodePrefix: "14409", City: "franca", State: "SP"},
			{SellerID: "s2", ZipCodePrefix: "83025", City: "sao jose dos pinhais", State: "PR"},
			{SellerID: "s3", ZipCodePrefix: "22790", City: "rio de janeiro", State: "RJ"},
			{SellerID: "3504c0cb71d7fa48d96710c418d13efa", ZipCodePrefix: "13213", City: "sao paulo", State: "SP"},
		},
	}
}

func sampleOrderItems() []OrderItem {
	items := []OrderItem{
		{OrderID: "e481f51cbdc54678b7cc49136f2d6af7", ItemID: 1, ProductID: "p1",
			SellerID: "3504c0cb71d7fa48d96710c418d13efa", Price: 29.99, FreightValue: 8.72},
		{OrderID: "o2", ItemID: 1, ProductID: "p2", SellerID: "s2", Price: 118.70, FreightValue: 22.76},
		{OrderID: "o3", ItemID: 1, ProductID: "p3", SellerID: "s3", Price: 129.90, FreightValue: 12.79},
		{OrderID: "o4", ItemID: 1, ProductID: "p4", SellerID: "s1", Price: 49.90, FreightValue: 15.10},
		{OrderID: "o5", ItemID: 1, ProductID: "p5", SellerID: "s2", Price: 79.99, FreightValue: 18.23},
	}

	// Synthetic volume per category; order ids past o5 have no orders row and
	// are deliberately dangling.
	next := 6
	expand := func(n int, productID, sellerID string, price, freight float64) {
		for i := 0; i < n; i++ {
			items = append(items, OrderItem{
				OrderID:      fmt.Sprintf("o%d", next),
				ItemID:       1,
				ProductID:    productID,
				SellerID:     sellerID,
				Price:        price,
				FreightValue: freight,
			})
			next++
		}
	}
	expand(11, "p3", "s3", 120, 10) // cama_mesa_banho
	expand(10, "p1", "s1", 30, 5)   // beleza_saude
	expand(8, "p2", "s2", 110, 20)  // esporte_lazer
	expand(8, "p5", "s2", 80, 15)   // moveis_decoracao
	expand(7, "p4", "s1", 50, 12)   // informatica_acessorios
	expand(7, "p6", "s1", 90, 18)   // utilidades_domesticas
	expand(6, "p7", "s2", 200, 25)  // relogios_presentes
	expand(5, "p8", "s3", 300, 30)  // telefonia
	expand(4, "p9", "s1", 60, 15)   // ferramentas_jardim
	expand(4, "p10", "s2", 150, 22) // automotivo
	expand(3, "p11", "s3", 20, 8)   // brinquedos

	return items
}

func ts(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}
