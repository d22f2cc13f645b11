package domain

import "time"

type Book struct {
	ID     string  `db:"id" json:"id"`
	Title  string  `db:"title" json:"title"`
	Author string  `db:"author" json:"author"`
	Price  float64 `db:"price" json:"price"`
	Stock  int     `db:"stock" json:"stock"`
}

type CartLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type Cart struct {
	Email     string     `json:"email"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Outcome is the result of one inventory decrement inside an order.
type Outcome string

const (
	Decremented  Outcome = "DECREMENTED"
	OutOfStock   Outcome = "OUT_OF_STOCK"
	ItemNotFound Outcome = "ITEM_NOT_FOUND"
)

type ItemResult struct {
	ItemID  string  `json:"itemId"`
	Outcome Outcome `json:"outcome"`
}
