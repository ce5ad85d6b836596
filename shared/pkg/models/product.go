package models

import "github.com/shopspring/decimal"

type Product struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	InStock  bool            `json:"inStock"`
}
