// Package models holds the client-side view of the shop API payloads.
package models

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type ProductColor struct {
	Name   string   `json:"name"`
	Hex    string   `json:"hex"`
	Images []string `json:"images"`
}

type Product struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Price           float64        `json:"price"`
	Image           string         `json:"image"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	DiscountPercent *int           `json:"discountPercent"`
	Colors          []ProductColor `json:"colors"`
}

// FinalPrice applies the discount, if any.
func (p Product) FinalPrice() float64 {
	if p.DiscountPercent == nil {
		return p.Price
	}
	return p.Price * float64(100-*p.DiscountPercent) / 100
}

type CartItem struct {
	ID            int64         `json:"id"`
	Product       Product       `json:"product"`
	Quantity      int           `json:"quantity"`
	SelectedColor *ProductColor `json:"selected_color"`
}

type Favorite struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}
