package models

// CartItem is one (user, product) line. Quantity is always at least 1 and
// SelectedColor keeps the choice made when the line was first created.
type CartItem struct {
	ID            int64
	UserID        int64
	ProductID     int64
	Quantity      int
	SelectedColor *ProductColor
	Product       *Product
}

// Favorite marks a product as liked by a user.
type Favorite struct {
	ID        int64
	UserID    int64
	ProductID int64
	Product   *Product
}
