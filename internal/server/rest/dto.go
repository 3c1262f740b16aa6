package rest

import "github.com/dmitrijs2005/smhome/internal/server/models"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type productResponse struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	Price           float64               `json:"price"`
	Image           string                `json:"image"`
	Description     string                `json:"description"`
	Category        string                `json:"category"`
	DiscountPercent *int                  `json:"discountPercent"`
	Colors          []models.ProductColor `json:"colors"`
}

type cartAddRequest struct {
	ProductID     *int64               `json:"product_id"`
	Quantity      *int                 `json:"quantity"`
	SelectedColor *models.ProductColor `json:"selected_color"`
}

type cartItemResponse struct {
	ID            int64                `json:"id"`
	Product       productResponse      `json:"product"`
	Quantity      int                  `json:"quantity"`
	SelectedColor *models.ProductColor `json:"selected_color"`
}

type favoriteAddRequest struct {
	ProductID *int64 `json:"product_id"`
}

type favoriteResponse struct {
	ID      int64           `json:"id"`
	Product productResponse `json:"product"`
}

func toUser(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

func toProduct(p *models.Product) productResponse {
	if p == nil {
		return productResponse{Colors: []models.ProductColor{}}
	}
	colors := make([]models.ProductColor, len(p.Colors))
	copy(colors, p.Colors)
	for i := range colors {
		if colors[i].Images == nil {
			colors[i].Images = []string{}
		}
	}
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Image:           p.Image,
		Description:     p.Description,
		Category:        p.Category,
		DiscountPercent: p.DiscountPercent,
		Colors:          colors,
	}
}

func toProducts(ps []*models.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toCartItem(it *models.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:            it.ID,
		Product:       toProduct(it.Product),
		Quantity:      it.Quantity,
		SelectedColor: it.SelectedColor,
	}
}

func toFavorite(f *models.Favorite) favoriteResponse {
	return favoriteResponse{ID: f.ID, Product: toProduct(f.Product)}
}
