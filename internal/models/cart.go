package models

// CartItem is a product together with the chosen size, color and quantity.
// Two items are the same cart line when ID and SelectedSize match.
type CartItem struct {
	Product
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}
