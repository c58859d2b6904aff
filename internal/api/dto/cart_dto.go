package dto

import "github.com/spec-kit/cafeteria-service/internal/service"

// CartItemRequest payload for adding a product or changing its quantity.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItemResponse one cart line joined against the current menu.
type CartItemResponse struct {
	Product       ProductResponse `json:"product"`
	Quantity      int             `json:"quantity"`
	SubtotalCents int64           `json:"subtotal_cents"`
}

// CartResponse the whole cart with its running total.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

func FromCartItems(items []service.CartItem) CartResponse {
	out := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, CartItemResponse{
			Product:       FromProduct(it.Product),
			Quantity:      it.Quantity,
			SubtotalCents: it.SubtotalCents(),
		})
		out.TotalCents += it.SubtotalCents()
	}
	return out
}
