package model

import "github.com/google/uuid"

// CartLine is one resolved cart entry with pricing against the live
// catalogue.
type CartLine struct {
	ItemID    uuid.UUID `json:"id"`
	Product   Product   `json:"product"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"price"`
	LineTotal float64   `json:"total"`
}

// CartView is the derived cart returned to clients. It is recomputed on
// every read; no totals are ever stored.
type CartView struct {
	Items     []CartLine `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Tax       float64    `json:"tax"`
	Shipping  float64    `json:"shipping"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// BuildCartView prices each line and derives the cart totals.
func BuildCartView(items []CartItem, products map[uuid.UUID]Product) CartView {
	view := CartView{Items: []CartLine{}}
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			// Product vanished from the catalogue; drop the line silently.
			continue
		}
		price := product.EffectivePrice()
		line := CartLine{
			ItemID:    item.ID,
			Product:   product,
			Quantity:  item.Quantity,
			UnitPrice: price,
			LineTotal: price * float64(item.Quantity),
		}
		view.Items = append(view.Items, line)
		view.Subtotal += line.LineTotal
		view.ItemCount += item.Quantity
	}
	view.Tax = view.Subtotal * TaxRate
	view.Shipping = ShippingFor(view.Subtotal)
	view.Total = view.Subtotal + view.Tax + view.Shipping
	return view
}
