package cart

import (
	cartsvc "github.com/sahajbill/counter/internal/cart"
	"github.com/sahajbill/counter/pkg/upstream"
)

// Money crosses the wire as decimal strings so totals survive the trip exactly.
type lineDTO struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
	Stock       int    `json:"stock"`
}

type viewDTO struct {
	Lines     []lineDTO `json:"lines"`
	Total     string    `json:"total"`
	ItemCount int       `json:"itemCount"`
}

type checkoutDTO struct {
	Order *upstream.Order `json:"order"`
	Cart  viewDTO         `json:"cart"`
}

func newView(view cartsvc.View) viewDTO {
	lines := make([]lineDTO, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, lineDTO{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Subtotal:    line.Subtotal().Round(2).StringFixed(2),
			Stock:       line.Stock,
		})
	}
	return viewDTO{
		Lines:     lines,
		Total:     view.Total.StringFixed(2),
		ItemCount: view.ItemCount,
	}
}
