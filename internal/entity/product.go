package entity

type Product struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Price              float64  `json:"price"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Category           string   `json:"category"`
	Brand              string   `json:"brand,omitempty"`
	DiscountPercentage float64  `json:"discount_percentage"`
	Tags               []string `json:"tags"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
