package order

import "time"

// Receipt is a fulfilled order as persisted for history.
type Receipt struct {
	ID        string        `json:"id"`
	Items     []ReceiptItem `json:"items"`
	Total     float64       `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
}

type ReceiptItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}
