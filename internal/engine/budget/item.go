package budget

type Item struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Supplier      string  `json:"supplier,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	Status        string  `json:"status"` // planned, booked, paid
	CreatedAt     int64   `json:"created_at"`
}

const (
	StatusPlanned = "planned"
	StatusBooked  = "booked"
	StatusPaid    = "paid"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPlanned, StatusBooked, StatusPaid:
		return true
	}
	return false
}
