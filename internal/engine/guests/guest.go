package guests

type Guest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"` // pending, confirmed, declined
	GroupName string `json:"group_name,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}
