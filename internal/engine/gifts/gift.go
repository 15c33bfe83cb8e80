package gifts

type ReceivedGift struct {
	ID          string `json:"id"`
	GiftName    string `json:"gift_name"`
	GiverName   string `json:"giver_name,omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`
	CreatedAt   int64  `json:"created_at"`
}
