package soundtrack

type Song struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	SuggestedBy string `json:"suggested_by"`
	CreatedAt   int64  `json:"created_at"`
}
