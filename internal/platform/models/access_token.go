package models

// AccessToken is the bearer credential presented to webhook endpoints to
// authenticate outbound deliveries for a wedding. The plaintext token is
// stored because it is replayed on every delivery; it is only ever shown
// unmasked once, at creation time.
type AccessToken struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Token     string `json:"-"`
	CreatedAt int64  `json:"created_at"`
}
