package webhooks

// Event is one of the fixed set of notification types a wedding's features
// can emit. Adding a type means adding a constant here and a trigger at the
// feature that produces it; endpoints opt in per type.
type Event string

const (
	EventGuestRSVP       Event = "guestRsvp"
	EventTaskCompleted   Event = "taskCompleted"
	EventBudgetItemAdded Event = "budgetItemAdded"
	EventGiftReceived    Event = "giftReceived"
	EventSongSuggested   Event = "songSuggested"
)

var allEvents = map[Event]bool{
	EventGuestRSVP:       true,
	EventTaskCompleted:   true,
	EventBudgetItemAdded: true,
	EventGiftReceived:    true,
	EventSongSuggested:   true,
}

func (e Event) Valid() bool {
	return allEvents[e]
}

// Events returns the full taxonomy, for validating endpoint subscriptions.
func Events() []Event {
	return []Event{
		EventGuestRSVP,
		EventTaskCompleted,
		EventBudgetItemAdded,
		EventGiftReceived,
		EventSongSuggested,
	}
}

type GuestRSVPPayload struct {
	GuestName string `json:"guestName"`
	Status    string `json:"status"`
	OldStatus string `json:"oldStatus"`
}

type TaskCompletedPayload struct {
	TaskText  string `json:"taskText"`
	Completed bool   `json:"completed"`
}

type BudgetItemAddedPayload struct {
	Description   string  `json:"description"`
	Supplier      string  `json:"supplier"`
	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
}

type GiftReceivedPayload struct {
	GiftName    string `json:"giftName"`
	GiverName   string `json:"giverName"`
	IsAnonymous bool   `json:"isAnonymous"`
}

type SongSuggestedPayload struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	SuggestedBy string `json:"suggestedBy"`
}
