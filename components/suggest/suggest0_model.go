package suggest

const (
	TypeLongNotMessaged = "long-not-messaged"
	TypeNeverMessaged   = "never-messaged"
)

// LongNotMessagedDays is the calendar-day distance a friend has to exceed
// before a re-engagement nudge is emitted.
const LongNotMessagedDays = 4

type SuggestionPayload struct {
	AccountId string `json:"account_id"`
}

type Suggestion struct {
	Type    string             `json:"type"`
	Payload *SuggestionPayload `json:"payload,omitempty"`
}
