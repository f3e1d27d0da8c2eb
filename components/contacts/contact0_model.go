package contacts

import (
	"errors"
	"time"
)

// UpdateFriendRequest is the typed partial update for a friend entry.
// Absent fields leave the current value untouched.
type UpdateFriendRequest struct {
	Favorite      *bool   `json:"favorite"`
	LastContacted *string `json:"last_contacted"`
}

func (me *UpdateFriendRequest) IsEmpty() bool {
	return me.Favorite == nil && me.LastContacted == nil
}

var lastContactedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseLastContacted(s string) (time.Time, error) {
	for _, layout := range lastContactedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("last contacted date is invalid")
}
