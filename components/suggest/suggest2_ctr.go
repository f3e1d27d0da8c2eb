package suggest

import (
	"errors"
	"fmt"
	"time"

	"pingpal/components/account"
	"pingpal/envelope"
)

type SuggestionEngine struct {
	accountService account.I_AccountRepo
}

func NewSuggestionEngine(accountService account.I_AccountRepo) SuggestionEngine {
	return SuggestionEngine{accountService}
}

// ComputeSuggestions walks the account's friend list in order. Friends that
// no longer resolve to an account are skipped. A friend without a
// last_contacted stamp yields never-messaged; one whose last contact lies
// more than LongNotMessagedDays calendar days back yields long-not-messaged.
func (me *SuggestionEngine) ComputeSuggestions(accountUID string) *envelope.Response {
	Logger.V(2).Info(fmt.Sprintf("compute suggestions for %s", accountUID))

	if accountUID == "" {
		return envelope.NotFound("Account id not provided.")
	}

	acc, err := me.accountService.FindAccountById(accountUID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return envelope.Make(200, []*Suggestion{})
		}
		return envelope.Internal(err)
	}

	suggestions := make([]*Suggestion, 0, len(acc.Friends))
	now := time.Now()

	for _, fr := range acc.Friends {
		if fr == nil {
			continue
		}

		friend, err := me.accountService.FindAccountById(fr.AccountId)
		if err != nil || friend == nil {
			continue
		}

		if fr.LastContacted == nil {
			suggestions = append(suggestions, &Suggestion{
				Type:    TypeNeverMessaged,
				Payload: &SuggestionPayload{AccountId: friend.UID},
			})
			continue
		}

		if daysBetween(*fr.LastContacted, now) > LongNotMessagedDays {
			suggestions = append(suggestions, &Suggestion{
				Type:    TypeLongNotMessaged,
				Payload: &SuggestionPayload{AccountId: friend.UID},
			})
		}
	}

	Logger.V(2).Info(fmt.Sprintf("suggestion count %d", len(suggestions)))
	return envelope.Make(200, suggestions)
}

// daysBetween counts whole calendar days, truncating both stamps to
// midnight. Not a 24h rounding.
func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(to.Sub(from).Hours() / 24)
}
