package models

import "time"

// Preference actions a user can take on a recommended event.
const (
	ActionLike    = "like"
	ActionDismiss = "dismiss"
	ActionClick   = "click"
)

// Preferences holds a user's ticker sets. Liked and dismissed are
// mutually exclusive; the store enforces that on every mutation.
type Preferences struct {
	Liked     []string `json:"liked"`
	Dismissed []string `json:"dismissed"`
	Clicked   []string `json:"clicked"`
}

// HasDismissed reports whether the ticker is in the dismissed set.
func (p *Preferences) HasDismissed(ticker string) bool {
	for _, t := range p.Dismissed {
		if t == ticker {
			return true
		}
	}
	return false
}

// Interaction is the event published to the learning stream whenever a
// preference mutation happens.
type Interaction struct {
	UserID      string    `json:"user_id"`
	EventTicker string    `json:"event_ticker"`
	Action      string    `json:"action"`
	At          time.Time `json:"at"`
}
