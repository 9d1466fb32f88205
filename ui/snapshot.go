package ui

import (
	"fmt"

	"resin_widget/api"
)

// defaultMaxRealmCurrency is shown when the API omits the cap.
const defaultMaxRealmCurrency = 2400

// Snapshot is the set of strings currently rendered. Each refresh replaces it.
type Snapshot struct {
	Resin         string
	DailyReward   string
	RealmCurrency string
}

func NewSnapshot(n *api.Notes) Snapshot {
	maxRealm := n.MaxRealmCurrency
	if maxRealm <= 0 {
		maxRealm = defaultMaxRealmCurrency
	}
	return Snapshot{
		Resin:         fmt.Sprintf("Resin: %d/%d", n.CurrentResin, n.MaxResin),
		DailyReward:   "Daily Reward Claimed: " + boolText(n.ClaimedCommission),
		RealmCurrency: fmt.Sprintf("Realm Currency: %d/%d", n.CurrentRealmCurrency, maxRealm),
	}
}

// ErrorSnapshot puts the failure on the first row and blanks the others.
func ErrorSnapshot(err error) Snapshot {
	if api.AsAPIError(err) != nil {
		return Snapshot{Resin: "Error fetching notes: " + err.Error()}
	}
	return Snapshot{Resin: "Error fetching data: " + err.Error()}
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
