package api

import (
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
)

// Notes is the subset of the Genshin daily note the widget renders.
type Notes struct {
	CurrentResin         int
	MaxResin             int
	ResinRecoveryTime    time.Duration
	FinishedCommissions  int
	TotalCommissions     int
	ClaimedCommission    bool
	CurrentRealmCurrency int
	MaxRealmCurrency     int
	FetchedAt            time.Time
}

type envelope struct {
	Retcode int                `json:"retcode"`
	Message string             `json:"message"`
	Data    go_json.RawMessage `json:"data"`
}

type dailyNote struct {
	CurrentResin              int            `json:"current_resin"`
	MaxResin                  int            `json:"max_resin"`
	ResinRecoveryTime         flexibleInt    `json:"resin_recovery_time"`
	FinishedTaskNum           int            `json:"finished_task_num"`
	TotalTaskNum              int            `json:"total_task_num"`
	IsExtraTaskRewardReceived bool           `json:"is_extra_task_reward_received"`
	CurrentHomeCoin           int            `json:"current_home_coin"`
	MaxHomeCoin               int            `json:"max_home_coin"`
	DailyTask                 *dailyTaskNote `json:"daily_task"`
}

type dailyTaskNote struct {
	IsExtraTaskRewardReceived bool `json:"is_extra_task_reward_received"`
}

func (d dailyNote) toNotes(fetchedAt time.Time) *Notes {
	claimed := d.IsExtraTaskRewardReceived
	if d.DailyTask != nil {
		claimed = claimed || d.DailyTask.IsExtraTaskRewardReceived
	}
	return &Notes{
		CurrentResin:         d.CurrentResin,
		MaxResin:             d.MaxResin,
		ResinRecoveryTime:    time.Duration(d.ResinRecoveryTime) * time.Second,
		FinishedCommissions:  d.FinishedTaskNum,
		TotalCommissions:     d.TotalTaskNum,
		ClaimedCommission:    claimed,
		CurrentRealmCurrency: d.CurrentHomeCoin,
		MaxRealmCurrency:     d.MaxHomeCoin,
		FetchedAt:            fetchedAt,
	}
}

// flexibleInt decodes numbers the API sometimes sends as strings.
type flexibleInt int64

func (f *flexibleInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := go_json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = flexibleInt(n)
		return nil
	}
	var n int64
	if err := go_json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleInt(n)
	return nil
}
