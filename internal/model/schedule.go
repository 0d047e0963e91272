package model

// ScheduleState is the persisted scheduler state. LastRunKey encodes the
// (date, hour) of the most recent fired slot.
type ScheduleState struct {
	Enabled    bool   `json:"enabled"`
	LastRunKey string `json:"last_run_key,omitempty"`
}
