package models

import "time"

// Participant - активный участник чата
type Participant struct {
	Name       string `gorm:"primaryKey;size:255" json:"name"`
	LastStatus int64  `gorm:"not null;index" json:"lastStatus"` // unix ms
}

func (Participant) TableName() string {
	return "participants"
}

// IdleCutoff - граница простоя в единицах lastStatus (мс), округленная вверх:
// lastStatus < IdleCutoff(now, threshold) ровно тогда, когда участник
// простаивает дольше threshold. Ту же границу получают хранилища в DeleteIdle.
func IdleCutoff(now time.Time, threshold time.Duration) time.Time {
	cutoff := now.Add(-threshold)
	if truncated := cutoff.Truncate(time.Millisecond); truncated.Before(cutoff) {
		return truncated.Add(time.Millisecond)
	}
	return cutoff
}

// IdleSince - последняя активность была раньше cutoff
func (p Participant) IdleSince(cutoff time.Time) bool {
	return p.LastStatus < cutoff.UnixMilli()
}
