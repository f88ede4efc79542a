package model

import "time"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionBlocked  ConnectionStatus = "blocked"
)

// Connection links two accounts. PairLow/PairHigh hold the ids in sorted order so the
// unique index covers the unordered pair.
type Connection struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	RequesterID string           `gorm:"size:16;not null;index" json:"requester_id"`
	Requester   Account          `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"-"`
	TargetID    string           `gorm:"size:16;not null;index" json:"target_id"`
	Target      Account          `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE" json:"-"`
	PairLow     string           `gorm:"size:16;not null;uniqueIndex:uk_connection_pair" json:"pair_low"`
	PairHigh    string           `gorm:"size:16;not null;uniqueIndex:uk_connection_pair" json:"pair_high"`
	Status      ConnectionStatus `gorm:"size:16;not null;default:pending" json:"status"`
	BlockedBy   *string          `gorm:"size:16" json:"blocked_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// OrderedPair returns the two ids sorted, the key of the unordered pair.
func OrderedPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
