package domain

import "time"

type VoteType string

const (
	VoteHot  VoteType = "hot"
	VoteCold VoteType = "cold"
)

func (t VoteType) Valid() bool { return t == VoteHot || t == VoteCold }

// Vote 每个 (deal, user) 至多一条，重复投票原地改 type
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DealID    string    `gorm:"size:36;not null;uniqueIndex:idx_deal_user" json:"dealId"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_deal_user" json:"userId"`
	Type      VoteType  `gorm:"size:8;not null" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Vote) TableName() string { return "votes" }
