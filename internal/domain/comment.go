package domain

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	DealID    string    `gorm:"size:36;not null;index" json:"dealId"`
	AuthorID  string    `gorm:"size:36;not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Comment) TableName() string { return "comments" }

type CommentRepository interface {
	Create(cm *Comment) error
	FindByID(id string) (*Comment, error)
	ListByDeal(dealID string) ([]Comment, error)
	Update(cm *Comment) error
	Delete(id string) error
}
