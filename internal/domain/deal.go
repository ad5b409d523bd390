package domain

import "time"

type DealStatus string

const (
	StatusPending  DealStatus = "pending"
	StatusApproved DealStatus = "approved"
	StatusRejected DealStatus = "rejected"
)

func (s DealStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Categories 固定品类集合（与校验层的 oneof 保持同一来源）
var Categories = []string{"High-Tech", "Maison", "Mode", "Loisirs", "Autres"}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type Deal struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:100;not null" json:"title"`
	Description   string     `gorm:"size:500;not null" json:"description"`
	Price         float64    `gorm:"not null" json:"price"`
	OriginalPrice float64    `json:"originalPrice"`
	URL           string     `gorm:"size:2048" json:"url"`
	Category      string     `gorm:"size:32;not null" json:"category"`
	Status        DealStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	// Temperature 冗余存储的净票数，只由投票路径整体重算，绝不原地加减
	Temperature int       `gorm:"not null;default:0" json:"temperature"`
	AuthorID    string    `gorm:"size:36;not null;index" json:"authorId"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Deal) TableName() string { return "deals" }

// DealPatch 编辑允许的字段白名单，status/authorId/temperature 不在其列
type DealPatch struct {
	Title         *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	URL           *string
	Category      *string
}

// Apply 只合并提供的字段
func (p DealPatch) Apply(d *Deal) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		d.OriginalPrice = *p.OriginalPrice
	}
	if p.URL != nil {
		d.URL = *p.URL
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
}

type DealRepository interface {
	Create(d *Deal) error
	FindByID(id string) (*Deal, error)
	ListByStatus(status DealStatus, offset, limit int) ([]Deal, int64, error)
	Search(status DealStatus, q string) ([]Deal, error)
	// Update 只落编辑白名单字段，temperature/status 各有专用写入口
	Update(d *Deal) error
	SetStatus(id string, status DealStatus) error
	Delete(id string) error
}
