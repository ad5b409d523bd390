package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"dealspot/internal/domain"
)

type DealRepo struct{ db *gorm.DB }

func NewDealRepo(db *gorm.DB) *DealRepo { return &DealRepo{db: db} }

// 作者信息只带公开字段，email 不出列表
func authorPublic(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "role")
}

func (r *DealRepo) Create(d *domain.Deal) error { return r.db.Create(d).Error }

func (r *DealRepo) FindByID(id string) (*domain.Deal, error) {
	var d domain.Deal
	err := r.db.Preload("Author", authorPublic).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &d, err
}

func (r *DealRepo) ListByStatus(status domain.DealStatus, offset, limit int) ([]domain.Deal, int64, error) {
	var deals []domain.Deal
	tx := r.db.Model(&domain.Deal{}).Where("status = ?", status)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Preload("Author", authorPublic).
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&deals).Error
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// Search 标题/描述模糊匹配，限定状态。两边 LOWER 保证 mysql/postgres 行为一致
func (r *DealRepo) Search(status domain.DealStatus, q string) ([]domain.Deal, error) {
	var deals []domain.Deal
	like := "%" + strings.ToLower(q) + "%"
	err := r.db.Preload("Author", authorPublic).
		Where("status = ? AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", status, like, like).
		Order("created_at desc").
		Find(&deals).Error
	return deals, err
}

// Update 只写编辑白名单列。temperature 只走投票路径（SetTemperature），
// status 只走审核路径（SetStatus）：整行 Save 会把读后才落盘的票用旧值盖掉
func (r *DealRepo) Update(d *domain.Deal) error {
	return r.db.Model(d).
		Select("title", "description", "price", "original_price", "url", "category", "updated_at").
		Updates(d).Error
}

// SetStatus 审核专用，只动 status 一列
func (r *DealRepo) SetStatus(id string, status domain.DealStatus) error {
	return r.db.Model(&domain.Deal{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *DealRepo) Delete(id string) error {
	return r.db.Delete(&domain.Deal{}, "id = ?", id).Error
}
