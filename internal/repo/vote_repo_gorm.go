package repo

import (
	"errors"

	"gorm.io/gorm"

	"dealspot/internal/domain"
)

type VoteRepo struct{ db *gorm.DB }

func NewVoteRepo(db *gorm.DB) *VoteRepo { return &VoteRepo{db: db} }

// InTx 投票及其温度重算必须在同一事务里执行
func (r *VoteRepo) InTx(fn func(tx *VoteRepo) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&VoteRepo{db: tx})
	})
}

func (r *VoteRepo) FindByDealUser(dealID, userID string) (*domain.Vote, error) {
	var v domain.Vote
	err := r.db.First(&v, "deal_id = ? AND user_id = ?", dealID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *VoteRepo) Create(v *domain.Vote) error { return r.db.Create(v).Error }

func (r *VoteRepo) Save(v *domain.Vote) error { return r.db.Save(v).Error }

func (r *VoteRepo) Delete(id string) error {
	return r.db.Delete(&domain.Vote{}, "id = ?", id).Error
}

func (r *VoteRepo) CountByType(dealID string, t domain.VoteType) (int64, error) {
	var n int64
	err := r.db.Model(&domain.Vote{}).
		Where("deal_id = ? AND type = ?", dealID, t).
		Count(&n).Error
	return n, err
}

// SetTemperature 温度只能整体写入重算结果
func (r *VoteRepo) SetTemperature(dealID string, temperature int) error {
	return r.db.Model(&domain.Deal{}).
		Where("id = ?", dealID).
		UpdateColumn("temperature", temperature).Error
}

func (r *VoteRepo) DealExists(dealID string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Deal{}).Where("id = ?", dealID).Count(&n).Error
	return n > 0, err
}
