package repo

import (
	"errors"

	"gorm.io/gorm"

	"dealspot/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(cm *domain.Comment) error { return r.db.Create(cm).Error }

func (r *CommentRepo) FindByID(id string) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.First(&cm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cm, err
}

// ListByDeal 该 deal 全量评论，新的在前，不分页
func (r *CommentRepo) ListByDeal(dealID string) ([]domain.Comment, error) {
	var cms []domain.Comment
	err := r.db.Preload("Author", authorPublic).
		Where("deal_id = ?", dealID).
		Order("created_at desc").
		Find(&cms).Error
	return cms, err
}

func (r *CommentRepo) Update(cm *domain.Comment) error { return r.db.Save(cm).Error }

func (r *CommentRepo) Delete(id string) error {
	return r.db.Delete(&domain.Comment{}, "id = ?", id).Error
}
