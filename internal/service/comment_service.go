package service

import (
	"context"

	"dealspot/internal/core/apperr"
	"dealspot/internal/core/cache"
	"dealspot/internal/domain"
	"dealspot/pkg/utils"
)

type CommentService struct {
	comments domain.CommentRepository
	deals    domain.DealRepository
	cache    *cache.Cache
}

func NewCommentService(comments domain.CommentRepository, deals domain.DealRepository) *CommentService {
	return &CommentService{comments: comments, deals: deals}
}

func (s *CommentService) WithCache(c *cache.Cache) *CommentService {
	s.cache = c
	return s
}

func (s *CommentService) invalidate(ctx context.Context, dealID string) {
	if s.cache == nil {
		return
	}
	// 详情页携带评论，写评论后同步失效
	s.cache.Invalidate(ctx, keyDeal(dealID))
}

// ListByDeal 不看 deal 状态，pending/rejected 也能读
func (s *CommentService) ListByDeal(dealID string) ([]domain.Comment, error) {
	cms, err := s.comments.ListByDeal(dealID)
	if err != nil {
		return nil, apperr.Internal("list comments failed", err)
	}
	return cms, nil
}

// Create 任何登录用户可评任何存在的 deal
func (s *CommentService) Create(ctx context.Context, dealID, authorID, content string) (*domain.Comment, error) {
	d, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, apperr.Internal("load deal failed", err)
	}
	if d == nil {
		return nil, apperr.NotFound("deal not found")
	}
	cm := &domain.Comment{
		ID:       utils.NewID(),
		Content:  content,
		DealID:   dealID,
		AuthorID: authorID,
	}
	if err := s.comments.Create(cm); err != nil {
		return nil, apperr.Internal("create comment failed", err)
	}
	s.invalidate(ctx, dealID)
	return cm, nil
}

// Update 归属判定走统一谓词，moderator 不放行
func (s *CommentService) Update(ctx context.Context, id, actorID string, role domain.Role, content string) (*domain.Comment, error) {
	cm, err := s.comments.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load comment failed", err)
	}
	if cm == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if !domain.CanMutate(cm.AuthorID, actorID, role) {
		return nil, apperr.Forbidden("forbidden")
	}
	cm.Content = content
	if err := s.comments.Update(cm); err != nil {
		return nil, apperr.Internal("update comment failed", err)
	}
	s.invalidate(ctx, cm.DealID)
	return cm, nil
}

func (s *CommentService) Delete(ctx context.Context, id, actorID string, role domain.Role) error {
	cm, err := s.comments.FindByID(id)
	if err != nil {
		return apperr.Internal("load comment failed", err)
	}
	if cm == nil {
		return apperr.NotFound("comment not found")
	}
	if !domain.CanMutate(cm.AuthorID, actorID, role) {
		return apperr.Forbidden("forbidden")
	}
	if err := s.comments.Delete(id); err != nil {
		return apperr.Internal("delete comment failed", err)
	}
	s.invalidate(ctx, cm.DealID)
	return nil
}
