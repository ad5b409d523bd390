package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"dealspot/internal/core/apperr"
	"dealspot/internal/core/cache"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/pkg/utils"
)

const (
	keyListPrefix = "deals:approved:"
)

func keyDeal(id string) string { return "deal:" + id }

func keyList(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", keyListPrefix, page, limit)
}

type DealPage struct {
	Deals      []domain.Deal `json:"deals"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type DealDetail struct {
	Deal        *domain.Deal     `json:"deal"`
	Comments    []domain.Comment `json:"comments"`
	Temperature int              `json:"temperature"`
}

type DealService struct {
	deals    domain.DealRepository
	comments domain.CommentRepository
	votes    *repo.VoteRepo
	cache    *cache.Cache // nil 表示未启用
	dealTTL  time.Duration
	listTTL  time.Duration
}

func NewDealService(deals domain.DealRepository, comments domain.CommentRepository, votes *repo.VoteRepo) *DealService {
	return &DealService{deals: deals, comments: comments, votes: votes}
}

// WithCache 挂 redis 读缓存，TTL 低于 0 时取默认值
func (s *DealService) WithCache(c *cache.Cache, dealTTL, listTTL time.Duration) *DealService {
	s.cache = c
	if dealTTL <= 0 {
		dealTTL = 30 * time.Second
	}
	if listTTL <= 0 {
		listTTL = 15 * time.Second
	}
	s.dealTTL, s.listTTL = dealTTL, listTTL
	return s
}

// invalidate deal 的任何写路径之后调用
func (s *DealService) invalidate(ctx context.Context, dealID string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, keyDeal(dealID))
	s.cache.InvalidatePrefix(ctx, keyListPrefix)
}

// ListApproved 公开分页列表，只看 approved
func (s *DealService) ListApproved(ctx context.Context, page, limit int) (*DealPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	load := func(context.Context) (*DealPage, error) {
		deals, total, err := s.deals.ListByStatus(domain.StatusApproved, (page-1)*limit, limit)
		if err != nil {
			return nil, apperr.Internal("list deals failed", err)
		}
		return &DealPage{
			Deals:      deals,
			Page:       page,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		}, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, keyList(page, limit), s.listTTL, load)
}

// Search 只搜 approved，q 为空由上游拦（这里兜底）
func (s *DealService) Search(ctx context.Context, q string) ([]domain.Deal, error) {
	if q == "" {
		return nil, apperr.BadRequest("missing query")
	}
	deals, err := s.deals.Search(domain.StatusApproved, q)
	if err != nil {
		return nil, apperr.Internal("search deals failed", err)
	}
	return deals, nil
}

// Detail deal + 评论（新的在前）+ 温度，温度从票仓现算
func (s *DealService) Detail(ctx context.Context, id string) (*DealDetail, error) {
	load := func(context.Context) (*DealDetail, error) {
		d, err := s.deals.FindByID(id)
		if err != nil {
			return nil, apperr.Internal("load deal failed", err)
		}
		if d == nil {
			return nil, apperr.NotFound("deal not found")
		}
		cms, err := s.comments.ListByDeal(id)
		if err != nil {
			return nil, apperr.Internal("load comments failed", err)
		}
		hot, err := s.votes.CountByType(id, domain.VoteHot)
		if err != nil {
			return nil, apperr.Internal("count votes failed", err)
		}
		cold, err := s.votes.CountByType(id, domain.VoteCold)
		if err != nil {
			return nil, apperr.Internal("count votes failed", err)
		}
		return &DealDetail{Deal: d, Comments: cms, Temperature: int(hot - cold)}, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, keyDeal(id), s.dealTTL, load)
}

type SubmitInput struct {
	Title         string
	Description   string
	Price         float64
	OriginalPrice float64
	URL           string
	Category      string
}

// Submit 新 deal 一律 pending，温度 0
func (s *DealService) Submit(authorID string, in SubmitInput) (*domain.Deal, error) {
	if !domain.ValidCategory(in.Category) {
		return nil, apperr.BadRequest("invalid category")
	}
	d := &domain.Deal{
		ID:            utils.NewID(),
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		URL:           in.URL,
		Category:      in.Category,
		Status:        domain.StatusPending,
		AuthorID:      authorID,
	}
	if err := s.deals.Create(d); err != nil {
		return nil, apperr.Internal("create deal failed", err)
	}
	return d, nil
}

// Edit 归属或 admin；普通 user 角色只能在 pending 期间改自己的。
// NotFound 先于 Forbidden 检查（兼容既有行为）
func (s *DealService) Edit(ctx context.Context, id string, patch domain.DealPatch, actorID string, role domain.Role) (*domain.Deal, error) {
	d, err := s.deals.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load deal failed", err)
	}
	if d == nil {
		return nil, apperr.NotFound("deal not found")
	}
	if !domain.CanMutate(d.AuthorID, actorID, role) {
		return nil, apperr.Forbidden("forbidden")
	}
	if d.Status != domain.StatusPending && role == domain.RoleUser {
		return nil, apperr.Forbidden("deal already moderated")
	}
	if patch.Category != nil && !domain.ValidCategory(*patch.Category) {
		return nil, apperr.BadRequest("invalid category")
	}
	patch.Apply(d)
	if err := s.deals.Update(d); err != nil {
		return nil, apperr.Internal("update deal failed", err)
	}
	s.invalidate(ctx, id)
	return d, nil
}

// Delete 归属或 admin，状态不限
func (s *DealService) Delete(ctx context.Context, id, actorID string, role domain.Role) error {
	d, err := s.deals.FindByID(id)
	if err != nil {
		return apperr.Internal("load deal failed", err)
	}
	if d == nil {
		return apperr.NotFound("deal not found")
	}
	if !domain.CanMutate(d.AuthorID, actorID, role) {
		return apperr.Forbidden("forbidden")
	}
	if err := s.deals.Delete(id); err != nil {
		return apperr.Internal("delete deal failed", err)
	}
	s.invalidate(ctx, id)
	return nil
}
