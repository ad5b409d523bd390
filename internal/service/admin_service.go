package service

import (
	"context"
	"math"

	"dealspot/internal/core/apperr"
	"dealspot/internal/core/cache"
	"dealspot/internal/domain"
)

type UserPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// AdminService 审核与用户管理。角色门禁主要在路由中间件，
// 服务内对 moderate 再做一次能力校验兜底
type AdminService struct {
	deals domain.DealRepository
	users userRepo
	cache *cache.Cache
}

func NewAdminService(deals domain.DealRepository, users userRepo) *AdminService {
	return &AdminService{deals: deals, users: users}
}

func (s *AdminService) WithCache(c *cache.Cache) *AdminService {
	s.cache = c
	return s
}

// PendingDeals 待审列表，新的在前
func (s *AdminService) PendingDeals() ([]domain.Deal, error) {
	deals, _, err := s.deals.ListByStatus(domain.StatusPending, 0, -1)
	if err != nil {
		return nil, apperr.Internal("list pending deals failed", err)
	}
	return deals, nil
}

// Moderate 任何状态都可以被有权限的人改成任何状态，没有额外迁移约束。
// NotFound 先查（兼容既有行为），角色兜底在其后
func (s *AdminService) Moderate(ctx context.Context, dealID string, status domain.DealStatus, role domain.Role) (*domain.Deal, error) {
	if !status.Valid() {
		return nil, apperr.BadRequest("invalid status")
	}
	d, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, apperr.Internal("load deal failed", err)
	}
	if d == nil {
		return nil, apperr.NotFound("deal not found")
	}
	if !role.CanModerate() {
		return nil, apperr.Forbidden("forbidden")
	}
	// 只写 status 一列，避免把整行旧快照（含温度）写回
	if err := s.deals.SetStatus(d.ID, status); err != nil {
		return nil, apperr.Internal("moderate deal failed", err)
	}
	d.Status = status
	if s.cache != nil {
		s.cache.Invalidate(ctx, keyDeal(dealID))
		s.cache.InvalidatePrefix(ctx, keyListPrefix)
	}
	return d, nil
}

func (s *AdminService) Users(page, limit int) (*UserPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	users, total, err := s.users.List((page-1)*limit, limit)
	if err != nil {
		return nil, apperr.Internal("list users failed", err)
	}
	return &UserPage{
		Users:      users,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// UpdateUserRole 只有 admin 路由能到这里；角色必须在枚举内
func (s *AdminService) UpdateUserRole(userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperr.BadRequest("invalid role")
	}
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperr.Internal("load user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	u.Role = role
	if err := s.users.Update(u); err != nil {
		return nil, apperr.Internal("update role failed", err)
	}
	return u, nil
}
