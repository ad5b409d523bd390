package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"dealspot/internal/core/apperr"
	"dealspot/internal/core/cache"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/pkg/utils"
)

var (
	votesCast = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "deal_votes_cast_total", Help: "Votes cast, by type"},
		[]string{"type"},
	)
	votesRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "deal_votes_removed_total", Help: "Votes removed"},
	)
)

func init() { prometheus.MustRegister(votesCast, votesRemoved) }

// VoteService 票仓：一人一票，温度永远从票面整体重算
type VoteService struct {
	votes *repo.VoteRepo
	cache *cache.Cache // nil 表示未启用
}

func NewVoteService(votes *repo.VoteRepo) *VoteService { return &VoteService{votes: votes} }

func (s *VoteService) WithCache(c *cache.Cache) *VoteService {
	s.cache = c
	return s
}

func (s *VoteService) invalidate(ctx context.Context, dealID string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, keyDeal(dealID))
	s.cache.InvalidatePrefix(ctx, keyListPrefix)
}

// Cast 重复投票原地改 type，不新增行；写票和重算温度在同一事务
func (s *VoteService) Cast(ctx context.Context, dealID, userID string, t domain.VoteType) (int, error) {
	if !t.Valid() {
		return 0, apperr.BadRequest("invalid vote type")
	}
	var temperature int
	err := s.votes.InTx(func(tx *repo.VoteRepo) error {
		ok, err := tx.DealExists(dealID)
		if err != nil {
			return apperr.Internal("load deal failed", err)
		}
		if !ok {
			return apperr.NotFound("deal not found")
		}

		v, err := tx.FindByDealUser(dealID, userID)
		if err != nil {
			return apperr.Internal("load vote failed", err)
		}
		if v != nil {
			v.Type = t
			if err := tx.Save(v); err != nil {
				return apperr.Internal("save vote failed", err)
			}
		} else {
			v = &domain.Vote{ID: utils.NewID(), DealID: dealID, UserID: userID, Type: t}
			if err := tx.Create(v); err != nil {
				return apperr.Internal("create vote failed", err)
			}
		}

		temperature, err = recompute(tx, dealID)
		return err
	})
	if err != nil {
		return 0, err
	}
	votesCast.WithLabelValues(string(t)).Inc()
	s.invalidate(ctx, dealID)
	return temperature, nil
}

// Remove 没投过票就是 404，温度同样整体重算
func (s *VoteService) Remove(ctx context.Context, dealID, userID string) (int, error) {
	var temperature int
	err := s.votes.InTx(func(tx *repo.VoteRepo) error {
		v, err := tx.FindByDealUser(dealID, userID)
		if err != nil {
			return apperr.Internal("load vote failed", err)
		}
		if v == nil {
			return apperr.NotFound("vote not found")
		}
		if err := tx.Delete(v.ID); err != nil {
			return apperr.Internal("delete vote failed", err)
		}

		temperature, err = recompute(tx, dealID)
		return err
	})
	if err != nil {
		return 0, err
	}
	votesRemoved.Inc()
	s.invalidate(ctx, dealID)
	return temperature, nil
}

// recompute 双边计数后落盘，绝不增量调整
func recompute(tx *repo.VoteRepo, dealID string) (int, error) {
	hot, err := tx.CountByType(dealID, domain.VoteHot)
	if err != nil {
		return 0, apperr.Internal("count votes failed", err)
	}
	cold, err := tx.CountByType(dealID, domain.VoteCold)
	if err != nil {
		return 0, apperr.Internal("count votes failed", err)
	}
	temperature := int(hot - cold)
	if err := tx.SetTemperature(dealID, temperature); err != nil {
		return 0, apperr.Internal("persist temperature failed", err)
	}
	return temperature, nil
}
