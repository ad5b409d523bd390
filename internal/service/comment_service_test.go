package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dealspot/internal/core/apperr"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/internal/service"
)

func newCommentService(db *gorm.DB) *service.CommentService {
	return service.NewCommentService(repo.NewCommentRepo(db), repo.NewDealRepo(db))
}

func TestCreateCommentOnMissingDeal(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	user := seedUser(t, db, domain.RoleUser)

	_, err := svc.Create(context.Background(), "missing", user.ID, "premier ?")
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestCommentOwnershipRules(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newCommentService(db)
	owner := seedUser(t, db, domain.RoleUser)
	other := seedUser(t, db, domain.RoleUser)
	moderator := seedUser(t, db, domain.RoleModerator)
	admin := seedUser(t, db, domain.RoleAdmin)
	deal := seedDeal(t, db, owner.ID, domain.StatusApproved)

	cm, err := svc.Create(ctx, deal.ID, owner.ID, "vu en magasin, confirmé")
	require.NoError(t, err)

	// 非作者（含 moderator）改不动，内容保持原样
	_, err = svc.Update(ctx, cm.ID, other.ID, other.Role, "spam")
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	_, err = svc.Update(ctx, cm.ID, moderator.ID, moderator.Role, "spam")
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	var got domain.Comment
	require.NoError(t, db.First(&got, "id = ?", cm.ID).Error)
	require.Equal(t, "vu en magasin, confirmé", got.Content)

	// 作者可改
	updated, err := svc.Update(ctx, cm.ID, owner.ID, owner.Role, "confirmé, stock limité")
	require.NoError(t, err)
	require.Equal(t, "confirmé, stock limité", updated.Content)

	// admin 可删别人的
	require.NoError(t, svc.Delete(ctx, cm.ID, admin.ID, admin.Role))
	err = svc.Delete(ctx, cm.ID, admin.ID, admin.Role)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestListCommentsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newCommentService(db)
	user := seedUser(t, db, domain.RoleUser)
	deal := seedDeal(t, db, user.ID, domain.StatusPending)

	first, err := svc.Create(ctx, deal.ID, user.ID, "premier")
	require.NoError(t, err)
	second, err := svc.Create(ctx, deal.ID, user.ID, "deuxième")
	require.NoError(t, err)

	// created_at 同一秒时按插入序无保证，手动错开
	require.NoError(t, db.Model(&domain.Comment{}).Where("id = ?", first.ID).
		Update("created_at", first.CreatedAt.Add(-time.Minute)).Error)

	cms, err := svc.ListByDeal(deal.ID)
	require.NoError(t, err)
	require.Len(t, cms, 2)
	require.Equal(t, second.ID, cms[0].ID)
	require.Equal(t, first.ID, cms[1].ID)
}
