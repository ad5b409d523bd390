package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dealspot/internal/core/apperr"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/internal/service"
)

func newDealService(db *gorm.DB) *service.DealService {
	return service.NewDealService(repo.NewDealRepo(db), repo.NewCommentRepo(db), repo.NewVoteRepo(db))
}

func TestSubmitStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc := newDealService(db)
	author := seedUser(t, db, domain.RoleUser)

	d, err := svc.Submit(author.ID, service.SubmitInput{
		Title:       "Veste mi-saison soldée",
		Description: "Moitié prix sur la collection passée",
		Price:       45,
		Category:    "Mode",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, d.Status)
	require.Equal(t, 0, d.Temperature)
	require.Equal(t, author.ID, d.AuthorID)

	// 品类原样往返
	detail, err := svc.Detail(context.Background(), d.ID)
	require.NoError(t, err)
	require.Equal(t, "Mode", detail.Deal.Category)
}

func TestSubmitRejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newDealService(db)
	author := seedUser(t, db, domain.RoleUser)

	_, err := svc.Submit(author.ID, service.SubmitInput{
		Title:       "Titre valide ici",
		Description: "Description valide ici",
		Price:       10,
		Category:    "Gadgets",
	})
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
}

func TestEditOwnerOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	owner := seedUser(t, db, domain.RoleUser)
	admin := seedUser(t, db, domain.RoleAdmin)
	deal := seedDeal(t, db, owner.ID, domain.StatusPending)

	title := "Casque encore moins cher"
	_, err := svc.Edit(ctx, deal.ID, domain.DealPatch{Title: &title}, owner.ID, owner.Role)
	require.NoError(t, err)
	require.Equal(t, title, dealByID(t, db, deal.ID).Title)

	// 审核通过后普通 user 角色不能再改
	require.NoError(t, db.Model(&domain.Deal{}).Where("id = ?", deal.ID).
		Update("status", domain.StatusApproved).Error)
	_, err = svc.Edit(ctx, deal.ID, domain.DealPatch{Title: &title}, owner.ID, owner.Role)
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// admin 无视状态
	title2 := "Titre corrigé par admin"
	_, err = svc.Edit(ctx, deal.ID, domain.DealPatch{Title: &title2}, admin.ID, admin.Role)
	require.NoError(t, err)
	require.Equal(t, title2, dealByID(t, db, deal.ID).Title)
}

func TestEditPartialMergeKeepsProtectedFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	owner := seedUser(t, db, domain.RoleUser)
	deal := seedDeal(t, db, owner.ID, domain.StatusPending)

	price := 19.99
	got, err := svc.Edit(ctx, deal.ID, domain.DealPatch{Price: &price}, owner.ID, owner.Role)
	require.NoError(t, err)
	require.Equal(t, 19.99, got.Price)
	// 其它字段不动
	require.Equal(t, deal.Title, got.Title)
	require.Equal(t, deal.Status, got.Status)
	require.Equal(t, deal.AuthorID, got.AuthorID)
	require.Equal(t, deal.Temperature, got.Temperature)
}

func TestEditNonOwnerForbidden(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	owner := seedUser(t, db, domain.RoleUser)
	moderator := seedUser(t, db, domain.RoleModerator)
	deal := seedDeal(t, db, owner.ID, domain.StatusPending)

	title := "Tentative"
	_, err := svc.Edit(ctx, deal.ID, domain.DealPatch{Title: &title}, moderator.ID, moderator.Role)
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestDeleteOwnershipRules(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	owner := seedUser(t, db, domain.RoleUser)
	moderator := seedUser(t, db, domain.RoleModerator)
	admin := seedUser(t, db, domain.RoleAdmin)

	// moderator 不是 admin，不放行
	deal := seedDeal(t, db, owner.ID, domain.StatusApproved)
	err := svc.Delete(ctx, deal.ID, moderator.ID, moderator.Role)
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// 作者自己可以删，状态不限
	require.NoError(t, svc.Delete(ctx, deal.ID, owner.ID, owner.Role))

	deal2 := seedDeal(t, db, owner.ID, domain.StatusRejected)
	require.NoError(t, svc.Delete(ctx, deal2.ID, admin.ID, admin.Role))

	err = svc.Delete(ctx, deal2.ID, admin.ID, admin.Role)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestListApprovedOnlyWithPaging(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	author := seedUser(t, db, domain.RoleUser)

	seedDeal(t, db, author.ID, domain.StatusApproved)
	seedDeal(t, db, author.ID, domain.StatusApproved)
	seedDeal(t, db, author.ID, domain.StatusApproved)
	seedDeal(t, db, author.ID, domain.StatusPending)

	page, err := svc.ListApproved(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Deals, 2)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 2, page.TotalPages)
	for _, d := range page.Deals {
		require.Equal(t, domain.StatusApproved, d.Status)
	}
}

func TestSearchApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newDealService(db)
	author := seedUser(t, db, domain.RoleUser)

	approved := seedDeal(t, db, author.ID, domain.StatusApproved)
	seedDeal(t, db, author.ID, domain.StatusPending) // 同样标题但还没过审

	got, err := svc.Search(ctx, "casque")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, approved.ID, got[0].ID)

	// 大小写不敏感
	got, err = svc.Search(ctx, "CASQUE")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, approved.ID, got[0].ID)

	_, err = svc.Search(ctx, "")
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
}

func TestEditWriteBackKeepsConcurrentVotes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	deals := repo.NewDealRepo(db)
	votes := service.NewVoteService(repo.NewVoteRepo(db))
	author := seedUser(t, db, domain.RoleUser)
	voter := seedUser(t, db, domain.RoleUser)
	deal := seedDeal(t, db, author.ID, domain.StatusPending)

	// 编辑端先读出旧快照，票在它落盘之前写入
	stale, err := deals.FindByID(deal.ID)
	require.NoError(t, err)

	temp, err := votes.Cast(ctx, deal.ID, voter.ID, domain.VoteHot)
	require.NoError(t, err)
	require.Equal(t, 1, temp)

	stale.Title = "Titre mis à jour"
	require.NoError(t, deals.Update(stale))

	got := dealByID(t, db, deal.ID)
	require.Equal(t, "Titre mis à jour", got.Title)
	require.Equal(t, 1, got.Temperature)

	// 审核同理：status 单列写入，不碰温度
	require.NoError(t, deals.SetStatus(deal.ID, domain.StatusApproved))
	got = dealByID(t, db, deal.ID)
	require.Equal(t, domain.StatusApproved, got.Status)
	require.Equal(t, 1, got.Temperature)

	// 旧快照里的 pending 也不会把审核结果写回去
	stale.Title = "Titre encore ajusté"
	require.NoError(t, deals.Update(stale))
	got = dealByID(t, db, deal.ID)
	require.Equal(t, domain.StatusApproved, got.Status)
	require.Equal(t, 1, got.Temperature)
}

func TestDetailUnknownDeal(t *testing.T) {
	db := newTestDB(t)
	svc := newDealService(db)

	_, err := svc.Detail(context.Background(), "missing")
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
