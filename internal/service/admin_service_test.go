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

func newAdminService(db *gorm.DB) *service.AdminService {
	return service.NewAdminService(repo.NewDealRepo(db), repo.NewUserRepo(db))
}

func TestModerateTransitions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newAdminService(db)
	author := seedUser(t, db, domain.RoleUser)
	deal := seedDeal(t, db, author.ID, domain.StatusPending)

	// moderator 就够了
	got, err := svc.Moderate(ctx, deal.ID, domain.StatusApproved, domain.RoleModerator)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, got.Status)
	require.Equal(t, domain.StatusApproved, dealByID(t, db, deal.ID).Status)

	// 没有迁移约束，approved 也能转 rejected
	got, err = svc.Moderate(ctx, deal.ID, domain.StatusRejected, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status)
}

func TestModerateGuards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newAdminService(db)
	author := seedUser(t, db, domain.RoleUser)
	deal := seedDeal(t, db, author.ID, domain.StatusPending)

	_, err := svc.Moderate(ctx, deal.ID, "archived", domain.RoleAdmin)
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))

	_, err = svc.Moderate(ctx, "missing", domain.StatusApproved, domain.RoleAdmin)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	_, err = svc.Moderate(ctx, deal.ID, domain.StatusApproved, domain.RoleUser)
	require.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	require.Equal(t, domain.StatusPending, dealByID(t, db, deal.ID).Status)
}

func TestPendingDealsOnlyPending(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	author := seedUser(t, db, domain.RoleUser)
	p := seedDeal(t, db, author.ID, domain.StatusPending)
	seedDeal(t, db, author.ID, domain.StatusApproved)
	seedDeal(t, db, author.ID, domain.StatusRejected)

	deals, err := svc.PendingDeals()
	require.NoError(t, err)
	require.Len(t, deals, 1)
	require.Equal(t, p.ID, deals[0].ID)
}

func TestUpdateUserRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	u := seedUser(t, db, domain.RoleUser)

	got, err := svc.UpdateUserRole(u.ID, domain.RoleModerator)
	require.NoError(t, err)
	require.Equal(t, domain.RoleModerator, got.Role)

	_, err = svc.UpdateUserRole(u.ID, "superuser")
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))

	_, err = svc.UpdateUserRole("missing", domain.RoleAdmin)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestUsersPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	for i := 0; i < 3; i++ {
		seedUser(t, db, domain.RoleUser)
	}

	page, err := svc.Users(1, 2)
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	require.Equal(t, 2, page.TotalPages)
}
