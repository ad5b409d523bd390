package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dealspot/internal/core/apperr"
	"dealspot/internal/domain"
	"dealspot/internal/repo"
	"dealspot/internal/service"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	jwter := newTestJWTer()
	svc := service.NewAuthService(repo.NewUserRepo(db), jwter)

	u, tok, err := svc.Register("marcel", "marcel@example.com", "motdepasse")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, domain.RoleUser, u.Role)
	require.NotEqual(t, "motdepasse", u.PasswordHash)

	// token 能解析回本人
	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UID)
	require.Equal(t, domain.RoleUser, claims.Role)

	_, tok, err = svc.Login("marcel@example.com", "motdepasse")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
}

func TestRegisterDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuthService(repo.NewUserRepo(db), newTestJWTer())

	_, _, err := svc.Register("marcel", "marcel@example.com", "motdepasse")
	require.NoError(t, err)

	// 同邮箱和同用户名分别提示
	_, _, err = svc.Register("autre", "marcel@example.com", "motdepasse")
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
	require.Equal(t, "email already taken", err.Error())

	_, _, err = svc.Register("marcel", "autre@example.com", "motdepasse")
	require.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
	require.Equal(t, "username already taken", err.Error())
}

func TestLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuthService(repo.NewUserRepo(db), newTestJWTer())

	_, _, err := svc.Register("marcel", "marcel@example.com", "motdepasse")
	require.NoError(t, err)

	_, _, wrongPw := svc.Login("marcel@example.com", "mauvais")
	_, _, noUser := svc.Login("inconnu@example.com", "motdepasse")
	require.True(t, apperr.IsCode(wrongPw, apperr.CodeUnauthorized))
	require.True(t, apperr.IsCode(noUser, apperr.CodeUnauthorized))
	// 两种失败同一个提示，避免枚举邮箱
	require.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuthService(repo.NewUserRepo(db), newTestJWTer())
	u := seedUser(t, db, domain.RoleModerator)

	got, err := svc.Me(u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, got.Username)

	_, err = svc.Me("missing")
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
