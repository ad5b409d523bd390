package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coreauth "dealspot/internal/core/auth"
	"dealspot/internal/service"
	mdw "dealspot/internal/transport/http/middleware"
	resp "dealspot/internal/transport/http/response"
)

type AuthHandler struct {
	svc   *service.AuthService
	jwter *coreauth.JWTer
	log   *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, jwter *coreauth.JWTer, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, jwter: jwter, log: l}
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.GET("/me", mdw.AuthJWT(h.jwter), h.me)
}

type registerIn struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var in registerIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	u, tok, err := h.svc.Register(in.Username, in.Email, in.Password)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.Created(c, gin.H{"token": tok, "user": u})
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var in loginIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	u, tok, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"token": tok, "user": u})
}

func (h *AuthHandler) me(c *gin.Context) {
	uid, _ := mdw.Identity(c)
	u, err := h.svc.Me(uid)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, u)
}
