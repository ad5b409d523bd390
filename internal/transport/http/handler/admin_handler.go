package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coreauth "dealspot/internal/core/auth"
	"dealspot/internal/domain"
	"dealspot/internal/service"
	mdw "dealspot/internal/transport/http/middleware"
	resp "dealspot/internal/transport/http/response"
)

// AdminHandler 审核端：deal 审核对 moderator/admin 开放，用户管理仅 admin
type AdminHandler struct {
	svc   *service.AdminService
	jwter *coreauth.JWTer
	log   *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, jwter *coreauth.JWTer, l *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, jwter: jwter, log: l}
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	moderation := mdw.AuthJWT(h.jwter, domain.RoleModerator, domain.RoleAdmin)
	g.GET("/deals/pending", moderation, h.pending)
	g.PUT("/deals/:id/moderate", moderation, h.moderate)

	adminOnly := mdw.AuthJWT(h.jwter, domain.RoleAdmin)
	g.GET("/users", adminOnly, h.users)
	g.PUT("/users/:id/role", adminOnly, h.updateRole)
}

func (h *AdminHandler) pending(c *gin.Context) {
	out, err := h.svc.PendingDeals()
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

type moderateIn struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

func (h *AdminHandler) moderate(c *gin.Context) {
	var in moderateIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	_, role := mdw.Identity(c)
	d, err := h.svc.Moderate(c.Request.Context(), c.Param("id"), domain.DealStatus(in.Status), role)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "deal " + in.Status, "deal": d})
}

func (h *AdminHandler) users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	out, err := h.svc.Users(page, limit)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

type roleIn struct {
	Role string `json:"role" binding:"required,oneof=user moderator admin"`
}

func (h *AdminHandler) updateRole(c *gin.Context) {
	var in roleIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	u, err := h.svc.UpdateUserRole(c.Param("id"), domain.Role(in.Role))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "role updated: " + in.Role, "user": u})
}
