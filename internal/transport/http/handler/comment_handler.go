package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	coreauth "dealspot/internal/core/auth"
	"dealspot/internal/service"
	mdw "dealspot/internal/transport/http/middleware"
	resp "dealspot/internal/transport/http/response"
)

type CommentHandler struct {
	svc   *service.CommentService
	jwter *coreauth.JWTer
	log   *zap.Logger
}

func NewCommentHandler(svc *service.CommentService, jwter *coreauth.JWTer, l *zap.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, jwter: jwter, log: l}
}

func (h *CommentHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/deals/:id/comments", h.list)

	authed := mdw.AuthJWT(h.jwter)
	g.POST("/deals/:id/comments", authed, h.create)
	g.PUT("/comments/:id", authed, h.update)
	g.DELETE("/comments/:id", authed, h.remove)
}

func (h *CommentHandler) list(c *gin.Context) {
	out, err := h.svc.ListByDeal(c.Param("id"))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

type commentIn struct {
	Content string `json:"content" binding:"required,min=3,max=500"`
}

func (h *CommentHandler) create(c *gin.Context) {
	var in commentIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	uid, _ := mdw.Identity(c)
	cm, err := h.svc.Create(c.Request.Context(), c.Param("id"), uid, in.Content)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.Created(c, cm)
}

func (h *CommentHandler) update(c *gin.Context) {
	var in commentIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	uid, role := mdw.Identity(c)
	cm, err := h.svc.Update(c.Request.Context(), c.Param("id"), uid, role, in.Content)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "comment updated", "comment": cm})
}

func (h *CommentHandler) remove(c *gin.Context) {
	uid, role := mdw.Identity(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), uid, role); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "comment deleted"})
}
