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

type DealHandler struct {
	deals *service.DealService
	votes *service.VoteService
	jwter *coreauth.JWTer
	log   *zap.Logger
}

func NewDealHandler(deals *service.DealService, votes *service.VoteService, jwter *coreauth.JWTer, l *zap.Logger) *DealHandler {
	return &DealHandler{deals: deals, votes: votes, jwter: jwter, log: l}
}

func (h *DealHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/deals", h.list)
	g.GET("/deals/search", h.search)
	g.GET("/deals/:id", h.detail)

	authed := mdw.AuthJWT(h.jwter)
	g.POST("/deals", authed, h.submit)
	g.PUT("/deals/:id", authed, h.edit)
	g.DELETE("/deals/:id", authed, h.remove)
	g.POST("/deals/:id/vote", authed, h.castVote)
	g.DELETE("/deals/:id/vote", authed, h.removeVote)
}

func (h *DealHandler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	out, err := h.deals.ListApproved(c.Request.Context(), page, limit)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

func (h *DealHandler) search(c *gin.Context) {
	out, err := h.deals.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

func (h *DealHandler) detail(c *gin.Context) {
	out, err := h.deals.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, out)
}

type submitIn struct {
	Title         string   `json:"title" binding:"required,min=5,max=100"`
	Description   string   `json:"description" binding:"required,min=10,max=500"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	URL           string   `json:"url" binding:"omitempty,url"`
	Category      string   `json:"category" binding:"required,oneof=High-Tech Maison Mode Loisirs Autres"`
}

func (h *DealHandler) submit(c *gin.Context) {
	var in submitIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	uid, _ := mdw.Identity(c)
	sub := service.SubmitInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       *in.Price,
		URL:         in.URL,
		Category:    in.Category,
	}
	if in.OriginalPrice != nil {
		sub.OriginalPrice = *in.OriginalPrice
	}
	d, err := h.deals.Submit(uid, sub)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.Created(c, d)
}

// editIn 白名单字段，status/authorId/temperature 不可经此路径
type editIn struct {
	Title         *string  `json:"title" binding:"omitempty,min=5,max=100"`
	Description   *string  `json:"description" binding:"omitempty,min=10,max=500"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	URL           *string  `json:"url" binding:"omitempty,url"`
	Category      *string  `json:"category" binding:"omitempty,oneof=High-Tech Maison Mode Loisirs Autres"`
}

func (h *DealHandler) edit(c *gin.Context) {
	var in editIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	uid, role := mdw.Identity(c)
	patch := domain.DealPatch{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		URL:           in.URL,
		Category:      in.Category,
	}
	d, err := h.deals.Edit(c.Request.Context(), c.Param("id"), patch, uid, role)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, d)
}

func (h *DealHandler) remove(c *gin.Context) {
	uid, role := mdw.Identity(c)
	if err := h.deals.Delete(c.Request.Context(), c.Param("id"), uid, role); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "deal deleted"})
}

type voteIn struct {
	Type string `json:"type" binding:"required,oneof=hot cold"`
}

func (h *DealHandler) castVote(c *gin.Context) {
	var in voteIn
	if err := bindJSON(c, &in); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	uid, _ := mdw.Identity(c)
	temp, err := h.votes.Cast(c.Request.Context(), c.Param("id"), uid, domain.VoteType(in.Type))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "vote recorded", "temperature": temp})
}

func (h *DealHandler) removeVote(c *gin.Context) {
	uid, _ := mdw.Identity(c)
	temp, err := h.votes.Remove(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.OK(c, gin.H{"message": "vote removed", "temperature": temp})
}
