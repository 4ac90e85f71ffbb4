package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/service"
	"github.com/oguzcv/football-league-service/pkg/response"
)

type PitchHandler struct {
	svc service.PitchService
}

func NewPitchHandler(svc service.PitchService) *PitchHandler { return &PitchHandler{svc: svc} }

// Register mounts the venue routes. Listing is public; create and delete
// need an authenticated admin.
func (h *PitchHandler) Register(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/pitches")
	{
		g.GET("", h.list)
		g.POST("", auth, h.create)
		g.DELETE("/:id", auth, h.delete)
	}
}

func (h *PitchHandler) list(c *gin.Context) {
	pitches, err := h.svc.ListPitches(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, pitches)
}

type createPitchRequest struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Phone    string   `json:"phone"`
	WhatsApp string   `json:"whatsapp"`
	Notes    string   `json:"notes"`
}

func (h *PitchHandler) create(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req createPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	pitch, err := h.svc.CreatePitch(c.Request.Context(), model.Pitch{
		Name:     req.Name,
		Address:  req.Address,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Phone:    req.Phone,
		WhatsApp: req.WhatsApp,
		Notes:    req.Notes,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, pitch)
}

func (h *PitchHandler) delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePitch(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"status": "ok"})
}

func requireAdmin(c *gin.Context) bool {
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return false
	}
	if claims.Role != model.RoleAdmin {
		response.WriteError(c, service.ErrForbidden)
		return false
	}
	return true
}
