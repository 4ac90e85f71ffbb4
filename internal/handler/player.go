package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
	"github.com/oguzcv/football-league-service/internal/service"
	"github.com/oguzcv/football-league-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

// Register mounts the player routes. Reads are public; profile edits
// require the caller to be the profile owner or an admin.
func (h *PlayerHandler) Register(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/players")
	{
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.GET("/:id/badges", h.getBadges)
		g.PUT("/:id", auth, h.updateProfile)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be a valid integer"}}))
		return 0, false
	}
	return id, true
}

func (h *PlayerHandler) list(c *gin.Context) {
	// Atoi errors are ignored intentionally, as 0 is a valid default for limit/offset, handled by the service layer.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListPlayers(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) getBadges(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	badges, err := h.svc.GetPlayerBadges(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, badges)
}

type updateProfileRequest struct {
	Name          string     `json:"name"`
	PhotoURL      string     `json:"photo_url"`
	Position      string     `json:"position"`
	BirthDate     *time.Time `json:"birth_date"`
	Height        int        `json:"height"`
	Weight        int        `json:"weight"`
	PreferredFoot string     `json:"preferred_foot"`
	Nationality   string     `json:"nationality"`
	Phone         string     `json:"phone"`
}

func (h *PlayerHandler) updateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return
	}
	if claims.PlayerID != id && claims.Role != model.RoleAdmin {
		response.WriteError(c, service.ErrForbidden)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.UpdateProfile(c.Request.Context(), id, service.UpdateProfileInput{
		Name:          req.Name,
		PhotoURL:      req.PhotoURL,
		Position:      req.Position,
		BirthDate:     req.BirthDate,
		Height:        req.Height,
		Weight:        req.Weight,
		PreferredFoot: req.PreferredFoot,
		Nationality:   req.Nationality,
		Phone:         req.Phone,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}
