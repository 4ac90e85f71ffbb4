package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzcv/football-league-service/internal/engine"
	"github.com/oguzcv/football-league-service/internal/model"
	"github.com/oguzcv/football-league-service/internal/repository"
	"github.com/oguzcv/football-league-service/internal/service"
	"github.com/oguzcv/football-league-service/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

// Register mounts the match lifecycle routes. Everything that mutates a
// match requires authentication; reads stay public.
func (h *MatchHandler) Register(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/matches")
	{
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.POST("", auth, h.propose)
		g.POST("/:id/join", auth, h.join)
		g.POST("/:id/leave", auth, h.leave)
		g.POST("/:id/promote", auth, h.switchToMain)
		g.POST("/:id/delegate", auth, h.delegate)
		g.POST("/:id/draft", auth, h.draft)
		g.POST("/:id/finalize", auth, h.finalize)
	}
}

func (h *MatchHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListMatches(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}

type proposeMatchRequest struct {
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	PitchID  *int64    `json:"pitch_id"`
	Format   string    `json:"format"`
}

func (h *MatchHandler) propose(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return
	}
	var req proposeMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	m, err := h.svc.ProposeMatch(c.Request.Context(), service.ProposeMatchInput{
		Date:        req.Date,
		Location:    req.Location,
		PitchID:     req.PitchID,
		Format:      req.Format,
		OrganizerID: claims.PlayerID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, m)
}

func (h *MatchHandler) join(c *gin.Context) {
	h.participantAction(c, h.svc.JoinMatch)
}

func (h *MatchHandler) leave(c *gin.Context) {
	h.participantAction(c, h.svc.LeaveMatch)
}

func (h *MatchHandler) switchToMain(c *gin.Context) {
	h.participantAction(c, h.svc.SwitchToMainSquad)
}

// participantAction factors the shared shape of join/leave/promote: the
// acting player comes from the token, never the request body.
func (h *MatchHandler) participantAction(c *gin.Context, fn func(ctx context.Context, matchID, playerID int64) error) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return
	}
	if err := fn(c.Request.Context(), id, claims.PlayerID); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"status": "ok"})
}

type delegateRequest struct {
	NewOrganizerID int64 `json:"new_organizer_id"`
}

func (h *MatchHandler) delegate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return
	}
	var req delegateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if err := h.svc.DelegateOrganizer(c.Request.Context(), id, claims.PlayerID, req.NewOrganizerID); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"status": "ok"})
}

type draftRequest struct {
	PlayerIDs    []int64                  `json:"player_ids"`
	DummyKeepers int                      `json:"dummy_keepers"`
	Mode         string                   `json:"mode"`
	Manual       map[int64]model.TeamSide `json:"manual"`
}

func (h *MatchHandler) draft(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.DraftTeams(c.Request.Context(), service.DraftTeamsInput{
		MatchID:      id,
		PlayerIDs:    req.PlayerIDs,
		DummyKeepers: req.DummyKeepers,
		Mode:         engine.AssignmentMode(req.Mode),
		Manual:       req.Manual,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type finalizeRequest struct {
	ScoreA int                      `json:"score_a"`
	ScoreB int                      `json:"score_b"`
	Stats  []model.PlayerMatchStats `json:"stats"`
}

func (h *MatchHandler) finalize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	claims, ok := currentClaims(c)
	if !ok {
		response.WriteError(c, service.ErrInvalidCredentials)
		return
	}
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	m, err := h.svc.FinalizeMatch(c.Request.Context(), claims.PlayerID, service.FinalizeMatchInput{
		MatchID: id,
		ScoreA:  req.ScoreA,
		ScoreB:  req.ScoreB,
		Stats:   req.Stats,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}
