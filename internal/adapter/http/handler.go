package httpadapter

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"orefinder/internal/app/history"
	"orefinder/internal/app/interact"
	"orefinder/internal/app/ports"
	"orefinder/internal/app/presence"
	"orefinder/internal/app/worldedit"
	"orefinder/internal/domain/proximity"
	"orefinder/internal/domain/voxel"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const tokenHeader = "X-Orefinder-Token"

type Handler struct {
	InteractUC  interact.UseCase
	PresenceUC  presence.UseCase
	HistoryUC   history.UseCase
	WorldEditUC worldedit.UseCase
	Inbox       ports.MessageInbox
	KPI         kpiSnapshotProvider
	// Token, when set, must be echoed in X-Orefinder-Token on every /api call.
	Token       string
	CORSOrigin  string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))
	s.OPTIONS("/*path", func(context.Context, *app.RequestContext) {})

	player := s.Group("/api/player", h.requireToken())
	player.POST("/interact", h.interact)
	player.POST("/quit", h.quit)
	player.GET("/messages", h.messages)
	player.GET("/history", h.history)

	worldGroup := s.Group("/api/world", h.requireToken())
	worldGroup.PUT("/blocks", h.setBlocks)

	s.GET("/ops/kpi", h.kpi)
}

type interactRequest struct {
	WorldID    string       `json:"world_id"`
	EntityID   int64        `json:"entity_id"`
	Action     string       `json:"action"`
	HeldItem   string       `json:"held_item"`
	HeldAmount int          `json:"held_amount"`
	GameMode   string       `json:"game_mode"`
	Clicked    *voxel.Point `json:"clicked,omitempty"`
}

type quitRequest struct {
	EntityID int64 `json:"entity_id"`
}

type messageView struct {
	ports.Message
	Formatted string `json:"formatted"`
}

func (h Handler) interact(c context.Context, ctx *app.RequestContext) {
	var body interactRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.InteractUC.Execute(c, interact.Request{
		WorldID:    body.WorldID,
		EntityID:   body.EntityID,
		Action:     body.Action,
		HeldItem:   body.HeldItem,
		HeldAmount: body.HeldAmount,
		GameMode:   body.GameMode,
		Clicked:    body.Clicked,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) quit(c context.Context, ctx *app.RequestContext) {
	var body quitRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.PresenceUC.Leave(c, presence.LeaveRequest{EntityID: body.EntityID}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) messages(c context.Context, ctx *app.RequestContext) {
	if h.Inbox == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "message inbox not configured")
		return
	}
	entityID, err := queryEntityID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	msgs, err := h.Inbox.Drain(c, entityID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{Message: m, Formatted: proximity.Color(m.Color).Format(m.Text)})
	}
	ctx.JSON(consts.StatusOK, map[string]any{"messages": out})
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	entityID, err := queryEntityID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.HistoryUC.Execute(c, history.Request{
		EntityID:     entityID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setBlocks(c context.Context, ctx *app.RequestContext) {
	var body worldedit.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.WorldEditUC.Apply(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingToken = errors.New("missing x-orefinder-token header")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidEntityID = errors.New("entity_id must be a positive integer")

func (h Handler) requireToken() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if err := h.checkToken(ctx); err != nil {
			writeError(ctx, err)
			ctx.Abort()
			return
		}
		ctx.Next(c)
	}
}

func (h Handler) checkToken(ctx *app.RequestContext) error {
	if h.Token == "" {
		return nil
	}
	got := strings.TrimSpace(string(ctx.GetHeader(tokenHeader)))
	if got == "" {
		return ErrMissingToken
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

func queryEntityID(ctx *app.RequestContext) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(ctx.Query("entity_id"))), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidEntityID
	}
	return id, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_token", err.Error())
	case errors.Is(err, ErrInvalidToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, ErrInvalidEntityID),
		errors.Is(err, interact.ErrInvalidRequest),
		errors.Is(err, presence.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, worldedit.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrWorldUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "world_unavailable", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.Errorf("unhandled request error: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
