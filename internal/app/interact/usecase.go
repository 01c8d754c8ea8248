package interact

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/cooldown"
	"orefinder/internal/domain/proximity"
	"orefinder/internal/domain/targeting"
	"orefinder/internal/domain/voxel"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidRequest = errors.New("invalid interact request")

const TextEnderSteal = "ender_steal"

type StealConfig struct {
	Enabled bool
	Chance  int
}

type UseCase struct {
	Targets     targeting.Mapping
	Cooldowns   *cooldown.Registry
	World       ports.WorldProvider
	Sink        ports.MessageSink
	Permissions ports.PermissionChecker
	Events      ports.SearchEventRepository
	Metrics     ports.InteractMetrics
	Texts       map[string]string
	MaxRadius   int
	Steal       StealConfig
	Roll        func(n int) int
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.WorldID = strings.TrimSpace(req.WorldID)
	if req.WorldID == "" {
		req.WorldID = DefaultWorldID
	}
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	if req.EntityID <= 0 || req.Action == "" || u.Cooldowns == nil {
		return Response{}, ErrInvalidRequest
	}

	if u.Permissions != nil {
		ok, err := u.Permissions.HasPermission(ctx, req.EntityID, ports.PermissionUse)
		if err != nil {
			u.recordFailure()
			return Response{}, fmt.Errorf("check permission: %w", err)
		}
		if !ok {
			return u.skip(OutcomeNoPermission, ""), nil
		}
	}

	target, ok := u.Targets.Resolve(req.HeldItem)
	if !ok {
		return u.skip(OutcomeUnmapped, ""), nil
	}
	if req.Action != ActionLeftClickBlock {
		return u.skip(OutcomeIgnored, string(target)), nil
	}
	if !u.Cooldowns.Allow(req.EntityID) {
		return u.skip(OutcomeThrottled, string(target)), nil
	}
	if req.Clicked == nil {
		return u.skip(OutcomeNoTarget, string(target)), nil
	}

	result, err := u.search(ctx, req.WorldID, *req.Clicked, target)
	if err != nil {
		u.recordFailure()
		return Response{}, err
	}
	hlog.CtxDebugf(ctx, "orefinder: entity=%d world=%s origin=%s target=%s found=%v distance=%d",
		req.EntityID, req.WorldID, req.Clicked, target, result.Found, result.Distance)

	out := Response{Outcome: OutcomeSearched, Target: string(target), Result: &result}
	band, hasBand := proximity.BandFor(result)
	if hasBand {
		out.Band = string(band)
		if msg, ok := u.message(string(band), band.Color()); ok {
			if err := u.emit(ctx, req.EntityID, msg); err != nil {
				u.recordFailure()
				return Response{}, err
			}
			out.Messages = append(out.Messages, msg)
		}
	}
	if u.Metrics != nil {
		u.Metrics.RecordSearch(out.Band, result.Found)
	}

	if steal, ok := u.rollSteal(req); ok {
		out.Steal = &steal
		if msg, ok := u.message(TextEnderSteal, proximity.ColorNone); ok {
			if err := u.emit(ctx, req.EntityID, msg); err != nil {
				u.recordFailure()
				return Response{}, err
			}
			out.Messages = append(out.Messages, msg)
		}
		if u.Metrics != nil {
			u.Metrics.RecordSteal()
		}
	}

	u.record(ctx, req, result, out)
	return out, nil
}

func (u UseCase) search(ctx context.Context, worldID string, origin voxel.Point, target voxel.Material) (voxel.Result, error) {
	if u.World == nil || u.MaxRadius <= 0 {
		return voxel.NotFound(), nil
	}
	volume, err := u.World.VolumeAround(ctx, worldID, origin, u.MaxRadius-1)
	if err != nil {
		if errors.Is(err, ports.ErrWorldUnavailable) {
			return voxel.NotFound(), nil
		}
		return voxel.Result{}, fmt.Errorf("load world %s around %s: %w", worldID, origin, err)
	}
	return voxel.FindNearest(origin, target, u.MaxRadius, volume), nil
}

func (u UseCase) message(key string, color proximity.Color) (ports.Message, bool) {
	text := strings.TrimSpace(u.Texts[key])
	if text == "" {
		return ports.Message{}, false
	}
	return ports.Message{Key: key, Color: string(color), Text: text, SentAt: u.now()}, true
}

func (u UseCase) emit(ctx context.Context, entityID int64, msg ports.Message) error {
	if u.Sink == nil {
		return nil
	}
	if err := u.Sink.Emit(ctx, entityID, msg); err != nil {
		return fmt.Errorf("emit %s message: %w", msg.Key, err)
	}
	return nil
}

func (u UseCase) rollSteal(req Request) (StealOutcome, bool) {
	if !u.Steal.Enabled || u.Steal.Chance <= 0 {
		return StealOutcome{}, false
	}
	roll := u.Roll
	if roll == nil {
		roll = rand.Intn
	}
	if roll(u.Steal.Chance) != 0 {
		return StealOutcome{}, false
	}
	out := StealOutcome{Damage: 1, RemainingAmount: req.HeldAmount}
	if strings.EqualFold(strings.TrimSpace(req.GameMode), GameModeSurvival) {
		out.ConsumeHeld = true
		if req.HeldAmount > 1 {
			out.RemainingAmount = req.HeldAmount - 1
		} else {
			out.RemainingAmount = 0
			out.ClearHand = true
		}
	}
	return out, true
}

func (u UseCase) record(ctx context.Context, req Request, result voxel.Result, out Response) {
	if u.Events == nil {
		return
	}
	evt := ports.SearchEvent{
		EntityID:   req.EntityID,
		WorldID:    req.WorldID,
		Origin:     *req.Clicked,
		Target:     out.Target,
		Found:      result.Found,
		Distance:   result.Distance,
		At:         result.At,
		Band:       out.Band,
		Stolen:     out.Steal != nil,
		OccurredAt: u.now(),
	}
	// Best effort: the message was already delivered.
	if err := u.Events.Append(ctx, evt); err != nil {
		hlog.CtxWarnf(ctx, "orefinder: record search event for entity %d: %v", req.EntityID, err)
	}
}

func (u UseCase) skip(outcome Outcome, target string) Response {
	if u.Metrics != nil {
		u.Metrics.RecordSkipped(string(outcome))
	}
	return Response{Outcome: outcome, Target: target}
}

func (u UseCase) recordFailure() {
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}
