package presence

import (
	"context"
	"errors"
	"fmt"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/cooldown"
)

var ErrInvalidRequest = errors.New("invalid presence request")

type UseCase struct {
	Cooldowns *cooldown.Registry
	Inbox     ports.MessageInbox
}

type LeaveRequest struct {
	EntityID int64
}

// Leave frees the entity's cooldown slot and drops undelivered messages.
func (u UseCase) Leave(ctx context.Context, req LeaveRequest) error {
	if req.EntityID <= 0 {
		return ErrInvalidRequest
	}
	if u.Cooldowns != nil {
		u.Cooldowns.Remove(req.EntityID)
	}
	if u.Inbox != nil {
		if err := u.Inbox.Discard(ctx, req.EntityID); err != nil {
			return fmt.Errorf("discard inbox: %w", err)
		}
	}
	return nil
}
