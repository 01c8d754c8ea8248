package history

import (
	"context"
	"errors"

	"orefinder/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const maxLimit = 200

type UseCase struct {
	Events ports.SearchEventRepository
}

type Request struct {
	EntityID     int64
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events  []ports.SearchEvent `json:"events"`
	Summary Summary             `json:"summary"`
}

type Summary struct {
	Searches int            `json:"searches"`
	Found    int            `json:"found"`
	Closest  int            `json:"closest"`
	ByBand   map[string]int `json:"by_band"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.EntityID <= 0 || u.Events == nil {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	window := ports.EventWindow{From: req.OccurredFrom, To: req.OccurredTo}
	events, err := u.Events.ListByEntityID(ctx, req.EntityID, window, limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []ports.SearchEvent{}, Summary: summarize(nil)}, nil
		}
		return Response{}, err
	}
	return Response{Events: events, Summary: summarize(events)}, nil
}

func summarize(events []ports.SearchEvent) Summary {
	s := Summary{Closest: -1, ByBand: map[string]int{}}
	for _, evt := range events {
		s.Searches++
		if evt.Band != "" {
			s.ByBand[evt.Band]++
		}
		if !evt.Found {
			continue
		}
		s.Found++
		if s.Closest < 0 || evt.Distance < s.Closest {
			s.Closest = evt.Distance
		}
	}
	return s
}
