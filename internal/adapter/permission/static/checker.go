package static

import (
	"context"
)

// Checker answers permission checks from fixed lists: deny wins over grant,
// grant wins over the default.
type Checker struct {
	DefaultAllow bool
	deny         map[int64]struct{}
	grant        map[int64]struct{}
}

func NewChecker(defaultAllow bool, deny, grant []int64) Checker {
	c := Checker{
		DefaultAllow: defaultAllow,
		deny:         make(map[int64]struct{}, len(deny)),
		grant:        make(map[int64]struct{}, len(grant)),
	}
	for _, id := range deny {
		c.deny[id] = struct{}{}
	}
	for _, id := range grant {
		c.grant[id] = struct{}{}
	}
	return c
}

func (c Checker) HasPermission(_ context.Context, entityID int64, _ string) (bool, error) {
	if _, ok := c.deny[entityID]; ok {
		return false, nil
	}
	if _, ok := c.grant[entityID]; ok {
		return true, nil
	}
	return c.DefaultAllow, nil
}
