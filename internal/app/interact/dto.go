package interact

import (
	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"
)

const (
	ActionLeftClickBlock  = "left_click_block"
	ActionRightClickBlock = "right_click_block"
	ActionLeftClickAir    = "left_click_air"
	ActionRightClickAir   = "right_click_air"

	GameModeSurvival = "survival"

	DefaultWorldID = "world"
)

type Outcome string

const (
	OutcomeSearched     Outcome = "searched"
	OutcomeNoPermission Outcome = "no_permission"
	OutcomeUnmapped     Outcome = "unmapped_item"
	OutcomeIgnored      Outcome = "ignored_action"
	OutcomeThrottled    Outcome = "throttled"
	OutcomeNoTarget     Outcome = "no_target"
)

type Request struct {
	WorldID    string
	EntityID   int64
	Action     string
	HeldItem   string
	HeldAmount int
	GameMode   string
	Clicked    *voxel.Point
}

type Response struct {
	Outcome  Outcome        `json:"outcome"`
	Target   string         `json:"target,omitempty"`
	Result   *voxel.Result  `json:"result,omitempty"`
	Band     string         `json:"band,omitempty"`
	Messages []ports.Message `json:"messages,omitempty"`
	Steal    *StealOutcome  `json:"steal,omitempty"`
}

// StealOutcome tells the host what to apply to the player after a steal.
type StealOutcome struct {
	Damage          int  `json:"damage"`
	ConsumeHeld     bool `json:"consume_held"`
	RemainingAmount int  `json:"remaining_amount"`
	ClearHand       bool `json:"clear_hand"`
}
