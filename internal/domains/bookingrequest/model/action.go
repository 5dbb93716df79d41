package model

import (
	"context"
	"fmt"
	"strings"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Action is an admin decision on a pending booking. The set of variants is
// closed: Approve and Reject are the only implementations, and each one
// dispatches to its own Transitioner method.
type Action interface {
	Name() string
	Apply(ctx context.Context, t Transitioner, booking BookingRequest, adminID string) (Outcome, error)
	sealed()
}

// Transitioner performs the transition for each Action variant.
type Transitioner interface {
	Approve(ctx context.Context, booking BookingRequest, adminID string) (Outcome, error)
	Reject(ctx context.Context, booking BookingRequest, adminID string, action Reject) (Outcome, error)
}

type Outcome struct {
	Status  Status
	Message string
}

type Approve struct{}

func (Approve) Name() string { return ActionApprove }

func (Approve) Apply(ctx context.Context, t Transitioner, booking BookingRequest, adminID string) (Outcome, error) {
	return t.Approve(ctx, booking, adminID)
}

func (Approve) sealed() {}

type Reject struct {
	Reason *string
}

func (Reject) Name() string { return ActionReject }

func (r Reject) Apply(ctx context.Context, t Transitioner, booking BookingRequest, adminID string) (Outcome, error) {
	return t.Reject(ctx, booking, adminID, r)
}

func (Reject) sealed() {}

// ReasonOrDefault is the reason stored on the booking.
func (r Reject) ReasonOrDefault() string {
	if r.Reason == nil || strings.TrimSpace(*r.Reason) == "" {
		return DefaultRejectionReason
	}

	return *r.Reason
}

// ParseAction builds the Action named by name. reason is ignored for approvals.
func ParseAction(name string, reason *string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ActionApprove:
		return Approve{}, nil
	case ActionReject:
		return Reject{Reason: reason}, nil
	default:
		return nil, fmt.Errorf("unknown action %q, expected approve or reject", name)
	}
}

type Command struct {
	BookingID int64
	AdminID   string
	Action    Action
}
