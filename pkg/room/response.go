package room

import (
	"holdem-server/pkg/playable"
)

type tableRef struct {
	TableID string `json:"tableId"`
	Name    string `json:"name,omitempty"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

// newVerdict answers a join or create request, the reason is empty on success
func newVerdict(good, bad, ctx string, ref tableRef, reason string) *playable.Response {
	if reason != "" {
		return &playable.Response{
			Key:     bad,
			Value:   reason,
			Data:    ref,
			Context: ctx,
		}
	}

	return &playable.Response{
		Key:     good,
		Data:    ref,
		Context: ctx,
	}
}

func joinVerdict(ctx string, ref tableRef, reason string) *playable.Response {
	return newVerdict("goodJoin", "badJoin", ctx, ref, reason)
}

func createVerdict(ctx string, ref tableRef, reason string) *playable.Response {
	return newVerdict("goodCreate", "badCreate", ctx, ref, reason)
}
