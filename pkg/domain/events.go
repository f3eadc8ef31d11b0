package domain

import "context"

// RejectedEvent describes an interaction or change that was not applied.
type RejectedEvent struct {
	Account string `json:"account"`
	Path    Path   `json:"path"`
	Reason  string `json:"reason"`
}

// LifecycleHooks defines callbacks for settings observability.
type LifecycleHooks struct {
	OnChangeApplied  func(context.Context, *ChangeEvent)
	OnChangeRejected func(context.Context, *RejectedEvent)
}

// EmitApplied invokes OnChangeApplied when set.
func (h LifecycleHooks) EmitApplied(ctx context.Context, e *ChangeEvent) {
	if h.OnChangeApplied != nil {
		h.OnChangeApplied(ctx, e)
	}
}

// EmitRejected invokes OnChangeRejected when set.
func (h LifecycleHooks) EmitRejected(ctx context.Context, e *RejectedEvent) {
	if h.OnChangeRejected != nil {
		h.OnChangeRejected(ctx, e)
	}
}

// MergeHooks fans every event out to all hooks, in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnChangeApplied: func(ctx context.Context, e *ChangeEvent) {
			for _, h := range hooks {
				h.EmitApplied(ctx, e)
			}
		},
		OnChangeRejected: func(ctx context.Context, e *RejectedEvent) {
			for _, h := range hooks {
				h.EmitRejected(ctx, e)
			}
		},
	}
}
