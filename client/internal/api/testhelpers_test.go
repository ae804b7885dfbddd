package api

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iamporter/iamporter-go/client/internal/types"
)

// recordingCaller records every operation it is asked to send and replies
// with a fixed envelope or error.
type recordingCaller struct {
	mu     sync.Mutex
	calls  []types.Operation
	params []types.Params

	env types.Envelope
	err error
}

func (r *recordingCaller) Call(_ context.Context, op types.Operation, p types.Params) (types.Envelope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	r.params = append(r.params, p)
	return r.env, r.err
}

func (r *recordingCaller) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func replying(v any) *recordingCaller {
	b, _ := json.Marshal(v)
	return &recordingCaller{env: types.Envelope{Response: b}}
}
