package payment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// FakeGateway is an in-memory Gateway used by tests and by local
// development when no gateway key is configured. It confirms every charge
// at the requested amount unless FailWith is set.
type FakeGateway struct {
	mu       sync.Mutex
	seq      atomic.Int64
	FailWith error
	Charges  []ChargeRequest

	// OnCharge, when set, runs after a successful charge is recorded.
	// Tests use it to interleave work with an in-flight checkout.
	OnCharge func(ChargeRequest)
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// CreateCharge records the request and returns a deterministic charge id.
func (g *FakeGateway) CreateCharge(_ context.Context, req ChargeRequest) (Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailWith != nil {
		return Charge{}, g.FailWith
	}

	g.Charges = append(g.Charges, req)
	if g.OnCharge != nil {
		g.OnCharge(req)
	}
	return Charge{
		ID:     fmt.Sprintf("ch_fake_%06d", g.seq.Add(1)),
		Amount: req.Amount,
		Status: "succeeded",
	}, nil
}

// Calls reports how many charges were attempted.
func (g *FakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Charges)
}
