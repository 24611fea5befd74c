package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/acme/voice-call-runner/internal/domain"
	"github.com/acme/voice-call-runner/internal/telephony"
)

// Provider simulates the remote calling service for dry runs. Calls ring
// for a few polls, then end with a synthetic recording-less snapshot.
type Provider struct {
	mu        sync.Mutex
	rng       *rand.Rand
	pollsLeft int
	last      domain.CallStatusSnapshot
}

var _ telephony.Provider = (*Provider)(nil)

// NewProvider constructs a mock provider with deterministic randomness.
func NewProvider() *Provider {
	return &Provider{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreatePhoneCall registers a simulated call.
func (p *Provider) CreatePhoneCall(ctx context.Context, req domain.CallRequest) (domain.CallHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	callID := fmt.Sprintf("mock_%08x", p.rng.Uint32())
	p.pollsLeft = 2 + p.rng.Intn(3)
	p.last = domain.CallStatusSnapshot{
		CallID:     callID,
		CallStatus: domain.CallStatusRegistered,
		FromNumber: req.FromNumber,
		ToNumber:   req.ToNumber,
	}
	return domain.CallHandle{CallID: callID}, nil
}

// RetrieveCall advances the simulated call one step per poll.
func (p *Provider) RetrieveCall(ctx context.Context, callID string) (*domain.CallStatusSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if callID != p.last.CallID {
		return nil, fmt.Errorf("mock: unknown call %q", callID)
	}

	if p.pollsLeft > 0 {
		p.pollsLeft--
		p.last.CallStatus = domain.CallStatusOngoing
	} else {
		p.last.CallStatus = domain.CallStatusEnded
		duration := float64(5 + p.rng.Intn(55))
		p.last.CallCost = &domain.CallCost{
			TotalDurationSeconds: duration,
			CombinedCost:         duration * 0.01,
		}
		p.last.CallAnalysis = &domain.CallAnalysis{CallSummary: "Simulated call completed."}
	}

	snap := p.last
	return &snap, nil
}

// UpdateCall clears the simulated record's metadata.
func (p *Provider) UpdateCall(ctx context.Context, callID string, metadata map[string]any, optOutSensitiveDataStorage bool) (*domain.CallStatusSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if callID != p.last.CallID {
		return nil, fmt.Errorf("mock: unknown call %q", callID)
	}

	p.last.Metadata = metadata
	snap := p.last
	return &snap, nil
}
