package telephony

import (
	"context"

	"github.com/acme/voice-call-runner/internal/domain"
)

// Provider abstracts the remote voice-AI calling service. Implementations
// are black boxes; callers see only typed errors and snapshots.
type Provider interface {
	// CreatePhoneCall places an outbound call and returns its handle.
	CreatePhoneCall(ctx context.Context, req domain.CallRequest) (domain.CallHandle, error)

	// RetrieveCall reads the current status snapshot for a call.
	RetrieveCall(ctx context.Context, callID string) (*domain.CallStatusSnapshot, error)

	// UpdateCall patches the remote call record, replacing its metadata and
	// optionally opting the call out of sensitive data storage.
	UpdateCall(ctx context.Context, callID string, metadata map[string]any, optOutSensitiveDataStorage bool) (*domain.CallStatusSnapshot, error)
}
