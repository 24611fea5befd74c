package mock

import (
	"context"
	"testing"

	"github.com/acme/voice-call-runner/internal/domain"
)

func TestSimulatedCallReachesEnded(t *testing.T) {
	p := NewProvider()

	handle, err := p.CreatePhoneCall(context.Background(), domain.CallRequest{FromNumber: "+1", ToNumber: "+2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if handle.CallID == "" {
		t.Fatal("empty call id")
	}

	var snap *domain.CallStatusSnapshot
	for i := 0; i < 10; i++ {
		snap, err = p.RetrieveCall(context.Background(), handle.CallID)
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if snap.CallStatus == domain.CallStatusEnded {
			break
		}
	}

	if snap.CallStatus != domain.CallStatusEnded {
		t.Fatalf("call never ended, last status %q", snap.CallStatus)
	}
	if snap.CallCost == nil || snap.CallAnalysis == nil {
		t.Errorf("ended snapshot missing cost or analysis: %+v", snap)
	}
}

func TestRetrieveUnknownCallFails(t *testing.T) {
	p := NewProvider()
	if _, err := p.RetrieveCall(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown call")
	}
}
