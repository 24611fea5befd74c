package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/acme/voice-call-runner/internal/domain"
	"github.com/acme/voice-call-runner/internal/repository"
	"github.com/acme/voice-call-runner/internal/telephony"
	apperrors "github.com/acme/voice-call-runner/pkg/errors"
	"github.com/acme/voice-call-runner/pkg/logger"
)

// Fetcher downloads a remote artifact into a local file. A sentinel or
// empty url must be a no-op.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Params configure one lifecycle run.
type Params struct {
	MaxWait            time.Duration
	PollInterval       time.Duration
	ScrubSensitiveData bool
}

// Controller drives a single call through its lifecycle: initiate, poll
// until terminal, extract and persist results, optionally scrub the remote
// record. One call per run, no concurrency.
type Controller struct {
	provider telephony.Provider
	fetcher  Fetcher
	store    repository.ArtifactStore
	logger   *logger.Logger

	sleep func(time.Duration)
	now   func() time.Time
}

// NewController wires the controller's collaborators.
func NewController(provider telephony.Provider, fetcher Fetcher, store repository.ArtifactStore, lg *logger.Logger) *Controller {
	return &Controller{
		provider: provider,
		fetcher:  fetcher,
		store:    store,
		logger:   lg,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Run executes one call lifecycle. It returns a non-nil outcome unless a
// fatal condition (initiation failure, no snapshot ever obtained) aborts
// the run; recoverable failures are logged and reflected in the outcome.
func (c *Controller) Run(ctx context.Context, req domain.CallRequest, p Params) (*domain.CallOutcome, error) {
	if p.MaxWait <= 0 || p.PollInterval <= 0 {
		return nil, fmt.Errorf("%w: max wait and poll interval must be positive", apperrors.ErrValidation)
	}

	runID := uuid.NewString()
	tracer := otel.Tracer("callrunner.lifecycle")

	ctx, span := tracer.Start(ctx, "call.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("call.to_number", req.ToNumber),
	))
	defer span.End()

	handle, err := c.initiate(ctx, tracer, req)
	if err != nil {
		span.RecordError(err)
		c.logger.WithRun(runID, "").Error("call initiation failed", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.String("call.id", handle.CallID))

	lg := c.logger.WithRun(runID, handle.CallID)
	lg.Info("call initiated")

	last, pollErr, timedOut := c.poll(ctx, tracer, lg, handle, p)
	if last == nil {
		err := fmt.Errorf("%w: call %s", apperrors.ErrNoCallData, handle.CallID)
		if pollErr != nil {
			err = fmt.Errorf("%w: call %s: %v", apperrors.ErrNoCallData, handle.CallID, pollErr)
		}
		span.RecordError(err)
		lg.Error("no snapshot obtained, aborting", zap.Error(err))
		return nil, err
	}

	outcome := &domain.CallOutcome{
		CallID:   handle.CallID,
		Snapshot: last,
		TimedOut: timedOut,
	}
	if pollErr != nil {
		outcome.PollError = pollErr.Error()
	}

	outcome.Fields = c.extract(ctx, tracer, lg, last)
	c.persist(ctx, tracer, lg, outcome)

	if p.ScrubSensitiveData {
		outcome.Scrubbed = c.scrub(ctx, tracer, lg, handle.CallID)
	}

	lg.Info("call lifecycle complete",
		zap.Bool("timed_out", outcome.TimedOut),
		zap.String("status", string(last.CallStatus)))
	return outcome, nil
}

func (c *Controller) initiate(ctx context.Context, tracer trace.Tracer, req domain.CallRequest) (domain.CallHandle, error) {
	ctx, span := tracer.Start(ctx, "call.initiate")
	defer span.End()

	handle, err := c.provider.CreatePhoneCall(ctx, req)
	if err != nil {
		span.RecordError(err)
		return domain.CallHandle{}, fmt.Errorf("%w: %v", apperrors.ErrCallInitiation, err)
	}
	return handle, nil
}

// poll retrieves snapshots at a fixed interval until the call ends, the
// wait budget runs out, or a single retrieve failure stops the loop. It
// returns the last snapshot successfully obtained (possibly nil).
func (c *Controller) poll(ctx context.Context, tracer trace.Tracer, lg *logger.Logger, handle domain.CallHandle, p Params) (last *domain.CallStatusSnapshot, pollErr error, timedOut bool) {
	ctx, span := tracer.Start(ctx, "call.poll")
	defer span.End()

	polls := 0
	for waited := time.Duration(0); waited < p.MaxWait; waited += p.PollInterval {
		snap, err := c.provider.RetrieveCall(ctx, handle.CallID)
		if err != nil {
			pollErr = fmt.Errorf("%w: %v", apperrors.ErrPollFetch, err)
			span.RecordError(pollErr)
			lg.Warn("poll fetch failed, stopping loop", zap.Error(err), zap.Int("polls", polls))
			return last, pollErr, false
		}

		polls++
		last = snap
		lg.Info("current call status", zap.String("status", string(snap.CallStatus)), zap.Int("poll", polls))

		if snap.CallStatus == domain.CallStatusEnded {
			span.SetAttributes(attribute.Int("call.polls", polls))
			return last, nil, false
		}

		c.sleep(p.PollInterval)
	}

	span.SetAttributes(attribute.Int("call.polls", polls), attribute.Bool("call.timed_out", true))
	lg.Warn("call monitoring timed out", zap.Int("polls", polls), zap.Duration("max_wait", p.MaxWait))
	return last, nil, true
}

// extract derives the summary fields from the last snapshot. Extraction is
// all or nothing: a failure replaces every field with the Unavailable
// sentinel rather than partially filling them.
func (c *Controller) extract(ctx context.Context, tracer trace.Tracer, lg *logger.Logger, snap *domain.CallStatusSnapshot) domain.Fields {
	_, span := tracer.Start(ctx, "call.extract")
	defer span.End()

	fields, err := domain.DeriveFields(snap)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", apperrors.ErrExtraction, err)
		span.RecordError(wrapped)
		lg.Error("extracting call details failed", zap.Error(wrapped))
		return domain.UnavailableFields()
	}
	return fields
}

// persist writes the snapshot JSON and requests both artifact downloads.
// The three writes are independent: a failure in one never blocks the
// others.
func (c *Controller) persist(ctx context.Context, tracer trace.Tracer, lg *logger.Logger, outcome *domain.CallOutcome) {
	ctx, span := tracer.Start(ctx, "call.persist")
	defer span.End()

	key := fmt.Sprintf("%s_%s", c.now().UTC().Format("20060102T150405Z"), artifactID(outcome.CallID))

	path, err := c.store.SaveSnapshot(key, outcome.Snapshot)
	if err != nil {
		span.RecordError(err)
		lg.Warn("persisting snapshot failed", zap.Error(err))
	} else {
		outcome.SnapshotPath = path
		lg.Info("snapshot persisted", zap.String("path", path))
	}

	if dest := c.store.ArtifactPath(key, "wav"); c.download(ctx, lg, outcome.Fields.RecordingURL, dest) {
		outcome.RecordingPath = dest
	}
	if dest := c.store.ArtifactPath(key, "log"); c.download(ctx, lg, outcome.Fields.CallLogURL, dest) {
		outcome.CallLogPath = dest
	}
}

// download requests one artifact and reports whether a file now exists at
// dest. Sentinel URLs no-op inside the fetcher.
func (c *Controller) download(ctx context.Context, lg *logger.Logger, url, dest string) bool {
	if err := c.fetcher.Fetch(ctx, url, dest); err != nil {
		lg.Warn("artifact download failed", zap.String("url", url), zap.Error(err))
		return false
	}
	return hasURL(url)
}

// scrub asks the provider to clear metadata and opt the call out of
// sensitive data storage. Failure is reported, never fatal.
func (c *Controller) scrub(ctx context.Context, tracer trace.Tracer, lg *logger.Logger, callID string) *domain.ScrubResult {
	ctx, span := tracer.Start(ctx, "call.scrub")
	defer span.End()

	if _, err := c.provider.UpdateCall(ctx, callID, map[string]any{}, true); err != nil {
		wrapped := fmt.Errorf("%w: %v", apperrors.ErrScrub, err)
		span.RecordError(wrapped)
		lg.Warn("scrubbing sensitive data failed", zap.Error(wrapped))
		return nil
	}

	lg.Info("sensitive data scrubbed")
	return &domain.ScrubResult{CallID: callID, OptedOut: true, ScrubbedAt: c.now().UTC()}
}

func hasURL(url string) bool {
	return url != "" && url != domain.FieldMissing && url != domain.FieldUnavailable
}

// artifactID guards the artifact key against a provider returning an empty
// call id.
func artifactID(callID string) string {
	if callID == "" {
		return uuid.NewString()
	}
	return callID
}
