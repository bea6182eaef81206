// Package plate defines the abstract contract to an external plate-solver
// service — submit an image, poll for completion, download the resulting
// WCS — plus the bounded polling schedule a caller drives a Gateway with.
// The core never speaks the solver's wire protocol directly; a conforming
// Gateway may target the public astrometry.net API or any functional
// equivalent.
package plate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAuthFailed is returned by Authenticate when the credential is
// rejected by the solver.
var ErrAuthFailed = errors.New("plate: authentication failed")

// ErrTransport is returned by UploadImage, JobDone, and DownloadWCS for
// any failure in talking to the solver (network, non-2xx response,
// malformed body).
var ErrTransport = errors.New("plate: transport failure")

// ErrNotReady is returned by DownloadWCS when the job has not finished
// solving yet.
var ErrNotReady = errors.New("plate: job not ready")

// ErrTimeout is returned by PollUntilDone when the job is still pending
// after MaxAttempts polls. It is recoverable: the caller falls back to a
// pre-bound fixed plate solution on the station.
var ErrTimeout = errors.New("plate: polling budget exceeded")

// ErrCancelled is returned when ctx is cancelled between polls, or
// between upload and the first poll. It leaves no partial state: the
// caller should treat the submission as abandoned.
var ErrCancelled = errors.New("plate: cancelled")

// JobStatus is the outcome of a single job_done poll.
type JobStatus struct {
	Done  bool
	JobID string
}

// Gateway is the plate-solver contract: authenticate, submit an image,
// poll for a result, and download the solved WCS. Implementations talk
// to whatever transport backs the solver; the core only calls these four
// methods. Every method is cancellable: a ctx cancelled mid-call must
// abort with ErrCancelled and leave no partial state on the remote side
// observable to the caller.
type Gateway interface {
	// Authenticate exchanges a credential for a session token.
	Authenticate(ctx context.Context, credential string) (sessionToken string, err error)
	// UploadImage submits image data and returns a submission id.
	UploadImage(ctx context.Context, sessionToken string, image []byte) (submissionID string, err error)
	// JobDone reports whether a submission has finished solving.
	JobDone(ctx context.Context, sessionToken, submissionID string) (JobStatus, error)
	// DownloadWCS fetches the solved WCS file for a finished job.
	DownloadWCS(ctx context.Context, sessionToken, jobID string) ([]byte, error)
}

// Config mirrors the host's configuration surface for the plate-solver
// gateway: plain scalar fields, no parsing logic.
type Config struct {
	Token         string
	PollInterval  time.Duration
	TimeTolerance time.Duration
	LoadFixed     bool
}

// PollUntilDone drives JobDone every interval, up to maxAttempts times.
// The gateway performs no retries of its own; this loop is the caller's
// policy. It returns the job id on success, ErrTimeout if
// the budget is exhausted while the job is still pending, or
// ErrCancelled if ctx is cancelled between polls.
func PollUntilDone(ctx context.Context, gw Gateway, sessionToken, submissionID string, interval time.Duration, maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		status, err := gw.JobDone(ctx, sessionToken, submissionID)
		if err != nil {
			return "", fmt.Errorf("plate: polling submission %s: %w", submissionID, err)
		}
		if status.Done {
			return status.JobID, nil
		}

		select {
		case <-ctx.Done():
			return "", ErrCancelled
		case <-time.After(interval):
		}
	}
	return "", fmt.Errorf("%w: submission %s after %d attempts", ErrTimeout, submissionID, maxAttempts)
}

// Solve runs the full authenticate→upload→poll→download sequence against
// a Gateway, returning the solved WCS file bytes.
func Solve(ctx context.Context, gw Gateway, cfg Config, image []byte, maxAttempts int) ([]byte, error) {
	session, err := gw.Authenticate(ctx, cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("plate: %w", err)
	}

	submissionID, err := gw.UploadImage(ctx, session, image)
	if err != nil {
		return nil, fmt.Errorf("plate: %w", err)
	}

	jobID, err := PollUntilDone(ctx, gw, session, submissionID, cfg.PollInterval, maxAttempts)
	if err != nil {
		return nil, err
	}

	wcsBytes, err := gw.DownloadWCS(ctx, session, jobID)
	if err != nil {
		return nil, fmt.Errorf("plate: %w", err)
	}
	return wcsBytes, nil
}
