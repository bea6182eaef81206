package plate

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeGateway struct {
	authErr      error
	uploadErr    error
	doneAfter    int
	jobDoneCalls int
	downloadErr  error
	wcsBytes     []byte
}

func (g *fakeGateway) Authenticate(ctx context.Context, credential string) (string, error) {
	if g.authErr != nil {
		return "", g.authErr
	}
	return "session-token", nil
}

func (g *fakeGateway) UploadImage(ctx context.Context, sessionToken string, image []byte) (string, error) {
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	return "submission-1", nil
}

func (g *fakeGateway) JobDone(ctx context.Context, sessionToken, submissionID string) (JobStatus, error) {
	g.jobDoneCalls++
	if g.jobDoneCalls >= g.doneAfter {
		return JobStatus{Done: true, JobID: "job-1"}, nil
	}
	return JobStatus{Done: false}, nil
}

func (g *fakeGateway) DownloadWCS(ctx context.Context, sessionToken, jobID string) ([]byte, error) {
	if g.downloadErr != nil {
		return nil, g.downloadErr
	}
	return g.wcsBytes, nil
}

func TestPollUntilDoneSucceedsWithinBudget(t *testing.T) {
	gw := &fakeGateway{doneAfter: 3}
	jobID, err := PollUntilDone(context.Background(), gw, "tok", "sub", time.Millisecond, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobID != "job-1" {
		t.Errorf("job id: got %q, want job-1", jobID)
	}
}

func TestPollUntilDoneTimesOut(t *testing.T) {
	gw := &fakeGateway{doneAfter: 100}
	_, err := PollUntilDone(context.Background(), gw, "tok", "sub", time.Millisecond, 3)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestPollUntilDoneRespectsCancellation(t *testing.T) {
	gw := &fakeGateway{doneAfter: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PollUntilDone(ctx, gw, "tok", "sub", 10*time.Millisecond, 5)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestSolveFullSequence(t *testing.T) {
	gw := &fakeGateway{doneAfter: 1, wcsBytes: []byte("wcs-data")}
	cfg := Config{Token: "abc", PollInterval: time.Millisecond}

	got, err := Solve(context.Background(), gw, cfg, []byte("image-bytes"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "wcs-data" {
		t.Errorf("wcs bytes: got %q, want wcs-data", got)
	}
}

func TestSolveWrapsAuthFailure(t *testing.T) {
	gw := &fakeGateway{authErr: ErrAuthFailed}
	cfg := Config{Token: "bad", PollInterval: time.Millisecond}

	_, err := Solve(context.Background(), gw, cfg, []byte("image-bytes"), 5)
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}
