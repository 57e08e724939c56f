package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/prdgest/internal/prd"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("prd.md", []byte("# App"))
	id, err := uuid.Parse(job.ID)
	if err != nil {
		t.Fatalf("expected uuid job id, got %q: %v", job.ID, err)
	}
	if id.Version() != 7 {
		t.Errorf("expected uuid v7, got v%d", id.Version())
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if string(job.FileData()) != "# App" {
		t.Errorf("expected file data to be kept, got %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("prd.txt", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusConverting, "converting"},
		{StatusParsing, "parsing"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
		if tr.status.Done() {
			t.Errorf("expected %q to be non-terminal", tr.status)
		}
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("prd.pdf", []byte("%PDF"))
	job.Fail("converting", errors.New("bad pdf"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "converting" {
		t.Errorf("expected phase %q, got %q", "converting", snap.Phase)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "bad pdf" {
		t.Errorf("expected single error %q, got %v", "bad pdf", snap.Errors)
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
	if _, ok := job.Result(); ok {
		t.Error("expected no result on failed job")
	}
}

func TestJob_Complete(t *testing.T) {
	job := NewJob("prd.md", []byte("x"))
	result := prd.ParsedPRD{
		ProjectName: "Todo",
		Description: "A todo app",
		TechStack:   []string{},
		Features:    []prd.Feature{{Title: "a", Description: "a", Priority: prd.PriorityHigh}},
	}
	job.Complete(result, "")

	got, ok := job.Result()
	if !ok {
		t.Fatal("expected result after Complete")
	}
	if got.ProjectName != "Todo" {
		t.Errorf("expected project name %q, got %q", "Todo", got.ProjectName)
	}
	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if snap.FeatureCount != 1 {
		t.Errorf("expected feature count 1, got %d", snap.FeatureCount)
	}
	if !snap.Status.Done() {
		t.Error("expected completed to be terminal")
	}
}

func TestJob_CompleteDuplicate(t *testing.T) {
	job := NewJob("copy.md", []byte("x"))
	job.Complete(prd.ParsedPRD{}, "orig-id")

	snap := job.Snapshot()
	if snap.Status != StatusDuplicate {
		t.Errorf("expected status %q, got %q", StatusDuplicate, snap.Status)
	}
	if snap.DuplicateOf != "orig-id" {
		t.Errorf("expected duplicate_of %q, got %q", "orig-id", snap.DuplicateOf)
	}
	if _, ok := job.Result(); !ok {
		t.Error("expected duplicate job to carry a result")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_FindCompleted(t *testing.T) {
	store := NewJobStore(time.Hour)
	first := &Job{ID: "first", UpdatedAt: time.Now()}
	second := &Job{ID: "second", UpdatedAt: time.Now()}
	store.Put(first)
	store.Put(second)

	if store.FindCompleted("abc") != nil {
		t.Error("expected no match before indexing")
	}
	store.IndexHash("abc", "first")
	store.IndexHash("abc", "second")

	got := store.FindCompleted("abc")
	if got == nil || got.ID != "first" {
		t.Fatalf("expected first indexed job to win, got %v", got)
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)
	store.IndexHash("h-old", "old")

	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.FindCompleted("h-old") != nil {
		t.Error("expected hash index entry to be dropped with its job")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job left, got %d", store.Len())
	}
}
