package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/prdgest/internal/prd"
)

// JobStatus represents the state of a parse job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusConverting JobStatus = "converting"
	StatusParsing    JobStatus = "parsing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusDuplicate  JobStatus = "duplicate"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusDuplicate
}

// Job tracks the state of a single uploaded document.
type Job struct {
	mu sync.Mutex

	ID       string
	Filename string

	Status      JobStatus
	Phase       string
	ContentHash string
	DuplicateOf string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	fileData []byte
	result   *prd.ParsedPRD
	errors   []string
}

// NewJob returns a queued job owning data.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        newJobID(),
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	byHash map[string]string
	ttl    time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs:   make(map[string]*Job),
		byHash: make(map[string]string),
		ttl:    ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// IndexHash records that job id completed with the given content hash.
// The first completed job for a hash wins.
func (s *JobStore) IndexHash(hash, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byHash[hash]; !ok {
		s.byHash[hash] = id
	}
}

// FindCompleted returns the completed job whose content hash matches, or nil.
func (s *JobStore) FindCompleted(hash string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byHash[hash]
	if !ok {
		return nil
	}
	job, ok := s.jobs[id]
	if !ok {
		delete(s.byHash, hash)
		return nil
	}
	return job
}

// Cleanup removes expired jobs and their hash index entries.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
	for hash, id := range s.byHash {
		if _, ok := s.jobs[id]; !ok {
			delete(s.byHash, hash)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Fail records err and moves the job to failed during phase.
func (j *Job) Fail(phase string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err.Error())
	j.Status = StatusFailed
	j.Phase = phase
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Complete stores the parsed result. A non-empty duplicateOf marks the
// result as reused from an earlier job.
func (j *Job) Complete(result prd.ParsedPRD, duplicateOf string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &result
	j.fileData = nil
	j.Phase = "done"
	if duplicateOf != "" {
		j.Status = StatusDuplicate
		j.DuplicateOf = duplicateOf
	} else {
		j.Status = StatusCompleted
	}
	j.UpdatedAt = time.Now()
}

func (j *Job) setContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// FileData returns the raw file bytes. Nil once the job has finished.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// Result returns the parsed PRD and true once the job has one.
func (j *Job) Result() (prd.ParsedPRD, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.result == nil {
		return prd.ParsedPRD{}, false
	}
	return *j.result, true
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string    `json:"job_id"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	Filename     string    `json:"filename"`
	ContentHash  string    `json:"content_hash,omitempty"`
	DuplicateOf  string    `json:"duplicate_of,omitempty"`
	ProjectName  string    `json:"project_name,omitempty"`
	FeatureCount int       `json:"feature_count"`
	Errors       []string  `json:"errors"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		DuplicateOf: j.DuplicateOf,
		Errors:      errs,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if j.result != nil {
		snap.ProjectName = j.result.ProjectName
		snap.FeatureCount = j.result.FeatureCount()
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
