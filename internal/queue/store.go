package queue

import (
	"sort"
	"sync"
	"time"
)

// Store tracks the transcription state of every known filename. It is the
// single source of truth for what is happening right now; durability across
// restarts comes from marker files on disk, not from this store.
//
// One mutex guards the queue order, the in-process set, and both terminal
// maps as a unit. A filename lives in at most one of the four at any
// instant. The lock is held only for set mutation, never across an external
// tool invocation.
type Store struct {
	mu        sync.Mutex
	queue     []string
	inProcess map[string]struct{}
	completed map[string]struct{}
	failed    map[string]string
	clock     func() time.Time
}

// NewStore constructs an empty job store.
func NewStore() *Store {
	return &Store{
		inProcess: make(map[string]struct{}),
		completed: make(map[string]struct{}),
		failed:    make(map[string]string),
		clock:     time.Now,
	}
}

// WithClock overrides the snapshot timestamp source (used in tests).
func (s *Store) WithClock(clock func() time.Time) *Store {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// Enqueue adds filename to the back of the queue. Duplicates are a no-op:
// a filename already queued, in process, completed, or failed in this
// process's lifetime is not enqueued again.
func (s *Store) Enqueue(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.knownLocked(filename) {
		return false
	}
	s.queue = append(s.queue, filename)
	return true
}

// Dequeue pops the front of the queue and atomically marks it in-process.
// It never blocks; ok is false when no job is queued.
func (s *Store) Dequeue() (filename string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return "", false
	}
	filename = s.queue[0]
	s.queue = s.queue[1:]
	s.inProcess[filename] = struct{}{}
	return filename, true
}

// MarkCompleted moves filename from in-process to completed. It is a no-op
// when the filename is not currently in process.
func (s *Store) MarkCompleted(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inProcess[filename]; !ok {
		return
	}
	delete(s.inProcess, filename)
	s.completed[filename] = struct{}{}
}

// MarkFailed moves filename from in-process to failed, recording the error
// text. It is a no-op when the filename is not currently in process.
func (s *Store) MarkFailed(filename, errorMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inProcess[filename]; !ok {
		return
	}
	delete(s.inProcess, filename)
	s.failed[filename] = errorMsg
}

// Release drops filename from the in-process set without recording a
// terminal state. Used when a job is abandoned by shutdown so a restart's
// discovery scan will reconsider the file.
func (s *Store) Release(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inProcess, filename)
}

// Snapshot returns one status row per known filename across all four sets,
// computed under the mutation lock so rows never tear. Queued rows preserve
// queue order; the remaining sets are sorted by filename for stable output.
func (s *Store) Snapshot() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock().Format(time.RFC3339)
	statuses := make([]JobStatus, 0, len(s.queue)+len(s.inProcess)+len(s.completed)+len(s.failed))

	for _, filename := range s.queue {
		statuses = append(statuses, JobStatus{Filename: filename, Status: StatusQueued, Timestamp: now})
	}
	for _, filename := range sortedKeys(s.inProcess) {
		statuses = append(statuses, JobStatus{Filename: filename, Status: StatusProcessing, Timestamp: now})
	}
	for _, filename := range sortedKeys(s.completed) {
		statuses = append(statuses, JobStatus{Filename: filename, Status: StatusCompleted, Timestamp: now})
	}
	failedNames := make([]string, 0, len(s.failed))
	for filename := range s.failed {
		failedNames = append(failedNames, filename)
	}
	sort.Strings(failedNames)
	for _, filename := range failedNames {
		statuses = append(statuses, JobStatus{
			Filename:  filename,
			Status:    StatusFailed,
			Error:     s.failed[filename],
			Timestamp: now,
		})
	}
	return statuses
}

// Counts returns aggregated job counts per lifecycle state.
func (s *Store) Counts() HealthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := HealthSummary{
		Queued:     len(s.queue),
		Processing: len(s.inProcess),
		Completed:  len(s.completed),
		Failed:     len(s.failed),
	}
	summary.Total = summary.Queued + summary.Processing + summary.Completed + summary.Failed
	return summary
}

func (s *Store) knownLocked(filename string) bool {
	for _, queued := range s.queue {
		if queued == filename {
			return true
		}
	}
	if _, ok := s.inProcess[filename]; ok {
		return true
	}
	if _, ok := s.completed[filename]; ok {
		return true
	}
	_, ok := s.failed[filename]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
