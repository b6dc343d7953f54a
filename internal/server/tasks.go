package server

import (
	"sync"
	"time"

	"github.com/reposcout/reposcout/pkg/scout"
)

// Task states.
const (
	TaskRunning  = "running"
	TaskFinished = "finished"
	TaskFailed   = "failed"
)

// Task is one background ranking request.
type Task struct {
	ID          string            `json:"id"`
	Requirement string            `json:"requirement"`
	Status      string            `json:"status"`
	Candidates  []scout.Candidate `json:"candidates,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// taskStore tracks background tasks in memory. Tasks are not persisted;
// clients needing durable results use the synchronous endpoint plus the
// run history.
type taskStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func newTaskStore() *taskStore {
	return &taskStore{tasks: make(map[string]Task)}
}

func (s *taskStore) create(id, requirement string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = Task{
		ID:          id,
		Requirement: requirement,
		Status:      TaskRunning,
		CreatedAt:   time.Now(),
	}
}

func (s *taskStore) finish(id string, candidates []scout.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	t.Status = TaskFinished
	t.Candidates = candidates
	s.tasks[id] = t
}

func (s *taskStore) fail(id, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	t.Status = TaskFailed
	t.Error = msg
	s.tasks[id] = t
}

func (s *taskStore) get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok
}
