package model

import (
	"time"

	"github.com/google/uuid"
)

// FenceJob is a saved takeoff request: who it is for and what was measured.
// Results are never stored; they are recomputed from Input.
type FenceJob struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Customer  string          `json:"customer"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
	Input     EstimationInput `json:"input"`
}

// NewFenceJob creates a job with a fresh ID. The input runs are copied so the
// job does not share a backing array with the caller.
func NewFenceJob(name, customer string, in EstimationInput) FenceJob {
	now := time.Now().UTC().Format(time.RFC3339)
	in.Runs = copyRuns(in.Runs)
	return FenceJob{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Customer:  customer,
		CreatedAt: now,
		UpdatedAt: now,
		Input:     in,
	}
}

// Estimate computes the takeoff for the job.
func (j FenceJob) Estimate() EstimationResult {
	return Compute(j.Input)
}

// Duplicate returns a copy of the job under a new name with fresh IDs for
// the job and every run.
func (j FenceJob) Duplicate(name string) FenceJob {
	in := j.Input
	in.Runs = make([]FenceRun, len(j.Input.Runs))
	for i, r := range j.Input.Runs {
		in.Runs[i] = NewFenceRun(r.Label, r.Length)
	}
	dup := NewFenceJob(name, j.Customer, in)
	dup.Notes = j.Notes
	return dup
}

// JobStore holds a collection of saved jobs.
type JobStore struct {
	Jobs []FenceJob `json:"jobs"`
}

// NewJobStore creates an empty job store.
func NewJobStore() JobStore {
	return JobStore{
		Jobs: []FenceJob{},
	}
}

// Add adds a job to the store.
func (js *JobStore) Add(j FenceJob) {
	js.Jobs = append(js.Jobs, j)
}

// Update replaces the job with the same ID and bumps its UpdatedAt.
// Returns false if no such job exists.
func (js *JobStore) Update(j FenceJob) bool {
	for i := range js.Jobs {
		if js.Jobs[i].ID == j.ID {
			j.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			js.Jobs[i] = j
			return true
		}
	}
	return false
}

// Remove removes a job by ID. Returns true if found and removed.
func (js *JobStore) Remove(id string) bool {
	for i, j := range js.Jobs {
		if j.ID == id {
			js.Jobs = append(js.Jobs[:i], js.Jobs[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the job with the given ID, or nil.
func (js *JobStore) FindByID(id string) *FenceJob {
	for i := range js.Jobs {
		if js.Jobs[i].ID == id {
			return &js.Jobs[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first job with the given name, or nil.
func (js *JobStore) FindByName(name string) *FenceJob {
	for i := range js.Jobs {
		if js.Jobs[i].Name == name {
			return &js.Jobs[i]
		}
	}
	return nil
}

// Names returns the job names in store order.
func (js *JobStore) Names() []string {
	names := make([]string, len(js.Jobs))
	for i, j := range js.Jobs {
		names[i] = j.Name
	}
	return names
}

func copyRuns(runs []FenceRun) []FenceRun {
	if runs == nil {
		return []FenceRun{}
	}
	cp := make([]FenceRun, len(runs))
	copy(cp, runs)
	return cp
}
