package dag

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/lalog"
	"github.com/korora-tech/dhd/metrics"
)

// State is an atom's terminal (or in-flight) status within a run.
type State string

const (
	StatePending            State = "pending"
	StateSkipped            State = "skipped"
	StateCompleted          State = "completed"
	StateFailed             State = "failed"
	StateSkippedDueToFailure State = "skipped_due_to_failure"
)

// Status is the per-atom status report of spec.md section 4.10.
type Status struct {
	ID    string
	State State
	Err   error
}

// Executor runs an ExecutionPlan with bounded parallelism, serializing
// atoms that share a mutable resource (spec.md section 5).
type Executor struct {
	MaxConcurrent int
	Metrics       *metrics.Collectors
	logger        lalog.Logger
}

// NewExecutor builds an Executor. maxConcurrent <= 0 is treated as 1.
func NewExecutor(maxConcurrent int) *Executor {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Executor{MaxConcurrent: maxConcurrent, logger: lalog.Logger{ComponentName: "dag"}}
}

type result struct {
	id    string
	state State
	err   error
}

// Run executes plan to completion. All bookkeeping (indegree, readiness,
// downstream-skip propagation) happens on the calling goroutine as results
// arrive on a single channel; only Check/Execute run concurrently, so no
// additional locking is needed around the scheduler state itself.
func (e *Executor) Run(ctx context.Context, plan ExecutionPlan) ([]Status, error) {
	byID := make(map[string]atoms.Atom, len(plan.Nodes))
	indegree := make(map[string]int, len(plan.Nodes))
	successors := make(map[string][]string, len(plan.Nodes))
	order := make([]string, 0, len(plan.Nodes))
	for _, a := range plan.Nodes {
		byID[a.ID()] = a
		indegree[a.ID()] = 0
		order = append(order, a.ID())
	}
	for _, edge := range plan.Edges {
		indegree[edge.To]++
		successors[edge.From] = append(successors[edge.From], edge.To)
	}

	resourceLocks := make(map[string]*sync.Mutex)
	for _, a := range plan.Nodes {
		if ra, ok := a.(atoms.ResourceAware); ok {
			if res := ra.Resource(); res != "" {
				if _, exists := resourceLocks[res]; !exists {
					resourceLocks[res] = &sync.Mutex{}
				}
			}
		}
	}

	statuses := make(map[string]*Status, len(plan.Nodes))
	for _, id := range order {
		statuses[id] = &Status{ID: id, State: StatePending}
	}

	sem := semaphore.NewWeighted(int64(e.MaxConcurrent))
	group, groupCtx := errgroup.WithContext(ctx)
	results := make(chan result)

	launch := func(id string) {
		a := byID[id]
		group.Go(func() error {
			start := time.Now()
			emit := func(state State, err error) {
				if e.Metrics != nil {
					e.Metrics.Observe(a.Module(), string(state), time.Since(start))
				}
				results <- result{id: id, state: state, err: err}
			}
			if err := sem.Acquire(groupCtx, 1); err != nil {
				emit(StateFailed, err)
				return nil
			}
			defer sem.Release(1)
			if ra, ok := a.(atoms.ResourceAware); ok {
				if res := ra.Resource(); res != "" {
					lock := resourceLocks[res]
					lock.Lock()
					defer lock.Unlock()
				}
			}
			ok, err := a.Check(groupCtx)
			if err != nil {
				emit(StateFailed, err)
				return nil
			}
			if ok {
				emit(StateSkipped, nil)
				return nil
			}
			if err := a.Execute(groupCtx); err != nil {
				emit(StateFailed, err)
				return nil
			}
			emit(StateCompleted, nil)
			return nil
		})
	}

	remaining := len(order)

	var markDownstream func(id string)
	markDownstream = func(id string) {
		for _, succ := range successors[id] {
			if statuses[succ].State != StatePending {
				continue
			}
			statuses[succ].State = StateSkippedDueToFailure
			remaining--
			markDownstream(succ)
		}
	}

	for _, id := range order {
		if indegree[id] == 0 {
			launch(id)
		}
	}
	if remaining == 0 {
		return nil, nil
	}

	for remaining > 0 {
		r := <-results
		remaining--
		statuses[r.id].State = r.state
		statuses[r.id].Err = r.err
		if r.state == StateFailed {
			e.logger.Warning("Run", r.id, r.err, "atom failed")
			markDownstream(r.id)
			continue
		}
		for _, succ := range successors[r.id] {
			indegree[succ]--
			if indegree[succ] == 0 {
				launch(succ)
			}
		}
	}
	_ = group.Wait()

	report := make([]Status, len(order))
	var failedIDs []string
	for i, id := range order {
		s := *statuses[id]
		report[i] = s
		if s.State == StateFailed {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return report, errs.Wrap(errs.ErrExecutionEngine, "atoms failed: "+strings.Join(failedIDs, ", "), nil)
	}
	return report, nil
}
