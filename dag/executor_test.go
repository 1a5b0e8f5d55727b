package dag

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/korora-tech/dhd/atoms"
)

// fakeAtom is a minimal atoms.Atom for executor tests.
type fakeAtom struct {
	id       string
	deps     []string
	checkFn  func(context.Context) (bool, error)
	execFn   func(context.Context) error
	resource string
}

func (f *fakeAtom) ID() string             { return f.id }
func (f *fakeAtom) Module() string         { return "test" }
func (f *fakeAtom) Describe() string       { return f.id }
func (f *fakeAtom) Dependencies() []string { return f.deps }
func (f *fakeAtom) Resource() string       { return f.resource }

func (f *fakeAtom) Check(ctx context.Context) (bool, error) {
	if f.checkFn != nil {
		return f.checkFn(ctx)
	}
	return false, nil
}

func (f *fakeAtom) Execute(ctx context.Context) error {
	if f.execFn != nil {
		return f.execFn(ctx)
	}
	return nil
}

func buildTestPlan(fakes ...*fakeAtom) (ExecutionPlan, error) {
	list := make([]atoms.Atom, len(fakes))
	for i, f := range fakes {
		list[i] = f
	}
	return BuildPlan(list)
}

func TestPartialFailurePropagatesToDependents(t *testing.T) {
	x := &fakeAtom{id: "X", execFn: func(context.Context) error { return errors.New("boom") }}
	y := &fakeAtom{id: "Y", deps: []string{"X"}}
	z := &fakeAtom{id: "Z"}

	p, err := buildTestPlan(x, y, z)
	if err != nil {
		t.Fatalf("BuildPlan error = %v", err)
	}
	exec := NewExecutor(4)
	statuses, runErr := exec.Run(context.Background(), p)
	if runErr == nil {
		t.Fatal("Run should return an aggregate error when an atom fails")
	}
	byID := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}
	if byID["X"].State != StateFailed {
		t.Fatalf("X state = %v; want Failed", byID["X"].State)
	}
	if byID["Y"].State != StateSkippedDueToFailure {
		t.Fatalf("Y state = %v; want SkippedDueToFailure", byID["Y"].State)
	}
	if byID["Z"].State != StateCompleted {
		t.Fatalf("Z state = %v; want Completed", byID["Z"].State)
	}
}

func TestSkipWhenCheckTrue(t *testing.T) {
	a := &fakeAtom{id: "A", checkFn: func(context.Context) (bool, error) { return true, nil }}
	p, err := buildTestPlan(a)
	if err != nil {
		t.Fatalf("BuildPlan error = %v", err)
	}
	statuses, err := NewExecutor(1).Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if statuses[0].State != StateSkipped {
		t.Fatalf("state = %v; want Skipped", statuses[0].State)
	}
}

func TestMaxConcurrentBound(t *testing.T) {
	var running int32
	var maxObserved int32
	var mu sync.Mutex
	fakes := make([]*fakeAtom, 0, 8)
	for i := 0; i < 8; i++ {
		fakes = append(fakes, &fakeAtom{
			id: string(rune('a' + i)),
			execFn: func(ctx context.Context) error {
				cur := atomic.AddInt32(&running, 1)
				mu.Lock()
				if cur > maxObserved {
					maxObserved = cur
				}
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			},
		})
	}
	p, err := buildTestPlan(fakes...)
	if err != nil {
		t.Fatalf("BuildPlan error = %v", err)
	}
	if _, err := NewExecutor(3).Run(context.Background(), p); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if maxObserved > 3 {
		t.Fatalf("observed %d concurrent atoms; want <= 3", maxObserved)
	}
}

func TestResourceSerialization(t *testing.T) {
	var running int32
	var violated bool
	var mu sync.Mutex
	makeAtom := func(id string) *fakeAtom {
		return &fakeAtom{
			id:       id,
			resource: "pkgmanager:apt",
			execFn: func(ctx context.Context) error {
				cur := atomic.AddInt32(&running, 1)
				if cur > 1 {
					mu.Lock()
					violated = true
					mu.Unlock()
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			},
		}
	}
	a, b, c := makeAtom("a"), makeAtom("b"), makeAtom("c")
	p, err := buildTestPlan(a, b, c)
	if err != nil {
		t.Fatalf("BuildPlan error = %v", err)
	}
	if _, err := NewExecutor(4).Run(context.Background(), p); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if violated {
		t.Fatal("atoms sharing a resource ran concurrently")
	}
}
