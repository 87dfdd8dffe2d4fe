package book

import (
	"errors"
	"sync"
	"testing"
)

func newNav(t *testing.T, total int) *Navigator {
	t.Helper()
	n, err := NewNavigator(total)
	if err != nil {
		t.Fatalf("NewNavigator: %v", err)
	}
	return n
}

func TestNewNavigatorRejectsEmptyStack(t *testing.T) {
	if _, err := NewNavigator(0); err == nil {
		t.Error("expected error for empty stack")
	}
}

func TestNextStartsTransitionWithoutMovingIndex(t *testing.T) {
	n := newNav(t, 3)

	if err := n.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s := n.State()
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0 until completion", s.Index)
	}
	if !s.Transitioning || s.Direction != DirectionNext {
		t.Errorf("state = %+v, want transitioning next", s)
	}
	if s.Target() != 1 {
		t.Errorf("Target = %d, want 1", s.Target())
	}
}

func TestTransitionLockRejectsOverlappingRequests(t *testing.T) {
	n := newNav(t, 5)
	if !n.RequestNext() {
		t.Fatal("first RequestNext should be accepted")
	}

	if err := n.Next(); !errors.Is(err, ErrTransitioning) {
		t.Errorf("Next during turn = %v, want ErrTransitioning", err)
	}
	if err := n.Prev(); !errors.Is(err, ErrTransitioning) {
		t.Errorf("Prev during turn = %v, want ErrTransitioning", err)
	}
	if err := n.JumpTo(3); !errors.Is(err, ErrTransitioning) {
		t.Errorf("JumpTo during turn = %v, want ErrTransitioning", err)
	}
}

func TestBoundaries(t *testing.T) {
	n := newNav(t, 2)
	if err := n.Prev(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Prev at first page = %v, want ErrAtBoundary", err)
	}

	if err := n.JumpTo(1); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}
	if err := n.Next(); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Next at last page = %v, want ErrAtBoundary", err)
	}
	if n.State().Transitioning {
		t.Error("rejected request must not set the lock")
	}
}

func TestSinglePageStackIgnoresEverything(t *testing.T) {
	n := newNav(t, 1)
	if n.RequestNext() || n.RequestPrev() || n.RequestJump(0) {
		t.Error("single page stack should ignore all navigation")
	}
}

func TestJumpTo(t *testing.T) {
	n := newNav(t, 4)

	tests := []struct {
		index int
		want  error
	}{
		{-1, ErrOutOfRange},
		{4, ErrOutOfRange},
		{0, ErrSamePage},
		{3, nil},
		{1, nil},
	}
	for _, tt := range tests {
		err := n.JumpTo(tt.index)
		if !errors.Is(err, tt.want) {
			t.Errorf("JumpTo(%d) = %v, want %v", tt.index, err, tt.want)
		}
	}
	if got := n.State().Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
}

func TestCompleteCommitsOnce(t *testing.T) {
	n := newNav(t, 3)
	n.RequestNext()
	tr, ok := n.Active()
	if !ok {
		t.Fatal("expected active transition")
	}

	if err := n.Complete(tr.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := n.Complete(tr.ID); !errors.Is(err, ErrNoTransition) {
		t.Errorf("second Complete = %v, want ErrNoTransition", err)
	}

	s := n.State()
	if s.Index != 1 || s.Transitioning || s.Direction != DirectionNone {
		t.Errorf("state after completion = %+v", s)
	}
}

func TestCompleteRejectsStaleID(t *testing.T) {
	n := newNav(t, 3)
	n.RequestNext()
	first, _ := n.Active()
	_ = n.Complete(first.ID)

	n.RequestPrev()
	if err := n.Complete(first.ID); !errors.Is(err, ErrNoTransition) {
		t.Errorf("stale Complete = %v, want ErrNoTransition", err)
	}
	if !n.State().Transitioning {
		t.Error("stale completion must not release the lock")
	}
}

func TestPrevCompletionDecrements(t *testing.T) {
	n := newNav(t, 3)
	_ = n.JumpTo(2)
	n.RequestPrev()
	tr, _ := n.Active()
	if tr.From != 2 || tr.To != 1 {
		t.Errorf("transition = %+v, want 2 -> 1", tr)
	}
	_ = n.Complete(tr.ID)
	if got := n.State().Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	n := newNav(t, 3)
	var kinds []ChangeKind
	cancel := n.Subscribe(func(c Change) { kinds = append(kinds, c.Kind) })

	n.RequestNext()
	tr, _ := n.Active()
	_ = n.Complete(tr.ID)
	n.RequestJump(0)
	n.RequestPrev() // rejected, no notification

	cancel()
	n.RequestJump(2)

	want := []ChangeKind{ChangeStarted, ChangeCommitted, ChangeJumped}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestConcurrentRequestsStartOneTurn(t *testing.T) {
	n := newNav(t, 10)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n.RequestNext() {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Errorf("accepted = %d, want exactly 1", accepted)
	}
}
