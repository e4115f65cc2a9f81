package parallel

import (
	"sync/atomic"
	"testing"
)

func TestSubmitRunsWork(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	var ran atomic.Int32
	done := make(chan struct{})
	p.Submit(func() {
		ran.Add(1)
		close(done)
	})
	<-done

	if ran.Load() != 1 {
		t.Fatalf("work ran %d times, want 1", ran.Load())
	}
}

func TestExecuteAllWaitsForCompletion(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	const n = 64
	var ran atomic.Int32
	work := make([]func(), n)
	for i := range work {
		work[i] = func() { ran.Add(1) }
	}

	p.ExecuteAll(work)

	if ran.Load() != n {
		t.Fatalf("ran %d items, want %d", ran.Load(), n)
	}
}

func TestSubmitAfterCloseRunsInline(t *testing.T) {
	p := NewWorkerPool(1)
	p.Close()

	ran := false
	p.Submit(func() { ran = true })

	if !ran {
		t.Error("work submitted after Close did not run inline")
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(1)
	p.Close()
	p.Close()
}

func TestDefaultWorkerCount(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()

	if p.Workers() <= 0 {
		t.Errorf("Workers() = %d, want > 0", p.Workers())
	}
}
