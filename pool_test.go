package md2typst

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"
)

var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit above max is kept",
			workers: 12,
			want:    12,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		pool := NewConverterPool(n)
		if pool.Size() != 1 {
			t.Errorf("NewConverterPool(%d).Size() = %d, want 1", n, pool.Size())
		}
	}
}

func TestConverterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3, WithCompiler(&fakeCompiler{}))
	defer pool.Close()

	if pool.created != 0 {
		t.Fatalf("created = %d before first Acquire, want 0", pool.created)
	}

	first, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(first)

	again, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if again != first {
		t.Error("Acquire() after Release should reuse the released converter")
	}
	if pool.created != 1 {
		t.Errorf("created = %d, want 1", pool.created)
	}
	pool.Release(again)
}

func TestConverterPool_BlocksAtCapacity(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithCompiler(&fakeCompiler{}))
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	acquired := make(chan *Converter)
	go func() {
		c, _ := pool.Acquire()
		acquired <- c
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire() returned while the only converter was in use")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(conv)

	select {
	case got := <-acquired:
		if got != conv {
			t.Error("blocked Acquire() should receive the released converter")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire() still blocked after Release")
	}
}

func TestConverterPool_CreationError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithStyle("no-such-style"))
	defer pool.Close()

	if _, err := pool.Acquire(); err == nil {
		t.Fatal("Acquire() with a bad style should fail")
	}
	if pool.created != 0 {
		t.Errorf("created = %d after failed creation, want 0", pool.created)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	compiler := &fakeCompiler{}
	pool := NewConverterPool(2, WithCompiler(compiler))

	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !compiler.closed {
		t.Error("Close() should close the converters' compiler")
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	pool.Release(conv)
	if _, err := pool.Acquire(); err != ErrPoolClosed {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(4, WithCompiler(&fakeCompiler{}))
	defer pool.Close()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			conv, err := pool.Acquire()
			if err != nil {
				t.Errorf("worker %d: Acquire() error = %v", i, err)
				return
			}
			defer pool.Release(conv)

			if _, err := conv.Convert(context.Background(), Input{Markdown: "# x", TypstOnly: true}); err != nil {
				t.Errorf("worker %d: Convert() error = %v", i, err)
			}
		})
	}
	wg.Wait()

	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.created > 4 {
		t.Errorf("created = %d, want <= 4", pool.created)
	}
}
