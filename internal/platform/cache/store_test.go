package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected value")

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad(context.Background(), "answer", loader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.(int) != 42 {
			t.Fatalf("unexpected value: %v", v)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "published:clubs", 1)
	store.Set(ctx, "published:matches:liga", 2)
	store.Set(ctx, "staging:latest", 3)

	store.DeletePrefix(ctx, "published:")

	if _, ok := store.Get(ctx, "published:clubs"); ok {
		t.Fatal("expected published:clubs to be evicted")
	}
	if _, ok := store.Get(ctx, "published:matches:liga"); ok {
		t.Fatal("expected published:matches:liga to be evicted")
	}
	if _, ok := store.Get(ctx, "staging:latest"); !ok {
		t.Fatal("expected staging:latest to survive")
	}
}

func TestStore_ExpiredEntryIsMiss(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "key", "value")
	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("expected expired entry to be a miss")
	}
}
