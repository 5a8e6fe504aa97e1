package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/ride-booking/internal/events"
)

// fakeUpdater implements RedisUpdater for tests
type fakeUpdater struct {
	failH    int // number of times to fail HSet before succeeding
	failSAdd int
	hCalls   int
	sAdds    []string
	sRems    []string
}

func (f *fakeUpdater) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	f.hCalls++
	if f.hCalls <= f.failH {
		return errors.New("hset fail")
	}
	return nil
}

func (f *fakeUpdater) SAdd(ctx context.Context, key string, member string) error {
	if len(f.sAdds) < f.failSAdd {
		f.sAdds = append(f.sAdds, member)
		return errors.New("sadd fail")
	}
	f.sAdds = append(f.sAdds, member)
	return nil
}

func (f *fakeUpdater) SRem(ctx context.Context, key string, member string) error {
	f.sRems = append(f.sRems, member)
	return nil
}

func TestUpdateRedisWithRetry_SucceedsAfterRetries(t *testing.T) {
	f := &fakeUpdater{failH: 1}
	e := &events.Envelope{Type: events.TypeBookingCreated, BookingID: 7, At: time.Now()}
	ctx := context.Background()
	start := time.Now()
	if err := updateRedisWithRetry(ctx, f, e, 3, 10*time.Millisecond); err != nil {
		t.Fatalf("expected success, got err=%v", err)
	}
	if f.hCalls < 2 {
		t.Fatalf("expected retries, got hset calls=%d", f.hCalls)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("expected at least one backoff")
	}
	if len(f.sAdds) == 0 || f.sAdds[len(f.sAdds)-1] != "7" {
		t.Fatalf("expected booking added to active set, got %v", f.sAdds)
	}
}

func TestUpdateRedisWithRetry_FailsWhenExhausted(t *testing.T) {
	f := &fakeUpdater{failH: 5}
	e := &events.Envelope{Type: events.TypeBookingCreated, BookingID: 7, At: time.Now()}
	ctx := context.Background()
	if err := updateRedisWithRetry(ctx, f, e, 3, 5*time.Millisecond); err == nil {
		t.Fatalf("expected error after retries")
	}
}

func TestUpdateRedisWithRetry_CancelLeavesActiveSet(t *testing.T) {
	f := &fakeUpdater{}
	e := &events.Envelope{Type: events.TypeBookingCancelled, BookingID: 3, At: time.Now()}
	if err := updateRedisWithRetry(context.Background(), f, e, 1, time.Millisecond); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.sRems) != 1 || f.sRems[0] != "3" {
		t.Fatalf("expected removal from active set, got %v", f.sRems)
	}
}
