package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fixedStats PoolStats

func (f fixedStats) PoolStats() PoolStats { return PoolStats(f) }

func TestDBCollectorCollect(t *testing.T) {
	collector := NewDBCollector(fixedStats{Open: 4, InUse: 1, Idle: 3, MaxOpen: 25})
	collector.collect()

	if got := testutil.ToFloat64(DBConnectionsOpen); got != 4 {
		t.Fatalf("expected 4 open connections, got %v", got)
	}
	if got := testutil.ToFloat64(DBConnectionsMaxOpen); got != 25 {
		t.Fatalf("expected max 25, got %v", got)
	}
}

func TestDBCollectorStopsOnContext(t *testing.T) {
	collector := NewDBCollector(fixedStats{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		collector.Start(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop after context cancel")
	}
}

func TestRecordQueryClassifiesErrors(t *testing.T) {
	before := testutil.ToFloat64(DBErrors.WithLabelValues("test_op", "timeout"))
	RecordQuery("test_op", time.Now(), context.DeadlineExceeded)
	RecordQuery("test_op", time.Now(), nil)
	after := testutil.ToFloat64(DBErrors.WithLabelValues("test_op", "timeout"))
	if after-before != 1 {
		t.Fatalf("expected one timeout error, got %v", after-before)
	}

	before = testutil.ToFloat64(DBErrors.WithLabelValues("test_op", "query_error"))
	RecordQuery("test_op", time.Now(), errors.New("boom"))
	after = testutil.ToFloat64(DBErrors.WithLabelValues("test_op", "query_error"))
	if after-before != 1 {
		t.Fatalf("expected one query error, got %v", after-before)
	}
}
