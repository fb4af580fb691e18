package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	Init() // second call must not panic on duplicate registration
}

func TestCountersAccumulate(t *testing.T) {
	Init()

	before := testutil.ToFloat64(StoreReads.WithLabelValues("corrupt"))
	StoreReads.WithLabelValues("corrupt").Inc()
	after := testutil.ToFloat64(StoreReads.WithLabelValues("corrupt"))

	if after != before+1 {
		t.Fatalf("expected corrupt reads to grow by 1, got %v -> %v", before, after)
	}
}

func TestBuildInfo(t *testing.T) {
	InitBuildInfo("test", "abc123")
	if got := testutil.ToFloat64(buildInfo.WithLabelValues("test", "abc123")); got != 1 {
		t.Fatalf("build_info gauge = %v, want 1", got)
	}
}
