package prom

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/matzehuels/causalid/pkg/observability"
)

func TestNew(t *testing.T) {
	r := New()
	if r.IdentifyTotal == nil || r.CacheRequestsTotal == nil || r.RenderTotal == nil {
		t.Fatal("New() left metrics uninitialized")
	}
	if r.registry == nil {
		t.Fatal("Prometheus registry not initialized")
	}
}

func TestIdentifyCounters(t *testing.T) {
	r := New()
	ctx := context.Background()

	r.OnIdentifyComplete(ctx, 0, time.Millisecond, nil)
	r.OnIdentifyComplete(ctx, 0, time.Millisecond, nil)
	r.OnIdentifyComplete(ctx, 1, time.Millisecond, errors.New("hedge"))

	if got := counterValue(t, r.IdentifyTotal, "ok"); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := counterValue(t, r.IdentifyTotal, "error"); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestCacheCounters(t *testing.T) {
	r := New()
	ctx := context.Background()

	r.OnCacheHit(ctx, "identify")
	r.OnCacheMiss(ctx, "identify")
	r.OnCacheMiss(ctx, "identify")
	r.OnCacheSet(ctx, "identify", 512)

	if got := counterValue(t, r.CacheRequestsTotal, "identify", "miss"); got != 2 {
		t.Errorf("miss count = %v, want 2", got)
	}
	if got := counterValue(t, r.CacheWriteBytes, "identify"); got != 512 {
		t.Errorf("write bytes = %v, want 512", got)
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()

	r := New()
	r.Install()
	if observability.Identify() != r {
		t.Error("Install should register identify hooks")
	}
	if observability.Cache() != r {
		t.Error("Install should register cache hooks")
	}
	if observability.Render() != r {
		t.Error("Install should register render hooks")
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.OnNormalize(context.Background(), []int{1, 0, 2})
	r.OnRenderComplete(context.Background(), "svg", 4096, time.Second, nil)

	path := filepath.Join(t.TempDir(), "causalid.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"causalid_normalize_displaced_nodes", "causalid_render_total"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
