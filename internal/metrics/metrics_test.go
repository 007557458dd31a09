package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sadopc/credfetch/internal/host"
)

func TestListen_CountsUnauthorizedEvents(t *testing.T) {
	m := New()
	bus := host.NewBus()
	sub := m.Listen(bus)

	bus.Dispatch(host.EventUnauthorized)
	bus.Dispatch(host.EventUnauthorized)
	bus.Dispatch("something-else")

	if got := testutil.ToFloat64(m.unauthorized); got != 2 {
		t.Fatalf("unauthorized counter = %v, want 2", got)
	}

	sub.Unsubscribe()
	bus.Dispatch(host.EventUnauthorized)
	if got := testutil.ToFloat64(m.unauthorized); got != 2 {
		t.Fatalf("counter moved after unsubscribe: %v", got)
	}
}

func TestObserveReload(t *testing.T) {
	m := New()
	m.ObserveReload()
	if got := testutil.ToFloat64(m.reloads); got != 1 {
		t.Fatalf("reloads counter = %v, want 1", got)
	}
}

func TestWrite_TextFormat(t *testing.T) {
	m := New(WithNamespace("test"))
	m.ObserveReload()

	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "test_reloads_total 1") {
		t.Fatalf("expected reloads counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "test_unauthorized_events_total 0") {
		t.Fatalf("expected unauthorized counter in output, got:\n%s", out)
	}
}

func TestWithNamespace_EmptyKeepsDefault(t *testing.T) {
	m := New(WithNamespace(""))
	if m.namespace != defaultNamespace {
		t.Fatalf("namespace = %q, want %q", m.namespace, defaultNamespace)
	}
	if n, err := testutil.GatherAndCount(m.registry); err != nil || n != 2 {
		t.Fatalf("GatherAndCount = %d, %v; want 2, nil", n, err)
	}
}
