// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"code.hybscloud.com/bodyio"
)

func TestCollectorCountsTransfer(t *testing.T) {
	c := New("test")
	w, r := bodyio.New(1, bodyio.WithObserver(c))

	w.TryWrite([]byte("hello"))
	w.TryWrite([]byte("blocked"))
	r.TryNext()
	w.TryWrite(nil)
	r.TryNext()
	w.Close()
	r.Close()

	if got := testutil.ToFloat64(c.chunks.WithLabelValues("write")); got != 2 {
		t.Fatalf("write chunks %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.chunks.WithLabelValues("read")); got != 2 {
		t.Fatalf("read chunks %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.bytes.WithLabelValues("write")); got != 5 {
		t.Fatalf("write bytes %v, want 5", got)
	}
	if got := testutil.ToFloat64(c.backpressure); got != 1 {
		t.Fatalf("backpressure %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.closed.WithLabelValues("read")); got != 1 {
		t.Fatalf("read closes %v, want 1", got)
	}
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := New("test")
	if err := reg.Register(c); err != nil {
		t.Fatal(err)
	}
	w, _ := bodyio.New(1, bodyio.WithObserver(c))
	w.Close()

	want := `
# HELP test_bodyio_closed_total Body pipe ends closed, by side.
# TYPE test_bodyio_closed_total counter
test_bodyio_closed_total{side="write"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "test_bodyio_closed_total"); err != nil {
		t.Fatal(err)
	}
}
