package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spin/internal/adapters/watcher"
)

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *batchRecorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *batchRecorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/src/b.ts")
		d.Add("/project/src/a.ts")
		d.Add("/project/src/b.ts")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := rec.snapshot()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/project/src/a.ts", "/project/src/b.ts"}, batches[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/a")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		// A second event inside the window pushes the deadline out.
		d.Add("/project/b")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(40 * time.Millisecond)
		synctest.Wait()

		batches := rec.snapshot()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/project/a", "/project/b"}, batches[0])
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("/first")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/second")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/first"}, {"/second"}}, rec.snapshot())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(time.Hour, rec.record)

		d.Add("/project/main.go")
		d.Flush()

		assert.Equal(t, [][]string{{"/project/main.go"}}, rec.snapshot())

		// Nothing pending: the original timer was cancelled.
		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	rec := &batchRecorder{}
	d := watcher.NewDebouncer(time.Second, rec.record)

	d.Flush()
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("/pending")
		d.Stop()
		d.Add("/ignored")

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_Discard(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &batchRecorder{}
		d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

		d.Add("/out/bundle.js")
		d.Discard()

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		d.Add("/src/index.ts")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, [][]string{{"/src/index.ts"}}, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/file")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
