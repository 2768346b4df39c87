package history_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ja-he/wardmap/internal/history"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func immediate(maxSize int) history.Options {
	return history.Options{MaxSize: maxSize}
}

func never() history.Options {
	return history.Options{MaxSize: 10, Debounce: time.Hour}
}

func TestBounds(t *testing.T) {
	m := history.NewManager("t0", immediate(3))
	for _, text := range []string{"t1", "t2", "t3", "t4", "t5"} {
		require.NoError(t, m.Request(text, "move", "", ""))
	}
	undo, redo := m.Depth()
	assert.Equal(t, 3, undo)
	assert.Equal(t, 0, redo)

	for i := 0; i < 3; i++ {
		_, moved := m.Undo()
		require.True(t, moved)
	}
	assert.Equal(t, "t2", m.Current())

	text, moved := m.Undo()
	assert.False(t, moved)
	assert.Equal(t, "t2", text)
}

func TestRedo(t *testing.T) {
	m := history.NewManager("t0", immediate(10))
	require.NoError(t, m.Request("t1", "move", "", ""))
	require.NoError(t, m.Request("t2", "move", "", ""))

	text, _ := m.Undo()
	assert.Equal(t, "t1", text)
	assert.True(t, m.CanRedo())

	text, _ = m.Undo()
	assert.Equal(t, "t0", text)
	assert.True(t, m.CanRedo(), "undo must not clear redo")

	text, moved := m.Redo()
	assert.True(t, moved)
	assert.Equal(t, "t1", text)

	require.NoError(t, m.Request("t3", "insert", "", ""))
	assert.False(t, m.CanRedo(), "a commit clears redo")
	_, moved = m.Redo()
	assert.False(t, moved)
	assert.Equal(t, "t3", m.Current())
}

func TestCoalescing(t *testing.T) {

	t.Run("same group is one step", func(t *testing.T) {
		m := history.NewManager("t0", never())
		defer m.Close()

		for _, text := range []string{"a1", "a2", "a3"} {
			require.NoError(t, m.Request(text, "move", "drag", "g1"))
		}
		assert.Equal(t, history.PendingCommit, m.State())
		assert.Equal(t, "a3", m.Current())
		assert.Equal(t, "t0", m.Committed())

		m.Flush()
		assert.Equal(t, history.Idle, m.State())
		undo, _ := m.Depth()
		assert.Equal(t, 1, undo)

		text, _ := m.Undo()
		assert.Equal(t, "t0", text)
	})

	t.Run("different requests flush the pending one", func(t *testing.T) {
		m := history.NewManager("t0", never())
		defer m.Close()

		require.NoError(t, m.Request("a", "move", "", "g1"))
		require.NoError(t, m.Request("b", "move", "", "g2"))
		assert.Equal(t, "a", m.Committed())
		require.NoError(t, m.Request("c", "insert", "", ""))
		assert.Equal(t, "b", m.Committed())
		require.NoError(t, m.Request("d", "insert", "", ""))
		assert.Equal(t, "c", m.Committed())

		m.Flush()
		undo, _ := m.Depth()
		assert.Equal(t, 4, undo)
	})

	t.Run("undo flushes first", func(t *testing.T) {
		m := history.NewManager("t0", never())
		defer m.Close()

		require.NoError(t, m.Request("x", "move", "", "g1"))
		assert.True(t, m.CanUndo())
		text, moved := m.Undo()
		assert.True(t, moved)
		assert.Equal(t, "t0", text)

		text, moved = m.Redo()
		assert.True(t, moved)
		assert.Equal(t, "x", text)
	})

	t.Run("edits changing nothing are dropped", func(t *testing.T) {
		m := history.NewManager("t0", immediate(10))
		require.NoError(t, m.Request("t0", "move", "", ""))
		assert.False(t, m.CanUndo())
	})
}

func TestDebounceWindow(t *testing.T) {

	t.Run("commits after the window", func(t *testing.T) {
		m := history.NewManager("t0", history.Options{MaxSize: 10, Debounce: 20 * time.Millisecond})
		defer m.Close()

		require.NoError(t, m.Request("x", "move", "", "g"))
		require.Eventually(t, func() bool { return m.State() == history.Idle }, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, "x", m.Committed())
	})

	t.Run("trailing edge", func(t *testing.T) {
		m := history.NewManager("t0", history.Options{MaxSize: 10, Debounce: 200 * time.Millisecond})
		defer m.Close()

		require.NoError(t, m.Request("a", "move", "", "g"))
		time.Sleep(120 * time.Millisecond)
		require.NoError(t, m.Request("b", "move", "", "g"))
		time.Sleep(120 * time.Millisecond)
		assert.Equal(t, history.PendingCommit, m.State(), "a same-group request restarts the window")

		require.Eventually(t, func() bool { return m.State() == history.Idle }, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, "b", m.Committed())
		undo, _ := m.Depth()
		assert.Equal(t, 1, undo)
	})
}

func TestCallbacks(t *testing.T) {

	t.Run("panics leave the history consistent", func(t *testing.T) {
		m := history.NewManager("t0", immediate(10))
		m.OnCommit(func(history.Entry) { panic("ui exploded") })

		require.NotPanics(t, func() {
			require.NoError(t, m.Request("t1", "move", "", ""))
		})
		assert.Equal(t, "t1", m.Current())
		text, moved := m.Undo()
		assert.True(t, moved)
		assert.Equal(t, "t0", text)
	})

	t.Run("requests from a callback are queued", func(t *testing.T) {
		m := history.NewManager("t0", immediate(10))
		seen := []string{}
		var reentrantErr error
		m.OnCommit(func(e history.Entry) {
			seen = append(seen, e.Text)
			if e.Text == "t1" {
				reentrantErr = m.Request("t2", "insert", "follow-up", "")
				// not applied yet
				assert.Equal(t, "t1", m.Committed())
			}
		})

		require.NoError(t, m.Request("t1", "move", "", ""))
		require.NoError(t, reentrantErr)
		assert.Equal(t, []string{"t1", "t2"}, seen)
		assert.Equal(t, "t2", m.Current())
		undo, _ := m.Depth()
		assert.Equal(t, 2, undo)
	})

	t.Run("entries carry their tags", func(t *testing.T) {
		m := history.NewManager("t0", immediate(10))
		var got history.Entry
		m.OnCommit(func(e history.Entry) { got = e })
		require.NoError(t, m.Request("t1", "rename", "rename A to B", "grp"))

		assert.Equal(t, history.ActionType("rename"), got.Action)
		assert.Equal(t, "rename A to B", got.Description)
		assert.Equal(t, "grp", got.Group)
		assert.False(t, got.Time.IsZero())

		top, ok := m.Peek()
		require.True(t, ok)
		assert.Equal(t, "t0", top.Text)
		assert.Equal(t, "rename A to B", top.Description)
	})
}

func TestClose(t *testing.T) {
	m := history.NewManager("t0", never())
	var commits atomic.Int32
	m.OnCommit(func(history.Entry) { commits.Add(1) })

	require.NoError(t, m.Request("x", "move", "", "g"))
	m.Close()
	assert.Equal(t, "x", m.Committed(), "close commits the pending edit")
	assert.Equal(t, int32(1), commits.Load())
	assert.Equal(t, history.Idle, m.State())

	assert.ErrorIs(t, m.Request("y", "move", "", ""), history.ErrClosed)
	assert.Equal(t, "x", m.Current())

	m.Close()
}

func TestReset(t *testing.T) {
	m := history.NewManager("t0", never())
	defer m.Close()
	require.NoError(t, m.Request("a", "move", "", ""))
	require.NoError(t, m.Request("b", "move", "", ""))

	m.Reset("fresh")
	assert.Equal(t, "fresh", m.Current())
	assert.Equal(t, history.Idle, m.State())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestDebouncer(t *testing.T) {

	t.Run("cancel", func(t *testing.T) {
		d := history.NewDebouncer(10 * time.Millisecond)
		var called atomic.Bool
		d.Schedule("g", func() { called.Store(true) })
		group, ok := d.Pending()
		assert.True(t, ok)
		assert.Equal(t, "g", group)

		d.Cancel()
		_, ok = d.Pending()
		assert.False(t, ok)
		time.Sleep(30 * time.Millisecond)
		assert.False(t, called.Load())
	})

	t.Run("flush", func(t *testing.T) {
		d := history.NewDebouncer(time.Hour)
		calls := 0
		d.Schedule("g", func() { calls++ })
		d.Schedule("g", func() { calls += 10 })
		assert.True(t, d.Flush())
		assert.Equal(t, 10, calls, "only the last scheduled function runs")
		assert.False(t, d.Flush())
	})

	t.Run("fires once", func(t *testing.T) {
		d := history.NewDebouncer(5 * time.Millisecond)
		var calls atomic.Int32
		d.Schedule("g", func() { calls.Add(1) })
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})
}
