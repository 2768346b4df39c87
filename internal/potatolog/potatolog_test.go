package potatolog_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/wardmap/internal/potatolog"
)

func TestMemoryLog(t *testing.T) {
	w := potatolog.NewMemoryLogReaderWriter(3)
	logger := zerolog.New(w)

	for i := 0; i < 5; i++ {
		logger.Warn().Int("line", i).Msg("recovered name")
	}

	entries := w.Get()
	require.Len(t, entries, 3)
	assert.Equal(t, float64(2), entries[0]["line"], "oldest entries are evicted")
	assert.Equal(t, float64(4), entries[2]["line"])

	tail := w.Tail(1)
	require.Len(t, tail, 1)
	assert.Equal(t, "WARN  recovered name line=4", potatolog.Format(tail[0]))

	// the returned slice is a copy
	entries[0] = nil
	assert.NotNil(t, w.Get()[0])
}

func TestWriteRejectsGarbage(t *testing.T) {
	w := potatolog.NewMemoryLogReaderWriter(3)
	_, err := w.Write([]byte("not json"))
	assert.Error(t, err)
	assert.Empty(t, w.Get())
}
