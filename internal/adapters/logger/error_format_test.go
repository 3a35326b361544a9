package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/datagen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		entries := logger.CollectErrorEntries(errors.New("simple error"))
		assert.Equal(t, []logger.ErrorEntry{{Message: "simple error"}}, entries)
	})

	t.Run("zerr chain", func(t *testing.T) {
		err := zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer")

		entries := logger.CollectErrorEntries(err)
		var messages []string
		for _, e := range entries {
			messages = append(messages, e.Message)
		}
		assert.Equal(t, []string{"outer", "middle", "root cause"}, messages)
	})

	t.Run("metadata is kept per link", func(t *testing.T) {
		inner := zerr.With(zerr.New("inner"), "path", "/out/a.json")
		outer := zerr.With(zerr.Wrap(inner, "outer"), "provider", "blocks")

		entries := logger.CollectErrorEntries(outer)
		assert.Len(t, entries, 2)
		assert.Equal(t, "blocks", entries[0].Metadata["provider"])
		assert.Equal(t, "/out/a.json", entries[1].Metadata["path"])
	})

	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, logger.CollectErrorEntries(nil))
	})
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "three entries",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted alphabetically",
			entries: []logger.ErrorEntry{{
				Message:  "error",
				Metadata: map[string]any{"zebra": "z", "alpha": "a"},
			}},
			want: "Error: error\n       alpha: a\n       zebra: z",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"line": 3}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      line: 3",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}},
			want:    "Error: line1\n       line2",
		},
		{
			name:    "empty",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
