package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/mock"
	gkslog "github.com/garagekb/garagekb/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAdapter_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs source name, item count, and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceAdapter{
			ProfileFn: func() garagekb.SourceProfile {
				return garagekb.SourceProfile{Name: "2CarPros", Kind: garagekb.KindForum}
			},
			FetchFn: func(ctx context.Context) ([]garagekb.RawItem, error) {
				return []garagekb.RawItem{{Title: "a"}, {Title: "b"}}, nil
			},
		}

		adapter := gkslog.NewLoggingAdapter(inner, logger)
		items, err := adapter.Fetch(context.Background())

		require.NoError(t, err)
		assert.Len(t, items, 2)
		output := buf.String()
		assert.Contains(t, output, "source fetch")
		assert.Contains(t, output, "source=2CarPros")
		assert.Contains(t, output, "items=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SourceAdapter{
			ProfileFn: func() garagekb.SourceProfile {
				return garagekb.SourceProfile{Name: "2CarPros"}
			},
			FetchFn: func(ctx context.Context) ([]garagekb.RawItem, error) {
				return nil, errors.New("feed down")
			},
		}

		adapter := gkslog.NewLoggingAdapter(inner, logger)
		_, err := adapter.Fetch(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"feed down\"")
	})

	t.Run("profile delegates to the wrapped adapter", func(t *testing.T) {
		t.Parallel()

		inner := &mock.SourceAdapter{
			ProfileFn: func() garagekb.SourceProfile {
				return garagekb.SourceProfile{Name: "ChrisFix", Kind: garagekb.KindVideo}
			},
		}
		adapter := gkslog.NewLoggingAdapter(inner, slog.New(slog.DiscardHandler))
		assert.Equal(t, "ChrisFix", adapter.Profile().Name)
	})
}

func TestLoggingStore_WriteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("logs article count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotStore{
			WriteSnapshotFn: func(ctx context.Context, snapshot *garagekb.Snapshot) error {
				return nil
			},
		}

		store := gkslog.NewLoggingStore(inner, logger)
		err := store.WriteSnapshot(context.Background(), &garagekb.Snapshot{
			Articles: []*garagekb.Article{{ID: "a", Title: "a"}},
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "snapshot write")
		assert.Contains(t, output, "articles=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("propagates and logs write errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotStore{
			WriteSnapshotFn: func(ctx context.Context, snapshot *garagekb.Snapshot) error {
				return errors.New("disk full")
			},
		}

		store := gkslog.NewLoggingStore(inner, logger)
		err := store.WriteSnapshot(context.Background(), &garagekb.Snapshot{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
