package patch_test

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/modkit-dev/modkit/internal/adapters/patch"
	"github.com/modkit-dev/modkit/internal/core/domain"
)

var testURL = "mem://localhost/modkit/edited_attributes.json"

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, args ...any) {}
func (l *recordingLogger) Info(msg string, args ...any)  {}
func (l *recordingLogger) Error(msg string, args ...any) {}
func (l *recordingLogger) Warn(msg string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprint(append([]any{msg}, args...)...))
}

func strptr(s string) *string { return &s }

func sourceNode(t *testing.T, name, patched string) *domain.SourceNode {
	t.Helper()
	return domain.NewSourceNode(name, name, domain.LocationKey{
		File:  "assets/units/" + name + ".xml",
		Path:  "/unit/properties",
		Field: name,
	}, domain.SourceValues{Patched: strptr(patched)}, false)
}

func seq(nodes ...*domain.SourceNode) iter.Seq[*domain.SourceNode] {
	return func(yield func(*domain.SourceNode) bool) {
		for _, n := range nodes {
			if !yield(n) {
				return
			}
		}
	}
}

func TestStore_LoadMissingFileIsNoOp(t *testing.T) {
	s := patch.NewStore(afs.New(), &recordingLogger{})

	err := s.Load(context.Background(), "mem://localhost/modkit/absent.json")
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestStore_LoadParseErrorIsFatal(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/modkit/corrupt.json"
	require.NoError(t, fs.Upload(ctx, url, 0o644, strings.NewReader("{not json")))

	s := patch.NewStore(fs, &recordingLogger{})
	err := s.Load(ctx, url)
	require.Error(t, err)
	assert.Zero(t, s.Len(), "a failed load must not partially apply")
}

func TestStore_LoadMergesSources(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	first := "mem://localhost/modkit/first.json"
	second := "mem://localhost/modkit/second.json"
	require.NoError(t, fs.Upload(ctx, first, 0o644,
		strings.NewReader(`{"patches": {"a|p|f": "1", "b|p|f": "2"}}`)))
	require.NoError(t, fs.Upload(ctx, second, 0o644,
		strings.NewReader(`{"patches": {"b|p|f": "overwritten", "c|p|f": "3"}}`)))

	s := patch.NewStore(fs, &recordingLogger{})
	require.NoError(t, s.Load(ctx, first))
	require.NoError(t, s.Load(ctx, second))

	assert.Equal(t, map[string]string{
		"a|p|f": "1",
		"b|p|f": "overwritten",
		"c|p|f": "3",
	}, s.Snapshot())
}

func TestStore_SyncIsExact(t *testing.T) {
	log := &recordingLogger{}
	s := patch.NewStore(afs.New(), log)

	modified := sourceNode(t, "damage", "10")
	require.NoError(t, modified.SetValue(domain.EpochEdited, "15"))
	untouched := sourceNode(t, "hull", "500")

	s.Sync(seq(modified, untouched))
	assert.Equal(t, map[string]string{modified.Key().String(): "15"}, s.Snapshot())

	// Revert the edit: the entry must disappear on the next sync.
	require.NoError(t, modified.SetValue(domain.EpochEdited, "10"))
	s.Sync(seq(modified, untouched))
	assert.Empty(t, s.Snapshot())
}

func TestStore_SyncDropsStaleKeys(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/modkit/stale.json"
	require.NoError(t, fs.Upload(ctx, url, 0o644,
		strings.NewReader(`{"patches": {"removed.xml|/gone|value": "99"}}`)))

	log := &recordingLogger{}
	s := patch.NewStore(fs, log)
	require.NoError(t, s.Load(ctx, url))

	live := sourceNode(t, "damage", "10")
	s.Sync(seq(live))

	assert.Empty(t, s.Snapshot())
	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "removed.xml|/gone|value")
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	log := &recordingLogger{}
	s := patch.NewStore(fs, log)

	damage := sourceNode(t, "damage", "10")
	require.NoError(t, damage.SetValue(domain.EpochEdited, "15"))
	shield := sourceNode(t, "shield", "200")
	require.NoError(t, shield.SetValue(domain.EpochEdited, ""))

	s.Sync(seq(damage, shield))
	require.NoError(t, s.Save(ctx, testURL))

	data, err := fs.DownloadWithURL(ctx, testURL)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"patches"`)

	fresh := patch.NewStore(fs, log)
	require.NoError(t, fresh.Load(ctx, testURL))
	assert.Equal(t, s.Snapshot(), fresh.Snapshot())

	// Freshly rebuilt identical nodes pick the deltas back up by key.
	rebuilt := sourceNode(t, "damage", "10")
	v, ok := fresh.Get(rebuilt.Key().String())
	require.True(t, ok)
	assert.Equal(t, "15", v)
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	url := "mem://localhost/modkit/overwrite.json"
	log := &recordingLogger{}

	s := patch.NewStore(fs, log)
	damage := sourceNode(t, "damage", "10")
	require.NoError(t, damage.SetValue(domain.EpochEdited, "15"))
	s.Sync(seq(damage))
	require.NoError(t, s.Save(ctx, url))

	require.NoError(t, damage.SetValue(domain.EpochEdited, "10"))
	s.Sync(seq(damage))
	require.NoError(t, s.Save(ctx, url))

	fresh := patch.NewStore(fs, log)
	require.NoError(t, fresh.Load(ctx, url))
	assert.Zero(t, fresh.Len())
}
