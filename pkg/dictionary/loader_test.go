package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource counts fetches and fails the first failUntil calls (or every
// call when failUntil < 0).
type fakeSource struct {
	mu        sync.Mutex
	calls     int
	locators  []string
	failUntil int
	err       error
	files     Files
}

func (f *fakeSource) Fetch(ctx context.Context, locator string) (Files, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.locators = append(f.locators, locator)
	if f.failUntil < 0 || f.calls <= f.failUntil {
		return Files{}, f.err
	}
	return f.files, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func okFiles() Files {
	return Files{Affix: testAffix, Words: testWords}
}

func TestLoaderSuccess(t *testing.T) {
	src := &fakeSource{files: okFiles()}
	loader := NewLoader(src, "data/{language}/{language}", 3, 0, BackoffFixed)

	d, err := loader.Load(context.Background(), "en-US")
	require.NoError(t, err)
	assert.Equal(t, "en-US", d.Language())
	assert.Equal(t, 1, src.callCount())
	assert.Equal(t, []string{"data/en-US/en-US"}, src.locators)
}

func TestLoaderRetriesExactlyMaxAttempts(t *testing.T) {
	src := &fakeSource{failUntil: -1, err: errors.New("disk hiccup")}
	loader := NewLoader(src, "{language}", 3, 0, BackoffFixed)

	_, err := loader.Load(context.Background(), "en-US")
	require.Error(t, err)
	assert.Equal(t, 3, src.callCount())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "en-US", loadErr.Language)
	assert.Equal(t, 3, loadErr.Attempts)
	assert.EqualError(t, loadErr.Err, "disk hiccup")
}

func TestLoaderRecoversMidway(t *testing.T) {
	src := &fakeSource{failUntil: 2, err: errors.New("transient"), files: okFiles()}
	loader := NewLoader(src, "{language}", 3, 0, BackoffFixed)

	d, err := loader.Load(context.Background(), "en-US")
	require.NoError(t, err)
	assert.Equal(t, 3, src.callCount())
	assert.Equal(t, 10, d.WordCount())
}

func TestLoaderNotFoundFailsImmediately(t *testing.T) {
	src := &fakeSource{failUntil: -1, err: ErrNotFound}
	loader := NewLoader(src, "{language}", 5, 0, BackoffFixed)

	_, err := loader.Load(context.Background(), "xx-XX")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, src.callCount())
}

func TestLoaderCanceledContextStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{failUntil: -1, err: context.Canceled}
	loader := NewLoader(src, "{language}", 5, 0, BackoffFixed)

	_, err := loader.Load(ctx, "en-US")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, src.callCount())
}

func TestLoaderParseFailureRetried(t *testing.T) {
	// Fetch succeeds but the word list is empty, which fails parsing.
	src := &fakeSource{files: Files{Words: []byte("\n")}}
	loader := NewLoader(src, "{language}", 2, 0, BackoffFixed)

	_, err := loader.Load(context.Background(), "en-US")
	require.Error(t, err)
	assert.Equal(t, 2, src.callCount())
}

func TestLoaderClampsAttempts(t *testing.T) {
	src := &fakeSource{failUntil: -1, err: errors.New("nope")}
	loader := NewLoader(src, "{language}", 0, 0, BackoffFixed)

	_, err := loader.Load(context.Background(), "en-US")
	require.Error(t, err)
	assert.Equal(t, 1, src.callCount())
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "en-US")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "en-US.dic"), testWords, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "en-US.aff"), testAffix, 0o644))

	src := NewDirSource(dir)

	files, err := src.Fetch(context.Background(), "en-US/en-US")
	require.NoError(t, err)
	assert.Equal(t, testWords, files.Words)
	assert.Equal(t, testAffix, files.Affix)

	_, err = src.Fetch(context.Background(), "fr-FR/fr-FR")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirSourceMissingAffixTolerated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de-DE.dic"), []byte("wort\n"), 0o644))

	src := NewDirSource(dir)
	files, err := src.Fetch(context.Background(), "de-DE")
	require.NoError(t, err)
	assert.Nil(t, files.Affix)
	assert.NotEmpty(t, files.Words)
}
