package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarquet/carfleet/internal/models"
)

func newTestStore(t *testing.T) *CustomerStore {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "customers.txt"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := []*models.Customer{
		{CustomerID: "c-1", DisplayName: "John Doe", Password: "123", Contact: "999-111-2222", Email: "john@example.com"},
		{CustomerID: "c-2", DisplayName: "Alice Smith", Password: "pw", Contact: "999-333-4444", Email: "alice@example.com"},
		{CustomerID: "c-3", DisplayName: "Zoë Müller", Password: "päss", Contact: "+49 30 123", Email: "zoe@example.de"},
	}

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFileReturnsEmptySet(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadSkipsBlankAndMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.txt")
	raw := "c-1|John Doe|123|555-0000|john@example.com\n" +
		"\n" +
		"   \n" +
		"not|enough|fields\n" +
		"way|too|many|fields|in|this|line\n" +
		"c-2|Alice Smith|pw|555-1111|alice@example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	got, err := New(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-1", got[0].CustomerID)
	assert.Equal(t, "c-2", got[1].CustomerID)
}

func TestDelimiterInFieldsSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := []*models.Customer{
		{CustomerID: "c-1", DisplayName: "Pipe|Person", Password: `a\b|c`, Contact: "555-0000", Email: "pipe@example.com"},
	}

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The raw file keeps one record per line with the delimiters escaped.
	raw, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.Equal(t, `c-1|Pipe\|Person|a\\b\|c|555-0000|pipe@example.com`+"\n", string(raw))
}

func TestLegacyUnescapedFileLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.txt")
	raw := "C1755012345678|Jane|pw123|555-0000|jane@x.com\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	got, err := New(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C1755012345678", got[0].CustomerID)
	assert.Equal(t, "Jane", got[0].DisplayName)
	assert.Equal(t, "pw123", got[0].Password)
	assert.Equal(t, "555-0000", got[0].Contact)
	assert.Equal(t, "jane@x.com", got[0].Email)
}

func TestSaveRewritesWholeFile(t *testing.T) {
	s := newTestStore(t)
	first := []*models.Customer{
		{CustomerID: "c-1", DisplayName: "A", Password: "p", Contact: "1", Email: "a@x.com"},
		{CustomerID: "c-2", DisplayName: "B", Password: "p", Contact: "2", Email: "b@x.com"},
	}
	require.NoError(t, s.Save(first))

	second := first[:1]
	require.NoError(t, s.Save(second))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSplitRecordKeepsTrailingEmptyField(t *testing.T) {
	fields := splitRecord("c-1|Jane|pw||")
	require.Len(t, fields, 5)
	assert.Equal(t, "", fields[3])
	assert.Equal(t, "", fields[4])
}
