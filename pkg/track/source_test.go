package track

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRace(t *testing.T) {
	tests := []struct {
		input   string
		want    Race
		wantErr bool
	}{
		{"rennet", RaceRennet, false},
		{"rittet", RaceRittet, false},
		{"lopet", RaceLopet, false},
		{"løpet", RaceLopet, false},
		{"marathon", "", true},
		{"", "", true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseRace(test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.gpx")
	require.NoError(t, os.WriteFile(path, []byte("<gpx/>"), 0o644))

	source := &FileSource{Path: path}
	markup, err := source.GPX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<gpx/>", markup)

	source = &FileSource{Path: filepath.Join(t.TempDir(), "missing.gpx")}
	_, err = source.GPX(context.Background())
	assert.Error(t, err)
}

func TestTrackerSource(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = map[string]string{
				"project":    r.URL.Query().Get("project"),
				"sluttid":    r.URL.Query().Get("sluttid"),
				"fileFormat": r.URL.Query().Get("fileFormat"),
			}
			//nolint:errcheck // test stub
			w.Write([]byte("<gpx/>"))
		}))
	defer server.Close()

	source := NewTrackerSource(RaceRennet, 4*3600+30*60, WithTrackerURL(server.URL))
	markup, err := source.GPX(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "<gpx/>", markup)
	assert.Equal(t, "/splitLive/dumpRoute.php", gotPath)
	assert.Equal(t, "rennet", gotQuery["project"])
	assert.Equal(t, "16200", gotQuery["sluttid"])
	assert.Equal(t, "gpx", gotQuery["fileFormat"])
}

func TestTrackerSource_ServerError(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer server.Close()

	source := NewTrackerSource(RaceRittet, 3600, WithTrackerURL(server.URL))
	_, err := source.GPX(context.Background())
	assert.Error(t, err)
}
