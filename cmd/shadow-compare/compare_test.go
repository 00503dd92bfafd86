package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresVolatileKeys(t *testing.T) {
	ignore := splitKeys("signInDate")
	a := []byte(`{"data":[{"id":1,"status":"present","signInDate":"2024-03-04T08:30:00Z"}]}`)
	b := []byte(`{"data":[{"id":1.0,"status":"present","signInDate":"2024-03-04T08:31:12Z"}]}`)

	assert.True(t, bodiesEqual(a, b, ignore))
	assert.False(t, bodiesEqual(a, b, nil))
}

func TestBodiesEqualDetectsDifferences(t *testing.T) {
	assert.False(t, bodiesEqual([]byte(`{"status":"present"}`), []byte(`{"status":"late"}`), nil))
	assert.False(t, bodiesEqual([]byte(`not json`), []byte(`{}`), nil))
	assert.True(t, bodiesEqual([]byte("plain\n"), []byte("plain"), nil))
}

func TestCompareTargetAgainstServers(t *testing.T) {
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"CS101","name":"Intro"}]`))
	}))
	defer legacy.Close()

	goAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/subjects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[ {"name":"Intro","id":"CS101"} ]`))
	}))
	defer goAPI.Close()

	opts := compareOptions{GoBase: goAPI.URL + "/api", LegacyBase: legacy.URL, Token: "tok"}
	comp := compareTarget(goAPI.Client(), opts, target{Method: "get", Path: "subjects", Critical: true})

	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
	assert.False(t, comp.diverged())
}

func TestCompareTargetRejectsWrites(t *testing.T) {
	comp := compareTarget(http.DefaultClient, compareOptions{GoBase: "http://127.0.0.1:1"}, target{Method: "DELETE", Path: "/students/1"})
	require.Error(t, comp.Error)
	assert.Contains(t, comp.Error.Error(), "not replayable")
}

func TestTallyAndReport(t *testing.T) {
	results := []comparison{
		{Target: target{Method: "GET", Path: "/a", Critical: true}, StatusMatch: true, BodyMatch: true},
		{Target: target{Method: "GET", Path: "/b", Critical: true}, StatusMatch: false, BodyMatch: true},
		{Target: target{Method: "GET", Path: "/c"}, StatusMatch: true, BodyMatch: false},
		{Target: target{Method: "GET", Path: "/d"}, Error: os.ErrDeadlineExceeded},
	}

	breaking, optional := tally(results)
	assert.Equal(t, 1, breaking)
	assert.Equal(t, 1, optional)

	var buf bytes.Buffer
	printReport(&buf, results)
	assert.Contains(t, buf.String(), "[OK] GET /a")
	assert.Contains(t, buf.String(), "[DIFF] GET /b")
	assert.Contains(t, buf.String(), "[ERROR] GET /d")
}

func TestLoadTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[{"method":"GET","path":"/subjects","critical":true}]}`), 0o600))

	targets, err := loadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.True(t, targets[0].Critical)

	require.NoError(t, os.WriteFile(path, []byte(`{"targets":[]}`), 0o600))
	_, err = loadTargets(path)
	assert.Error(t, err)
}
