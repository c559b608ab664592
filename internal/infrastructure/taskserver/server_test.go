package taskserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Registry, *httptest.Server) {
	t.Helper()
	reg := NewRegistry(false)
	require.NoError(t, reg.Add(Task{ID: "p", Name: "a.pending"}))
	require.NoError(t, reg.Add(Task{ID: "s", Name: "a.started", State: StateStarted, Progress: 50}))
	require.NoError(t, reg.Add(Task{ID: "f", Name: "a.failed", State: StateFailure, Result: "boom"}))

	srv := httptest.NewServer(NewServer(reg, Options{}).Handler())
	t.Cleanup(srv.Close)
	return reg, srv
}

func getJSON(t *testing.T, rawURL string) (int, map[string]string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestMessages_KeyedByMsgID(t *testing.T) {
	reg, srv := newTestServer(t)
	started, _ := reg.Get("s")

	msgs := `{"p":{"msg_id":"task-msg-p","checksum":"0"},` +
		`"s":{"msg_id":"task-msg-s","checksum":"` + started.Checksum() + `"},` +
		`"f":{"msg_id":"task-msg-f","checksum":12345},` +
		`"x":{"msg_id":"task-msg-x","checksum":"1"}}`
	code, out := getJSON(t, srv.URL+MessagesPath+"?msgs="+url.QueryEscape(msgs))

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, out, 1)
	assert.Contains(t, out["task-msg-f"], "task-failed")
}

func TestMessages_ChangedChecksum(t *testing.T) {
	reg, srv := newTestServer(t)
	msgs := `{"s":{"msg_id":"task-msg-s","checksum":"stale"}}`

	_, out := getJSON(t, srv.URL+MessagesPath+"?msgs="+url.QueryEscape(msgs))
	require.Contains(t, out, "task-msg-s")
	assert.Contains(t, out["task-msg-s"], "50%")

	require.NoError(t, reg.SetState("s", StateSuccess, "done"))
	_, out = getJSON(t, srv.URL+MessagesPath+"?msgs="+url.QueryEscape(msgs))
	assert.Contains(t, out["task-msg-s"], "task-ready")
}

func TestMessages_BadRequest(t *testing.T) {
	_, srv := newTestServer(t)

	code, _ := getJSON(t, srv.URL+MessagesPath)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = getJSON(t, srv.URL+MessagesPath+"?msgs=%7Bnot-json")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTasksByIDs_KeyedByTaskID(t *testing.T) {
	_, srv := newTestServer(t)

	code, out := getJSON(t, srv.URL+TasksByIDsPath+"?p=1&s=1&f=1")

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, out, 2)
	assert.Contains(t, out, "s")
	assert.Contains(t, out, "f")
}

func TestPageHandler(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + PagePath)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestChecksum_Unmarshal(t *testing.T) {
	var refs map[string]msgRef
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"checksum":"x"},"b":{"checksum":17},"c":{"checksum":null}}`), &refs))

	assert.Equal(t, checksum("x"), refs["a"].Checksum)
	assert.Equal(t, checksum("17"), refs["b"].Checksum)
	assert.Equal(t, checksum(""), refs["c"].Checksum)
}
