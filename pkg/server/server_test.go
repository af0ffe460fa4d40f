package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-ttmcts/pkg/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Engine.Seed = 42
	cfg.Server.MaxCycles = 5000

	s, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postBestMove(t *testing.T, ts *httptest.Server, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/bestmove", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out["ok"])
}

func TestBestMove(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Block", func(t *testing.T) {
		resp, out := postBestMove(t, ts, bestMoveRequest{Position: "xox/.o./... x", Iterations: 5000, MultiPv: 2})
		require.Equal(t, http.StatusOK, resp.StatusCode, out)
		require.Equal(t, "b3", out["move"])
		require.EqualValues(t, 7, out["cell"])
		require.EqualValues(t, 5000, out["cycles"])
		require.Equal(t, "Cycles", out["stop_reason"])
		require.Len(t, out["lines"], 2)
		require.NotEmpty(t, out["pv"])
		require.Equal(t, "b3", out["pv"].([]any)[0])
	})

	t.Run("ImmediateWin", func(t *testing.T) {
		resp, out := postBestMove(t, ts, bestMoveRequest{Position: "xx./oo./... x"})
		require.Equal(t, http.StatusOK, resp.StatusCode, out)
		require.Equal(t, "c1", out["move"])
		require.Equal(t, "Decisive", out["stop_reason"])
	})

	t.Run("CyclesCapped", func(t *testing.T) {
		resp, out := postBestMove(t, ts, bestMoveRequest{Position: ".../.../... x", Iterations: 1 << 30})
		require.Equal(t, http.StatusOK, resp.StatusCode, out)
		require.LessOrEqual(t, out["cycles"], float64(5000))
	})
}

func TestBestMoveErrors(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name   string
		body   any
		status int
	}{
		{"BadNotation", bestMoveRequest{Position: "xx/oo"}, http.StatusBadRequest},
		{"UnreachableCount", bestMoveRequest{Position: "xxx/.../..."}, http.StatusBadRequest},
		{"NotJSON", "position", http.StatusBadRequest},
		{"Won", bestMoveRequest{Position: "xxx/oo./... o"}, http.StatusUnprocessableEntity},
		{"Drawn", bestMoveRequest{Position: "xox/xoo/oxx o"}, http.StatusUnprocessableEntity},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, out := postBestMove(t, ts, c.body)
			require.Equal(t, c.status, resp.StatusCode)
			require.NotEmpty(t, out["error"])
		})
	}
}
