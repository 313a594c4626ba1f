package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/pkg/adapters/memory"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T, opts ...scena.Option) (*scena.Workspace, *memory.Source) {
	t.Helper()
	b := dsl.New()
	b.Layer("A")
	g1 := b.Group("g1").Title("Hero")
	g1.Layer("B").CSS("left: 10px")
	g1.Layer("C")
	src, err := b.Build()
	require.NoError(t, err)

	ws, err := scena.New("", append([]scena.Option{scena.WithSource(src)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, ws.Load(context.Background()))
	return ws, src
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))
	return w
}

func TestSelectAndDrill(t *testing.T) {
	ws, _ := newWorkspace(t)
	h := NewHandler(ws)

	w := post(t, h, "/select", dto.SelectRequest{
		Gesture: domain.Gesture{IsClick: true, Added: []string{"B", "C"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ModeCompleted, resp.Mode)
	assert.Equal(t, []dto.Target{{Group: "g1", Children: []dto.Target{{Element: "B"}, {Element: "C"}}}}, resp.Selected)
	assert.Equal(t, []string{"B", "C"}, resp.Elements)

	w = post(t, h, "/drill", dto.DrillRequest{Selected: resp.Selected, Target: "C"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.ModeSub, resp.Mode)
	assert.Equal(t, []dto.Target{{Element: "C"}}, resp.Selected)
}

func TestSelect_BadRequests(t *testing.T) {
	ws, _ := newWorkspace(t)
	h := NewHandler(ws)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/select", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/drill", dto.DrillRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTreeAndChildren(t *testing.T) {
	ws, _ := newWorkspace(t)
	h := NewHandler(ws)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tree", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var tree []dto.Target
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tree))
	assert.Equal(t, []dto.Target{
		{Element: "A"},
		{Group: "g1", Children: []dto.Target{{Element: "B"}, {Element: "C"}}},
	}, tree)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/children?scope=", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var entries []dto.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, dto.KindGroup, entries[1].Kind)
	assert.Equal(t, "Hero", entries[1].Title)
	assert.Len(t, entries[1].Children, 2)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/children?scope=g1", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].ID)
}

func TestCSS(t *testing.T) {
	store := memory.NewStore()
	ws, _ := newWorkspace(t, scena.WithStore(store, "canvas"))
	h := NewHandler(ws)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/layers/B/css", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"left":"10px"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/layers/B/css", strings.NewReader("top: 4px")))
	require.Equal(t, http.StatusNoContent, w.Code)

	doc, err := store.Load(context.Background(), "canvas")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"left": "10px", "top": "4px"}, doc.Layers[1].Style)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/layers/missing/css", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	ws, _ := newWorkspace(t)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("scena_selections_total 0\n"))
	})
	h := NewHandler(ws, WithMetricsHandler(metrics))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "scena_selections_total")
}

func TestSubscribeEvents_Reload(t *testing.T) {
	ws, src := newWorkspace(t)
	h := NewHandler(ws)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(w, req)
	}()

	// Give the handler time to register its watcher.
	time.Sleep(50 * time.Millisecond)
	src.Update(&domain.Document{})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "event: reload")
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, unsubscribe := sm.Subscribe("s1")

	sm.Broadcast("s1", Message{Event: "select", Data: "{}"})
	sm.Broadcast("other", Message{Event: "select", Data: "x"})

	msg := <-ch
	assert.Equal(t, "{}", msg.Data)
	unsubscribe()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestSessions(t *testing.T) {
	ws, _ := newWorkspace(t)
	h := NewHandler(ws)

	w := post(t, h, "/select", dto.SelectRequest{
		Session: "tab",
		Gesture: domain.Gesture{IsClick: true, Added: []string{"B", "C"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No selection in the body: the drill continues from the stored one.
	w = post(t, h, "/drill", dto.DrillRequest{Session: "tab", Target: "C"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []dto.Target{{Element: "C"}}, resp.Selected)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/tab", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"element":"C"}]`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/tab", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/tab", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSessions_ExplicitSelectionWins(t *testing.T) {
	ws, _ := newWorkspace(t)
	h := NewHandler(ws)

	require.Equal(t, http.StatusOK, post(t, h, "/select", dto.SelectRequest{
		Session: "tab",
		Gesture: domain.Gesture{IsClick: true, Added: []string{"A"}},
	}).Code)

	// An explicit empty selection replaces the stored [A].
	w := post(t, h, "/select", dto.SelectRequest{
		Session:  "tab",
		Selected: []dto.Target{},
		Gesture:  domain.Gesture{IsClick: true, Shift: true, Added: []string{"B"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.SelectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"B"}, resp.Elements)
}
