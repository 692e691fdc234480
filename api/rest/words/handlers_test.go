package words

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/wexam/words"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWordStore struct {
	saved   map[string]words.SavedWord
	history []words.HistoryEntry
}

func newMemoryWordStore() *memoryWordStore {
	return &memoryWordStore{saved: map[string]words.SavedWord{}}
}

func (m *memoryWordStore) Save(_ context.Context, userID, word string, entry json.RawMessage) (*words.SavedWord, error) {
	id, err := words.WordID(word)
	if err != nil {
		return nil, err
	}
	w := words.SavedWord{WordID: id, Word: strings.TrimSpace(word), Entry: entry, SavedAt: time.Now()}
	m.saved[userID+"/"+id] = w
	return &w, nil
}

func (m *memoryWordStore) Remove(_ context.Context, userID, word string) error {
	id, err := words.WordID(word)
	if err != nil {
		return err
	}
	if _, ok := m.saved[userID+"/"+id]; !ok {
		return words.ErrWordNotFound
	}
	delete(m.saved, userID+"/"+id)
	return nil
}

func (m *memoryWordStore) IsSaved(_ context.Context, userID, word string) (bool, error) {
	id, err := words.WordID(word)
	if err != nil {
		return false, err
	}
	_, ok := m.saved[userID+"/"+id]
	return ok, nil
}

func (m *memoryWordStore) List(_ context.Context, userID string) ([]words.SavedWord, error) {
	list := []words.SavedWord{}
	for key, w := range m.saved {
		if strings.HasPrefix(key, userID+"/") {
			list = append(list, w)
		}
	}
	return list, nil
}

func (m *memoryWordStore) AddHistory(_ context.Context, _ string, word string) (*words.HistoryEntry, error) {
	if _, err := words.WordID(word); err != nil {
		return nil, err
	}
	e := words.HistoryEntry{Word: word, SearchedAt: time.Now()}
	m.history = append([]words.HistoryEntry{e}, m.history...)
	return &e, nil
}

func (m *memoryWordStore) History(_ context.Context, _ string, limit int) ([]words.HistoryEntry, error) {
	return m.history[:min(limit, len(m.history))], nil
}

func newRouter(t *testing.T, store WordStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	token, err := verifier.Issue("reader", "r@example.com", "", 0)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), verifier, store)
	return r, token
}

func send(r *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveWord_CaseInsensitiveAndIdempotent(t *testing.T) {
	store := newMemoryWordStore()
	r, token := newRouter(t, store)

	require.Equal(t, http.StatusOK, send(r, token, http.MethodPut, "/api/v1/words/Ephemeral", `{"entry":{"word":"ephemeral"}}`).Code)
	require.Equal(t, http.StatusOK, send(r, token, http.MethodPut, "/api/v1/words/ephemeral", "").Code)
	assert.Len(t, store.saved, 1)

	w := send(r, token, http.MethodGet, "/api/v1/words/EPHEMERAL/saved", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"word":"ephemeral","saved":true}`, w.Body.String())
}

func TestSaveWord_InvalidEntry(t *testing.T) {
	r, token := newRouter(t, newMemoryWordStore())

	w := send(r, token, http.MethodPut, "/api/v1/words/ephemeral", `{"entry":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveWord(t *testing.T) {
	store := newMemoryWordStore()
	r, token := newRouter(t, store)

	assert.Equal(t, http.StatusNotFound, send(r, token, http.MethodDelete, "/api/v1/words/zenith", "").Code)

	send(r, token, http.MethodPut, "/api/v1/words/zenith", "")
	assert.Equal(t, http.StatusOK, send(r, token, http.MethodDelete, "/api/v1/words/Zenith", "").Code)
	assert.Empty(t, store.saved)
}

func TestHistory(t *testing.T) {
	r, token := newRouter(t, newMemoryWordStore())

	assert.Equal(t, http.StatusBadRequest, send(r, token, http.MethodPost, "/api/v1/history", `{}`).Code)

	for _, word := range []string{"nebula", "azure", "prism"} {
		require.Equal(t, http.StatusCreated, send(r, token, http.MethodPost, "/api/v1/history", `{"word":"`+word+`"}`).Code)
	}

	w := send(r, token, http.MethodGet, "/api/v1/history?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		History []words.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.History, 2)
	assert.Equal(t, "prism", body.History[0].Word)
}
