package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/dictionary"
	"codeberg.org/wexam/server/wexam/words"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookuper struct {
	lookupErr  error
	suggestErr error
}

func (s *stubLookuper) Lookup(_ context.Context, word string) (*dictionary.Lookup, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return &dictionary.Lookup{Word: word, Synonyms: []string{}, Antonyms: []string{}}, nil
}

func (s *stubLookuper) Suggest(_ context.Context, query string) ([]string, error) {
	if s.suggestErr != nil {
		return nil, s.suggestErr
	}
	return []string{query + "py"}, nil
}

func (s *stubLookuper) Daily(context.Context) *dictionary.Daily {
	return &dictionary.Daily{WordOfTheDay: dictionary.WordOfTheDay{Word: "petrichor"}}
}

type memoryHistory struct {
	mu      sync.Mutex
	entries map[string][]string
	err     error
}

func (m *memoryHistory) AddHistory(_ context.Context, userID, word string) (*words.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.entries == nil {
		m.entries = map[string][]string{}
	}
	m.entries[userID] = append(m.entries[userID], word)

	return &words.HistoryEntry{Word: word, SearchedAt: time.Now()}, nil
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	return getWithToken(r, path, "")
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newVerifier(t *testing.T) *auth.JWTVerifier {
	t.Helper()

	verifier, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)
	return verifier
}

func newRouterWithHistory(t *testing.T, l Lookuper, history HistoryRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), newVerifier(t), l, history)
	return r
}

func newRouter(l Lookuper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	verifier, _ := auth.NewJWTVerifier("test-secret")
	RegisterRoutes(r.Group("/api/v1"), verifier, l, nil)
	return r
}

func TestLookupHandler(t *testing.T) {
	w := get(newRouter(&stubLookuper{}), "/api/v1/dictionary/happy")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"word":"happy"`)

	w = get(newRouter(&stubLookuper{lookupErr: dictionary.ErrNotFound}), "/api/v1/dictionary/zzzz")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(newRouter(&stubLookuper{lookupErr: errors.New("dial tcp: timeout")}), "/api/v1/dictionary/happy")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestSuggestAndDailyRoutesAreStatic(t *testing.T) {
	r := newRouter(&stubLookuper{})

	w := get(r, "/api/v1/dictionary/suggest?q=hap")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":["happy"]}`, w.Body.String())

	w = get(r, "/api/v1/dictionary/daily")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "petrichor")
}

func TestLookupHandler_RecordsHistoryForSignedInCaller(t *testing.T) {
	history := &memoryHistory{}
	r := newRouterWithHistory(t, &stubLookuper{}, history)

	token, err := newVerifier(t).Issue("user-1", "a@b.c", "A", 0)
	require.NoError(t, err)

	w := getWithToken(r, "/api/v1/dictionary/happy", token)
	require.Equal(t, http.StatusOK, w.Code)

	// anonymous and bad-token lookups still work but leave no trace
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/dictionary/sad").Code)
	assert.Equal(t, http.StatusOK, getWithToken(r, "/api/v1/dictionary/calm", "not-a-jwt").Code)

	assert.Equal(t, map[string][]string{"user-1": {"happy"}}, history.entries)
}

func TestLookupHandler_HistoryFailureDoesNotFailLookup(t *testing.T) {
	r := newRouterWithHistory(t, &stubLookuper{}, &memoryHistory{err: errors.New("db down")})

	token, err := newVerifier(t).Issue("user-1", "a@b.c", "A", 0)
	require.NoError(t, err)

	w := getWithToken(r, "/api/v1/dictionary/happy", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLookupHandler_NotFoundSkipsHistory(t *testing.T) {
	history := &memoryHistory{}
	r := newRouterWithHistory(t, &stubLookuper{lookupErr: dictionary.ErrNotFound}, history)

	token, err := newVerifier(t).Issue("user-1", "a@b.c", "A", 0)
	require.NoError(t, err)

	w := getWithToken(r, "/api/v1/dictionary/zzzz", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, history.entries)
}
