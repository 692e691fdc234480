package quizzes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/wexam/quizzes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryQuizStore struct {
	quizzes map[string]quizzes.Quiz
}

func newMemoryQuizStore() *memoryQuizStore {
	return &memoryQuizStore{quizzes: map[string]quizzes.Quiz{}}
}

func (m *memoryQuizStore) Create(_ context.Context, ownerID string, req quizzes.CreateQuizRequest) (*quizzes.Quiz, error) {
	q := quizzes.Quiz{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Subject:        req.Subject,
		Chapter:        req.Chapter,
		Difficulty:     req.Difficulty,
		Type:           req.Type,
		Questions:      req.Questions,
		TotalQuestions: len(req.Questions),
		CreatedAt:      time.Now(),
	}
	m.quizzes[q.ID] = q
	return &q, nil
}

func (m *memoryQuizStore) List(_ context.Context, ownerID string, limit, offset int) ([]quizzes.Quiz, int, error) {
	var owned []quizzes.Quiz
	for _, q := range m.quizzes {
		if q.OwnerID == ownerID {
			owned = append(owned, q)
		}
	}

	total := len(owned)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)

	return owned[offset:end], total, nil
}

func (m *memoryQuizStore) Get(_ context.Context, quizID, ownerID string) (*quizzes.Quiz, error) {
	q, ok := m.quizzes[quizID]
	if !ok || q.OwnerID != ownerID {
		return nil, quizzes.ErrQuizNotFound
	}
	return &q, nil
}

func (m *memoryQuizStore) Delete(_ context.Context, quizID, ownerID string) error {
	q, ok := m.quizzes[quizID]
	if !ok || q.OwnerID != ownerID {
		return quizzes.ErrQuizNotFound
	}
	delete(m.quizzes, quizID)
	return nil
}

type fixture struct {
	router *gin.Engine
	store  *memoryQuizStore
	tokens map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier, err := auth.NewJWTVerifier("test-secret")
	require.NoError(t, err)

	tokens := map[string]string{}
	for _, id := range []string{"alice", "bob"} {
		tok, err := verifier.Issue(id, id+"@example.com", id, 0)
		require.NoError(t, err)
		tokens[id] = tok
	}

	store := newMemoryQuizStore()
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), verifier, store)

	return &fixture{router: r, store: store, tokens: tokens}
}

func (f *fixture) do(t *testing.T, user, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.tokens[user])

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func validQuiz() quizzes.CreateQuizRequest {
	return quizzes.CreateQuizRequest{
		Subject:    "Biology",
		Chapter:    "Cells",
		Difficulty: "easy",
		Type:       "mcq",
		Questions: []quizgen.Question{
			{Question: "Powerhouse of the cell?", Type: "mcq", Options: []string{"Mitochondria", "Nucleus", "Ribosome", "Golgi"}, Answer: "Mitochondria"},
		},
	}
}

func TestCreateAndGetQuiz(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "alice", http.MethodPost, "/api/v1/quizzes", validQuiz())
	require.Equal(t, http.StatusCreated, w.Code)

	var created quizzes.Quiz
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.TotalQuestions)

	w = f.do(t, "alice", http.MethodGet, "/api/v1/quizzes/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "bob", http.MethodGet, "/api/v1/quizzes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuiz_RejectsBrokenQuestions(t *testing.T) {
	f := newFixture(t)

	req := validQuiz()
	req.Questions[0].Options = []string{"only", "three", "options"}

	w := f.do(t, "alice", http.MethodPost, "/api/v1/quizzes", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.store.quizzes)
}

func TestListQuizzes_Pagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, f.do(t, "alice", http.MethodPost, "/api/v1/quizzes", validQuiz()).Code)
	}

	w := f.do(t, "alice", http.MethodGet, "/api/v1/quizzes?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QuizzesListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Quizzes, 2)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasMore)
}

func TestDeleteQuiz(t *testing.T) {
	f := newFixture(t)
	created, err := f.store.Create(context.Background(), "alice", validQuiz())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, f.do(t, "bob", http.MethodDelete, "/api/v1/quizzes/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, "alice", http.MethodDelete, "/api/v1/quizzes/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "alice", http.MethodDelete, "/api/v1/quizzes/"+created.ID, nil).Code)
}

func TestGetQuiz_MalformedID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "alice", http.MethodGet, "/api/v1/quizzes/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
