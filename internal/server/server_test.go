package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/server/ratelimit"
	"github.com/jonathan/interview-coach/internal/session"
	"github.com/jonathan/interview-coach/internal/types"
)

// scriptClient replays a fixed sequence of model replies.
type scriptClient struct {
	replies []string
	calls   int
}

func (s *scriptClient) Complete(context.Context, []llm.Message, llm.ModelTier) (string, error) {
	s.calls++
	if s.calls <= len(s.replies) {
		return s.replies[s.calls-1], nil
	}
	return "", nil
}
func (s *scriptClient) GetModel(llm.ModelTier) string { return "script" }
func (s *scriptClient) Close() error                  { return nil }

// fakeUserStore is an in-memory UserStore for auth tests.
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email}
	return id, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// testServer builds a Server wired to a scripted model client and an
// in-memory user store. No database or network access involved.
func testServer(t *testing.T, replies ...string) (*Server, *scriptClient) {
	t.Helper()

	client := &scriptClient{replies: replies}
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userService := NewUserService(newFakeUserStore(), &config.PasswordConfig{BcryptCost: 10})

	s := &Server{
		gateway:     llm.NewGateway(client, llm.RetryPolicy{MaxAttempts: 1}),
		sessions:    NewRegistry(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
		outputDir:   t.TempDir(),
		limits:      session.DefaultLimits(),
	}
	return s, client
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, "POST", "/auth/register", "", types.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := testServer(t)
	rec := doJSON(t, s.router(), "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestRegisterLoginFlow(t *testing.T) {
	s, _ := testServer(t)
	h := s.router()

	token := registerAndLogin(t, h)
	assert.NotEmpty(t, token)

	// Duplicate registration is rejected
	rec := doJSON(t, h, "POST", "/auth/register", "", types.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with correct password
	rec = doJSON(t, h, "POST", "/auth/login", "", types.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Login with wrong password
	rec = doJSON(t, h, "POST", "/auth/login", "", types.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	s, _ := testServer(t)
	h := s.router()
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, "PUT", "/auth/password", token, types.UpdatePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Old password no longer works
	rec = doJSON(t, h, "POST", "/auth/login", "", types.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// New password does
	rec = doJSON(t, h, "POST", "/auth/login", "", types.LoginRequest{
		Email:    "test@example.com",
		Password: "newpassword456",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionEndpointsRequireAuth(t *testing.T) {
	s, _ := testServer(t)
	h := s.router()

	rec := doJSON(t, h, "POST", "/sessions", "", types.StartSessionRequest{CandidateText: "привет"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, "POST", "/sessions/"+uuid.NewString()+"/turns", "", types.TurnRequest{Message: "ответ"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListSessionsWithoutDatabase(t *testing.T) {
	s, _ := testServer(t)
	h := s.router()
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, "GET", "/sessions", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := testServer(t,
		`{"name": "Иван", "target_role": "Backend Developer", "grade": "Middle", "stack": ["python"], "experience_text": "3 года"}`,
		`{"thought": "Начну с основ", "message": "Расскажи про GIL."}`,
		`{"should_factcheck": false, "reason": "обычный ответ"}`,
		`{"thought": "Верно", "message": "А что такое декоратор?"}`,
		"ВЕРДИКТ: Hire",
	)
	h := s.router()
	token := registerAndLogin(t, h)

	// Start a session
	rec := doJSON(t, h, "POST", "/sessions", token, types.StartSessionRequest{
		CandidateText: "Привет, я Иван, Middle Python разработчик",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created types.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Иван", created.ParticipantName)
	assert.Equal(t, "Расскажи про GIL.", created.AIMessage)
	require.NotEqual(t, uuid.Nil, created.SessionID)

	base := "/sessions/" + created.SessionID.String()

	// Report before finish is a conflict
	rec = doJSON(t, h, "GET", base+"/report", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Submit a turn
	rec = doJSON(t, h, "POST", base+"/turns", token, types.TurnRequest{
		Message: "GIL это глобальная блокировка",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var turn types.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	assert.Equal(t, "А что такое декоратор?", turn.AIMessage)
	assert.Equal(t, 1, turn.TurnID)
	assert.False(t, turn.Finished)

	// Finish and collect feedback
	rec = doJSON(t, h, "POST", base+"/finish", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var finished types.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &finished))
	assert.True(t, finished.Finished)
	assert.Equal(t, "ВЕРДИКТ: Hire", finished.FinalFeedback)

	// Further turns are rejected
	rec = doJSON(t, h, "POST", base+"/turns", token, types.TurnRequest{Message: "ещё"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Report is now available, and collecting it evicts the session
	rec = doJSON(t, h, "GET", base+"/report", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ВЕРДИКТ: Hire")

	assert.Equal(t, 0, s.sessions.Len())
	rec = doJSON(t, h, "GET", base+"/report", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionNotVisibleToOtherUsers(t *testing.T) {
	s, _ := testServer(t, "", "")
	h := s.router()
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, "POST", "/sessions", token, types.StartSessionRequest{CandidateText: "привет"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// A token for a different user sees 404, not someone else's interview
	otherToken, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	rec = doJSON(t, h, "POST", "/sessions/"+created.SessionID.String()+"/turns", otherToken, types.TurnRequest{Message: "ответ"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	owner := uuid.New()

	id := r.Add(owner, nil)
	require.Equal(t, 1, r.Len())

	ms := r.Get(id)
	require.NotNil(t, ms)
	assert.Equal(t, owner, ms.owner)

	assert.Nil(t, r.Get(uuid.New()))

	r.Remove(id)
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Get(id))
}
