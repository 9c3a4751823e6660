package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/journal-backend/internal/database"
	"github.com/AnshRaj112/journal-backend/internal/middleware"
	"github.com/AnshRaj112/journal-backend/internal/models"
	"github.com/AnshRaj112/journal-backend/internal/services"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return database.ErrDuplicate
	}
	m.byEmail[u.Email] = u
	return nil
}

type memJournal struct {
	mu      sync.Mutex
	rows    []models.JournalEntry
	creates int
	err     error
}

func (m *memJournal) Create(_ context.Context, e models.NewJournalEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.err != nil {
		return 0, m.err
	}
	ts := time.Now().UTC()
	if e.Timestamp != nil {
		ts = *e.Timestamp
	}
	id := int64(len(m.rows) + 1)
	m.rows = append(m.rows, models.JournalEntry{
		ID: id, UserID: e.UserID, EntryText: e.EntryText, MoodRating: e.MoodRating, Timestamp: ts,
	})
	return id, nil
}

func (m *memJournal) ListByUser(_ context.Context, userID string) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.JournalEntry
	for _, e := range m.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type memContacts struct {
	mu      sync.Mutex
	rows    []models.Contact
	creates int
}

func (m *memContacts) Create(_ context.Context, c models.NewContact) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	id := int64(len(m.rows) + 1)
	m.rows = append(m.rows, models.Contact{
		ID: id, UserID: c.UserID, ContactName: c.ContactName, ContactEmail: c.ContactEmail, CreatedAt: time.Now(),
	})
	return id, nil
}

func (m *memContacts) ListByUser(_ context.Context, userID string) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Contact
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

type testServer struct {
	router   chi.Router
	tokens   *services.TokenService
	journal  *memJournal
	contacts *memContacts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := services.NewTokenService([]byte("test-secret"), services.TokenTTL)
	require.NoError(t, err)

	ts := &testServer{tokens: tokens, journal: &memJournal{}, contacts: &memContacts{}}
	auth := NewAuthHandler(services.NewAccountService(&memUsers{byEmail: map[string]*models.User{}}), tokens)
	journal := NewJournalHandler(ts.journal)
	contacts := NewContactHandler(ts.contacts)

	r := chi.NewRouter()
	r.Post("/auth/register", auth.Register)
	r.Post("/auth/login", auth.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(tokens))
		r.Get("/me", auth.Me)
		r.Post("/journal/entry", journal.CreateEntry)
		r.Get("/journal/user/{id}", journal.ListByUser)
		r.Post("/contacts/add", contacts.Add)
		r.Get("/contacts/user/{id}", contacts.ListByUser)
	})
	ts.router = r
	return ts
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

// register creates an account and returns its id and token.
func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()
	rec, out := s.do(t, "POST", "/auth/register", "", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := out["user"].(map[string]any)
	return user["id"].(string), out["token"].(string)
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, "POST", "/auth/register", "", `{"email":"Alice@Example.com","password":"secret1","name":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["token"])
	user := out["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.NotContains(t, user, "password_hash")

	rec, out = s.do(t, "POST", "/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := out["token"].(string)

	rec, out = s.do(t, "GET", "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	me := out["user"].(map[string]any)
	assert.Equal(t, user["id"], me["id"])
	assert.Equal(t, "alice@example.com", me["email"])
}

func TestAliceScenario(t *testing.T) {
	s := newTestServer(t)
	aliceID, _ := s.register(t, "alice@example.com")

	rec, out := s.do(t, "POST", "/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := out["token"].(string)
	id, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, aliceID, id.ID)
	assert.Equal(t, "alice@example.com", id.Email)

	rec, _ = s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+aliceID+`","entry_text":"Test entry","mood_rating":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, out = s.do(t, "GET", "/journal/user/"+aliceID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := out["entries"].([]any)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Test entry", entry["entry_text"])
	assert.EqualValues(t, 4, entry["mood_rating"])
	assert.Equal(t, aliceID, entry["user_id"])
}

func TestAuthErrors(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"duplicate", "/auth/register", `{"email":"ALICE@example.com","password":"secret1"}`, http.StatusConflict, "Email already registered"},
		{"bad email", "/auth/register", `{"email":"nope","password":"secret1"}`, http.StatusBadRequest, "Valid email required"},
		{"short password", "/auth/register", `{"email":"bob@example.com","password":"12345"}`, http.StatusBadRequest, "Password must be >= 6 chars"},
		{"bad body", "/auth/register", `{`, http.StatusBadRequest, "Invalid request body"},
		{"wrong password", "/auth/login", `{"email":"alice@example.com","password":"wrong!!"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"unknown email", "/auth/login", `{"email":"carol@example.com","password":"secret1"}`, http.StatusUnauthorized, "Invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := s.do(t, "POST", tt.path, "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.msg}, out)
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec, out := s.do(t, "GET", "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing token", out["error"])
	assert.Equal(t, false, out["success"])

	rec, out = s.do(t, "POST", "/journal/entry", "not.a.jwt", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", out["error"])
	assert.Zero(t, s.journal.creates)
}

func TestJournalCreateAndList(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")

	rec, out := s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+aliceID+`","entry_text":"older","mood_rating":3,"timestamp":"2024-01-01T09:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 1, out["id"])

	rec, _ = s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+aliceID+`","entry_text":"Test entry","mood_rating":"4"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, out = s.do(t, "GET", "/journal/user/"+aliceID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := out["entries"].([]any)
	require.Len(t, entries, 2)
	newest := entries[0].(map[string]any)
	assert.Equal(t, "Test entry", newest["entry_text"])
	assert.EqualValues(t, 4, newest["mood_rating"])
	assert.Equal(t, "older", entries[1].(map[string]any)["entry_text"])
}

func TestJournalForeignOwnerIsForbidden(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.register(t, "alice@example.com")
	bobID, _ := s.register(t, "bob@example.com")

	rec, out := s.do(t, "POST", "/journal/entry", aliceToken,
		`{"user_id":"`+bobID+`","entry_text":"hi","mood_rating":3}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "owner mismatch", out["error"])
	assert.Zero(t, s.journal.creates)

	rec, _ = s.do(t, "GET", "/journal/user/"+bobID, aliceToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJournalValidationPrecedesOwnership(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@example.com")
	bobID, _ := s.register(t, "bob@example.com")

	// A foreign owner with a bad mood is a validation failure, not a 403.
	rec, out := s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+bobID+`","entry_text":"hi","mood_rating":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "mood_rating must be an integer 1-5", out["error"])

	rec, out = s.do(t, "POST", "/journal/entry", token, `{"user_id":"bad","entry_text":5,"mood_rating":4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user_id must be a UUID", out["error"])

	rec, out = s.do(t, "GET", "/journal/user/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id must be a UUID", out["error"])

	rec, out = s.do(t, "POST", "/journal/entry", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user_id must be a UUID", out["error"])
	assert.Zero(t, s.journal.creates)
}

func TestJournalOwnerCaseInsensitive(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")

	rec, _ := s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+strings.ToUpper(aliceID)+`","entry_text":"hi","mood_rating":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, aliceID, s.journal.rows[0].UserID)
}

func TestJournalEmptyList(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")

	rec, _ := s.do(t, "GET", "/journal/user/"+aliceID, token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"entries":[]}`, rec.Body.String())
}

func TestJournalStoreFailureIsInternal(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")
	s.journal.err = errors.New("connection reset")

	rec, out := s.do(t, "POST", "/journal/entry", token,
		`{"user_id":"`+aliceID+`","entry_text":"hi","mood_rating":2}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create journal entry", out["error"])

	rec, out = s.do(t, "GET", "/journal/user/"+aliceID, token, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch journal entries", out["error"])
}

func TestContactsRoundTrip(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")

	rec, out := s.do(t, "POST", "/contacts/add", token,
		`{"user_id":"`+aliceID+`","contact_name":" Dr. Jane ","contact_email":"Jane@Example.COM"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, out["success"])

	rec, out = s.do(t, "GET", "/contacts/user/"+aliceID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := out["contacts"].([]any)
	require.Len(t, contacts, 1)
	c := contacts[0].(map[string]any)
	assert.Equal(t, "Dr. Jane", c["contact_name"])
	assert.Equal(t, "jane@example.com", c["contact_email"])
}

func TestContactsErrors(t *testing.T) {
	s := newTestServer(t)
	aliceID, token := s.register(t, "alice@example.com")
	bobID, _ := s.register(t, "bob@example.com")

	rec, out := s.do(t, "POST", "/contacts/add", token,
		`{"user_id":"`+aliceID+`","contact_name":"Jane","contact_email":"jane"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "contact_email must be a valid email", out["error"])

	rec, _ = s.do(t, "POST", "/contacts/add", token,
		`{"user_id":"`+bobID+`","contact_name":"Jane","contact_email":"jane@example.com"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, s.contacts.creates)

	rec, _ = s.do(t, "GET", "/contacts/user/"+bobID, token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, "GET", "/contacts/user/"+aliceID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"contacts":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := httptest.NewRecorder()
	Health(func(context.Context) (time.Time, error) { return now, nil }).
		ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"db_time":"2024-05-01T12:00:00Z"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health(func(context.Context) (time.Time, error) { return time.Time{}, errors.New("down") }).
		ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"DB connection failed"}`, rec.Body.String())
}

func TestRunStepsStopsAtFirstFailure(t *testing.T) {
	var ran []int
	boom := errors.New("boom")

	err := runSteps(
		func() error { ran = append(ran, 1); return nil },
		func() error { ran = append(ran, 2); return boom },
		func() error { ran = append(ran, 3); return nil },
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, ran)
}
