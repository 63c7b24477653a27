package agriassist_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	agriassist "github.com/destobkcd-cyber/Deep-Shiva"
	"github.com/destobkcd-cyber/Deep-Shiva/stores/mem"
)

const testJWTSecret = "test-secret-key"

// captureNotifier records deliveries so tests can fish out raw OTP codes
// and reset links.
type captureNotifier struct {
	mu     sync.Mutex
	emails []capturedDelivery
	sms    []capturedDelivery
}

type capturedDelivery struct {
	To      string
	Subject string
	Body    string
}

func (n *captureNotifier) SendEmail(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, capturedDelivery{To: to, Subject: subject, Body: body})
	return nil
}

func (n *captureNotifier) SendSMS(mobile, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, capturedDelivery{To: mobile, Body: text})
	return nil
}

func (n *captureNotifier) lastEmail(t *testing.T) capturedDelivery {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.emails) == 0 {
		t.Fatal("no emails were sent")
	}
	return n.emails[len(n.emails)-1]
}

func (n *captureNotifier) lastSMS(t *testing.T) capturedDelivery {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sms) == 0 {
		t.Fatal("no SMS were sent")
	}
	return n.sms[len(n.sms)-1]
}

func (n *captureNotifier) emailCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.emails)
}

var (
	otpPattern        = regexp.MustCompile(`\b(\d{6})\b`)
	resetTokenPattern = regexp.MustCompile(`token=([0-9a-f]{64})`)
)

func extractOTP(t *testing.T, body string) string {
	t.Helper()
	m := otpPattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no OTP found in delivery body: %q", body)
	}
	return m[1]
}

func extractResetToken(t *testing.T, body string) string {
	t.Helper()
	m := resetTokenPattern.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no reset token found in delivery body: %q", body)
	}
	return m[1]
}

// stubLLM returns a canned reply or error and remembers the last
// conversation it was asked to complete.
type stubLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	lastSeen []agriassist.Message
}

func (s *stubLLM) Complete(_ context.Context, messages []agriassist.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = append([]agriassist.Message(nil), messages...)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) conversation() []agriassist.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type testEnv struct {
	server   *httptest.Server
	notifier *captureNotifier
	users    *mem.UserStore
	todos    *mem.TodoStore
	chats    *mem.ChatStore
	llm      *stubLLM
	weather  *agriassist.Weather
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		notifier: &captureNotifier{},
		users:    mem.NewUserStore(),
		todos:    mem.NewTodoStore(),
		chats:    mem.NewChatStore(),
		llm:      &stubLLM{reply: "Use drip irrigation for better water use."},
		weather:  &agriassist.Weather{APIKey: "test-key"},
	}

	signer := &agriassist.SessionSigner{SecretKey: testJWTSecret}
	server := &agriassist.Server{
		Auth: &agriassist.Auth{
			Users:       env.users,
			Notifier:    env.notifier,
			Signer:      signer,
			FrontendURL: "http://localhost:5500",
		},
		Todos:      &agriassist.Todos{Store: env.todos},
		Chat:       &agriassist.Chat{Store: env.chats, LLM: env.llm},
		Weather:    env.weather,
		Middleware: &agriassist.Middleware{Signer: signer},
	}

	env.server = httptest.NewServer(server.Router())
	t.Cleanup(env.server.Close)
	return env
}

// doJSON sends a request with an optional JSON body and bearer token and
// decodes the JSON response into a generic map.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, env.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints that answer with a JSON array.
func (env *testEnv) doJSONList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, env.server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var decoded map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return resp.StatusCode, nil
	}

	var decoded []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

// signupUser registers an account and returns its session token.
func (env *testEnv) signupUser(t *testing.T, email, mobile, password string) string {
	t.Helper()

	status, resp := env.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Test Farmer",
		"email":    email,
		"mobile":   mobile,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup failed with status %d: %v", status, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("signup response missing token: %v", resp)
	}
	return token
}

func wantMessage(t *testing.T, resp map[string]any, want string) {
	t.Helper()
	if got, _ := resp["message"].(string); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func wantStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}
}
