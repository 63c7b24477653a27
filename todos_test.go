package agriassist_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestTodosRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	status, resp := env.doJSON(t, http.MethodPost, "/api/todos", "", map[string]string{
		"title": "Check soil moisture",
	})
	wantStatus(t, status, http.StatusUnauthorized)
	wantMessage(t, resp, "Authentication required")

	status, _ = env.doJSON(t, http.MethodPost, "/api/todos", "not-a-real-token", map[string]string{
		"title": "Check soil moisture",
	})
	wantStatus(t, status, http.StatusUnauthorized)
}

func TestCreateAndListTodos(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupUser(t, "todos@example.com", "", "secret123")

	for _, title := range []string{"Order seeds", "Service the pump", "Spray neem oil"} {
		status, resp := env.doJSON(t, http.MethodPost, "/api/todos", token, map[string]string{
			"title": title,
			"tag":   "field",
		})
		wantStatus(t, status, http.StatusCreated)
		if resp["title"] != title {
			t.Errorf("created title = %v, want %q", resp["title"], title)
		}
		if resp["done"] != false {
			t.Error("new todo must start not done")
		}
	}

	status, todos := env.doJSONList(t, http.MethodGet, "/api/todos", token)
	wantStatus(t, status, http.StatusOK)
	if len(todos) != 3 {
		t.Fatalf("got %d todos, want 3", len(todos))
	}
	// Newest first.
	if todos[0]["title"] != "Spray neem oil" || todos[2]["title"] != "Order seeds" {
		t.Errorf("unexpected order: %v, %v, %v", todos[0]["title"], todos[1]["title"], todos[2]["title"])
	}
}

func TestCreateTodoValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupUser(t, "todoval@example.com", "", "secret123")

	tests := []struct {
		name        string
		body        map[string]string
		wantMessage string
	}{
		{
			name:        "missing title",
			body:        map[string]string{"note": "no title here"},
			wantMessage: "title is required",
		},
		{
			name:        "title too long",
			body:        map[string]string{"title": strings.Repeat("x", 141)},
			wantMessage: "title must be at most 140 characters",
		},
		{
			name:        "note too long",
			body:        map[string]string{"title": "ok", "note": strings.Repeat("x", 401)},
			wantMessage: "note must be at most 400 characters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := env.doJSON(t, http.MethodPost, "/api/todos", token, tc.body)
			wantStatus(t, status, http.StatusBadRequest)
			wantMessage(t, resp, tc.wantMessage)
		})
	}
}

func TestPatchTodo(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupUser(t, "patch@example.com", "", "secret123")

	status, created := env.doJSON(t, http.MethodPost, "/api/todos", token, map[string]string{
		"title": "Fix fence",
		"note":  "north field",
	})
	wantStatus(t, status, http.StatusCreated)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created todo has no id")
	}

	// Partial update: only done changes.
	status, patched := env.doJSON(t, http.MethodPatch, "/api/todos/"+id, token, map[string]any{
		"done": true,
	})
	wantStatus(t, status, http.StatusOK)
	if patched["done"] != true {
		t.Error("done was not updated")
	}
	if patched["title"] != "Fix fence" || patched["note"] != "north field" {
		t.Errorf("untouched fields changed: %v", patched)
	}

	status, resp := env.doJSON(t, http.MethodPatch, "/api/todos/"+id, token, map[string]any{
		"title": "",
	})
	wantStatus(t, status, http.StatusBadRequest)
	wantMessage(t, resp, "title is required")
}

func TestPatchTodoOwnership(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signupUser(t, "owner@example.com", "", "secret123")
	otherToken := env.signupUser(t, "other@example.com", "", "secret123")

	status, created := env.doJSON(t, http.MethodPost, "/api/todos", ownerToken, map[string]string{
		"title": "Private task",
	})
	wantStatus(t, status, http.StatusCreated)
	id, _ := created["id"].(string)

	// Another user's todo looks like it does not exist.
	status, resp := env.doJSON(t, http.MethodPatch, "/api/todos/"+id, otherToken, map[string]any{
		"done": true,
	})
	wantStatus(t, status, http.StatusNotFound)
	wantMessage(t, resp, "Todo not found")

	status, others := env.doJSONList(t, http.MethodGet, "/api/todos", otherToken)
	wantStatus(t, status, http.StatusOK)
	if len(others) != 0 {
		t.Errorf("other user sees %d todos, want 0", len(others))
	}

	status, resp = env.doJSON(t, http.MethodPatch, "/api/todos/no-such-id", ownerToken, map[string]any{
		"done": true,
	})
	wantStatus(t, status, http.StatusNotFound)
	wantMessage(t, resp, "Todo not found")
}
