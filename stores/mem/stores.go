// Package mem provides in-memory implementations of the store
// interfaces. The server falls back to these when no database is
// configured, and tests use them to avoid a database dependency.
// Nothing is persisted across restarts.
package mem

import (
	"sort"
	"sync"
	"time"

	aa "github.com/destobkcd-cyber/Deep-Shiva"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]*aa.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]*aa.User{}}
}

func (s *UserStore) CreateUser(user *aa.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if user.Email != "" && existing.Email == user.Email {
			return aa.ErrDuplicateUser
		}
		if user.Mobile != "" && existing.Mobile == user.Mobile {
			return aa.ErrDuplicateUser
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *UserStore) GetUserById(id string) (*aa.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, aa.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *UserStore) GetUserByEmail(email string) (*aa.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email != "" && user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, aa.ErrUserNotFound
}

func (s *UserStore) GetUserByMobile(mobile string) (*aa.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Mobile != "" && user.Mobile == mobile {
			return copyUser(user), nil
		}
	}
	return nil, aa.ErrUserNotFound
}

func (s *UserStore) SaveUser(user *aa.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return aa.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = copyUser(user)
	return nil
}

func copyUser(u *aa.User) *aa.User {
	clone := *u
	clone.EmailOTPExpiresAt = copyTime(u.EmailOTPExpiresAt)
	clone.MobileOTPExpiresAt = copyTime(u.MobileOTPExpiresAt)
	clone.ResetTokenExpiresAt = copyTime(u.ResetTokenExpiresAt)
	return &clone
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

type TodoStore struct {
	mu    sync.Mutex
	todos map[string]*aa.Todo
	seq   map[string]int
	next  int
}

func NewTodoStore() *TodoStore {
	return &TodoStore{todos: map[string]*aa.Todo{}, seq: map[string]int{}}
}

func (s *TodoStore) CreateTodo(todo *aa.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	clone := *todo
	s.todos[todo.ID] = &clone
	s.next++
	s.seq[todo.ID] = s.next
	return nil
}

func (s *TodoStore) GetUserTodos(userID string) ([]*aa.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var todos []*aa.Todo
	for _, todo := range s.todos {
		if todo.UserID == userID {
			clone := *todo
			todos = append(todos, &clone)
		}
	}
	// Newest first; the insertion sequence breaks timestamp ties.
	sort.Slice(todos, func(i, j int) bool {
		return s.seq[todos[i].ID] > s.seq[todos[j].ID]
	})
	return todos, nil
}

func (s *TodoStore) GetTodo(id, userID string) (*aa.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok || todo.UserID != userID {
		return nil, aa.ErrTodoNotFound
	}
	clone := *todo
	return &clone, nil
}

func (s *TodoStore) SaveTodo(todo *aa.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todo.ID]; !ok {
		return aa.ErrTodoNotFound
	}
	todo.UpdatedAt = time.Now()
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

type ChatStore struct {
	mu   sync.Mutex
	msgs []*aa.ChatMessage
}

func NewChatStore() *ChatStore {
	return &ChatStore{}
}

func (s *ChatStore) CreateMessage(msg *aa.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.CreatedAt = time.Now()
	clone := *msg
	s.msgs = append(s.msgs, &clone)
	return nil
}

func (s *ChatStore) RecentMessages(userID, sessionID string, limit int) ([]*aa.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*aa.ChatMessage
	for _, msg := range s.msgs {
		if msg.UserID != userID {
			continue
		}
		if sessionID != "" && msg.SessionID != sessionID {
			continue
		}
		matched = append(matched, msg)
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	out := make([]*aa.ChatMessage, len(matched))
	for i, msg := range matched {
		clone := *msg
		out[i] = &clone
	}
	return out, nil
}
