package agriassist

import "time"

// Chat message roles, matching the wire format of the LLM providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Length bounds on todo fields.
const (
	MaxTodoTitleLen = 140
	MaxTodoNoteLen  = 400
)

// User is a persisted account record. Email and mobile are each unique
// when present; at least one is always set. The three hash/expiry pairs
// (email OTP, mobile OTP, password reset) are either both set or both
// clear, and are cleared as soon as the secret is consumed.
type User struct {
	ID           string `json:"id"`
	Provider     string `json:"-"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	PasswordHash string `json:"-"`

	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	FarmSize string `json:"farmSize,omitempty"`

	IsEmailVerified  bool `json:"isEmailVerified"`
	IsMobileVerified bool `json:"isMobileVerified"`

	EmailOTPHash       string     `json:"-"`
	EmailOTPExpiresAt  *time.Time `json:"-"`
	MobileOTPHash      string     `json:"-"`
	MobileOTPExpiresAt *time.Time `json:"-"`

	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ChatMessage is one persisted chat turn. Immutable once created and
// ordered by CreatedAt.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	SessionID string    `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Todo is a user-owned task. Mutable in place; there is no delete.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Note      string    `json:"note,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserStore manages account records.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrDuplicateUser if the
	// email or mobile is already registered.
	CreateUser(user *User) error

	// GetUserById retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetUserById(id string) (*User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetUserByEmail(email string) (*User, error)

	// GetUserByMobile retrieves a user by mobile. Returns ErrUserNotFound if absent.
	GetUserByMobile(mobile string) (*User, error)

	// SaveUser updates an existing user record.
	SaveUser(user *User) error
}

// TodoStore manages user-owned todos. All lookups are scoped to the
// owning user; a todo belonging to someone else is indistinguishable
// from one that does not exist.
type TodoStore interface {
	CreateTodo(todo *Todo) error

	// GetUserTodos returns all todos for a user, newest first.
	GetUserTodos(userID string) ([]*Todo, error)

	// GetTodo retrieves a todo by id for the given owner.
	// Returns ErrTodoNotFound if absent or owned by another user.
	GetTodo(id, userID string) (*Todo, error)

	SaveTodo(todo *Todo) error
}

// ChatStore manages persisted chat messages.
type ChatStore interface {
	CreateMessage(msg *ChatMessage) error

	// RecentMessages returns up to limit of the user's most recent
	// messages in chronological order. An empty sessionID spans all
	// sessions.
	RecentMessages(userID, sessionID string, limit int) ([]*ChatMessage, error)
}
