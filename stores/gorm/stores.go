// Package gorm provides gorm-backed implementations of the store
// interfaces. Open the database with gorm.Config{TranslateError: true}
// so duplicate keys surface as gorm.ErrDuplicatedKey across drivers.
package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	aa "github.com/destobkcd-cyber/Deep-Shiva"
)

// AutoMigrate creates or updates the tables for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &TodoModel{}, &ChatMessageModel{})
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(user *aa.User) error {
	model := UserToModel(user)
	if err := s.db.Create(model).Error; err != nil {
		if isDuplicate(err) {
			return aa.ErrDuplicateUser
		}
		return err
	}
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (s *UserStore) GetUserById(id string) (*aa.User, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aa.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByEmail(email string) (*aa.User, error) {
	var model UserModel
	if err := s.db.First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aa.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByMobile(mobile string) (*aa.User, error) {
	var model UserModel
	if err := s.db.First(&model, "mobile = ?", mobile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aa.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToUser(), nil
}

func (s *UserStore) SaveUser(user *aa.User) error {
	model := UserToModel(user)
	if err := s.db.Save(model).Error; err != nil {
		if isDuplicate(err) {
			return aa.ErrDuplicateUser
		}
		return err
	}
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// isDuplicate also matches on message text because older drivers return
// raw constraint errors that TranslateError does not cover.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

type TodoStore struct {
	db *gorm.DB
}

func NewTodoStore(db *gorm.DB) *TodoStore {
	return &TodoStore{db: db}
}

func (s *TodoStore) CreateTodo(todo *aa.Todo) error {
	model := TodoToModel(todo)
	if err := s.db.Create(model).Error; err != nil {
		return err
	}
	todo.CreatedAt = model.CreatedAt
	todo.UpdatedAt = model.UpdatedAt
	return nil
}

func (s *TodoStore) GetUserTodos(userID string) ([]*aa.Todo, error) {
	var models []TodoModel
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	todos := make([]*aa.Todo, len(models))
	for i := range models {
		todos[i] = models[i].ToTodo()
	}
	return todos, nil
}

func (s *TodoStore) GetTodo(id, userID string) (*aa.Todo, error) {
	var model TodoModel
	err := s.db.First(&model, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aa.ErrTodoNotFound
		}
		return nil, err
	}
	return model.ToTodo(), nil
}

func (s *TodoStore) SaveTodo(todo *aa.Todo) error {
	model := TodoToModel(todo)
	if err := s.db.Save(model).Error; err != nil {
		return err
	}
	todo.UpdatedAt = model.UpdatedAt
	return nil
}

type ChatStore struct {
	db *gorm.DB
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) CreateMessage(msg *aa.ChatMessage) error {
	model := ChatMessageToModel(msg)
	if err := s.db.Create(model).Error; err != nil {
		return err
	}
	msg.CreatedAt = model.CreatedAt
	return nil
}

// RecentMessages returns the newest limit messages in chronological
// order. An empty sessionID spans all of the user's sessions.
func (s *ChatStore) RecentMessages(userID, sessionID string, limit int) ([]*aa.ChatMessage, error) {
	q := s.db.Where("user_id = ?", userID)
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}

	var models []ChatMessageModel
	err := q.Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]*aa.ChatMessage, len(models))
	for i := range models {
		msgs[len(models)-1-i] = models[i].ToChatMessage()
	}
	return msgs, nil
}
