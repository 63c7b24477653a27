package gorm

import (
	"time"

	aa "github.com/destobkcd-cyber/Deep-Shiva"
)

// UserModel is the database model for accounts. Email and mobile are
// nullable so the unique indexes stay sparse: accounts may carry either
// or both.
type UserModel struct {
	ID           string  `gorm:"primaryKey;size:64"`
	Provider     string  `gorm:"size:16;default:local"`
	Name         string  `gorm:"size:255"`
	Email        *string `gorm:"size:255;uniqueIndex"`
	Mobile       *string `gorm:"size:32;uniqueIndex"`
	PasswordHash string  `gorm:"size:128"`

	State    string `gorm:"size:128"`
	District string `gorm:"size:128"`
	FarmSize string `gorm:"size:64"`

	IsEmailVerified  bool `gorm:"default:false"`
	IsMobileVerified bool `gorm:"default:false"`

	EmailOTPHash       string `gorm:"size:128"`
	EmailOTPExpiresAt  *time.Time
	MobileOTPHash      string `gorm:"size:128"`
	MobileOTPExpiresAt *time.Time

	ResetTokenHash      string `gorm:"size:128"`
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToUser() *aa.User {
	u := &aa.User{
		ID:                  m.ID,
		Provider:            m.Provider,
		Name:                m.Name,
		PasswordHash:        m.PasswordHash,
		State:               m.State,
		District:            m.District,
		FarmSize:            m.FarmSize,
		IsEmailVerified:     m.IsEmailVerified,
		IsMobileVerified:    m.IsMobileVerified,
		EmailOTPHash:        m.EmailOTPHash,
		EmailOTPExpiresAt:   m.EmailOTPExpiresAt,
		MobileOTPHash:       m.MobileOTPHash,
		MobileOTPExpiresAt:  m.MobileOTPExpiresAt,
		ResetTokenHash:      m.ResetTokenHash,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	if m.Mobile != nil {
		u.Mobile = *m.Mobile
	}
	return u
}

func UserToModel(u *aa.User) *UserModel {
	m := &UserModel{
		ID:                  u.ID,
		Provider:            u.Provider,
		Name:                u.Name,
		PasswordHash:        u.PasswordHash,
		State:               u.State,
		District:            u.District,
		FarmSize:            u.FarmSize,
		IsEmailVerified:     u.IsEmailVerified,
		IsMobileVerified:    u.IsMobileVerified,
		EmailOTPHash:        u.EmailOTPHash,
		EmailOTPExpiresAt:   u.EmailOTPExpiresAt,
		MobileOTPHash:       u.MobileOTPHash,
		MobileOTPExpiresAt:  u.MobileOTPExpiresAt,
		ResetTokenHash:      u.ResetTokenHash,
		ResetTokenExpiresAt: u.ResetTokenExpiresAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.Email != "" {
		email := u.Email
		m.Email = &email
	}
	if u.Mobile != "" {
		mobile := u.Mobile
		m.Mobile = &mobile
	}
	return m
}

// TodoModel is the database model for todos.
type TodoModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index"`
	Title     string    `gorm:"size:140"`
	Note      string    `gorm:"size:400"`
	Tag       string    `gorm:"size:64"`
	Done      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TodoModel) TableName() string {
	return "todos"
}

func (m *TodoModel) ToTodo() *aa.Todo {
	return &aa.Todo{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Note:      m.Note,
		Tag:       m.Tag,
		Done:      m.Done,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func TodoToModel(t *aa.Todo) *TodoModel {
	return &TodoModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Note:      t.Note,
		Tag:       t.Tag,
		Done:      t.Done,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ChatMessageModel is the database model for chat messages.
type ChatMessageModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index:idx_chat_user_created"`
	Role      string    `gorm:"size:16"`
	Content   string    `gorm:"type:text"`
	SessionID string    `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chat_user_created"`
}

func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

func (m *ChatMessageModel) ToChatMessage() *aa.ChatMessage {
	return &aa.ChatMessage{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      m.Role,
		Content:   m.Content,
		SessionID: m.SessionID,
		CreatedAt: m.CreatedAt,
	}
}

func ChatMessageToModel(msg *aa.ChatMessage) *ChatMessageModel {
	return &ChatMessageModel{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Role:      msg.Role,
		Content:   msg.Content,
		SessionID: msg.SessionID,
		CreatedAt: msg.CreatedAt,
	}
}
