package gorm_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	aa "github.com/destobkcd-cyber/Deep-Shiva"
	gormstores "github.com/destobkcd-cyber/Deep-Shiva/stores/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gormstores.AutoMigrate(db))
	return db
}

func TestUserStoreCRUD(t *testing.T) {
	store := gormstores.NewUserStore(openTestDB(t))

	expires := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	user := &aa.User{
		ID:                "user-1",
		Provider:          "local",
		Name:              "Asha",
		Email:             "asha@example.com",
		Mobile:            "9876543210",
		PasswordHash:      "bcrypt-hash",
		State:             "Maharashtra",
		District:          "Pune",
		FarmSize:          "2 acres",
		EmailOTPHash:      "otp-hash",
		EmailOTPExpiresAt: &expires,
	}
	require.NoError(t, store.CreateUser(user))

	byID, err := store.GetUserById("user-1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", byID.Email)
	assert.Equal(t, "otp-hash", byID.EmailOTPHash)
	require.NotNil(t, byID.EmailOTPExpiresAt)
	assert.WithinDuration(t, expires, *byID.EmailOTPExpiresAt, time.Second)

	byEmail, err := store.GetUserByEmail("asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	byMobile, err := store.GetUserByMobile("9876543210")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byMobile.ID)

	byID.IsEmailVerified = true
	byID.EmailOTPHash = ""
	byID.EmailOTPExpiresAt = nil
	require.NoError(t, store.SaveUser(byID))

	saved, err := store.GetUserById("user-1")
	require.NoError(t, err)
	assert.True(t, saved.IsEmailVerified)
	assert.Empty(t, saved.EmailOTPHash)
	assert.Nil(t, saved.EmailOTPExpiresAt)
}

func TestUserStoreNotFound(t *testing.T) {
	store := gormstores.NewUserStore(openTestDB(t))

	_, err := store.GetUserById("nope")
	assert.ErrorIs(t, err, aa.ErrUserNotFound)

	_, err = store.GetUserByEmail("nope@example.com")
	assert.ErrorIs(t, err, aa.ErrUserNotFound)

	_, err = store.GetUserByMobile("0000000000")
	assert.ErrorIs(t, err, aa.ErrUserNotFound)
}

func TestUserStoreDuplicates(t *testing.T) {
	store := gormstores.NewUserStore(openTestDB(t))

	require.NoError(t, store.CreateUser(&aa.User{ID: "u1", Email: "dup@example.com"}))

	err := store.CreateUser(&aa.User{ID: "u2", Email: "dup@example.com"})
	assert.ErrorIs(t, err, aa.ErrDuplicateUser)

	require.NoError(t, store.CreateUser(&aa.User{ID: "u3", Mobile: "9111111111"}))
	err = store.CreateUser(&aa.User{ID: "u4", Mobile: "9111111111"})
	assert.ErrorIs(t, err, aa.ErrDuplicateUser)

	// Accounts without an email must not collide on the empty value.
	require.NoError(t, store.CreateUser(&aa.User{ID: "u5", Mobile: "9222222222"}))
}

func TestTodoStoreOrderingAndOwnership(t *testing.T) {
	store := gormstores.NewTodoStore(openTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateTodo(&aa.Todo{
			ID:        fmt.Sprintf("todo-%d", i),
			UserID:    "user-1",
			Title:     fmt.Sprintf("task %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.CreateTodo(&aa.Todo{
		ID:     "other-todo",
		UserID: "user-2",
		Title:  "someone else's task",
	}))

	todos, err := store.GetUserTodos("user-1")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "task 2", todos[0].Title)
	assert.Equal(t, "task 0", todos[2].Title)

	_, err = store.GetTodo("todo-0", "user-2")
	assert.ErrorIs(t, err, aa.ErrTodoNotFound)

	todo, err := store.GetTodo("todo-0", "user-1")
	require.NoError(t, err)
	todo.Done = true
	todo.Note = "done at dusk"
	require.NoError(t, store.SaveTodo(todo))

	saved, err := store.GetTodo("todo-0", "user-1")
	require.NoError(t, err)
	assert.True(t, saved.Done)
	assert.Equal(t, "done at dusk", saved.Note)
}

func TestChatStoreRecentMessages(t *testing.T) {
	store := gormstores.NewChatStore(openTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		session := "home"
		if i%2 == 1 {
			session = "field"
		}
		require.NoError(t, store.CreateMessage(&aa.ChatMessage{
			ID:        fmt.Sprintf("msg-%d", i),
			UserID:    "user-1",
			Role:      aa.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			SessionID: session,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.CreateMessage(&aa.ChatMessage{
		ID:      "other-msg",
		UserID:  "user-2",
		Role:    aa.RoleUser,
		Content: "not yours",
	}))

	// Newest two across sessions, returned oldest first.
	msgs, err := store.RecentMessages("user-1", "", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "message 3", msgs[0].Content)
	assert.Equal(t, "message 4", msgs[1].Content)

	msgs, err = store.RecentMessages("user-1", "home", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "message 0", msgs[0].Content)
	assert.Equal(t, "message 4", msgs[2].Content)

	msgs, err = store.RecentMessages("user-2", "", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "not yours", msgs[0].Content)
}
