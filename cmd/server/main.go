package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	agriassist "github.com/destobkcd-cyber/Deep-Shiva"
	gormstores "github.com/destobkcd-cyber/Deep-Shiva/stores/gorm"
	"github.com/destobkcd-cyber/Deep-Shiva/stores/mem"
)

func main() {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := agriassist.ConfigFromEnv()
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	users, todos, chats := openStores(cfg)

	signer := &agriassist.SessionSigner{
		SecretKey: cfg.JWTSecret,
		Issuer:    "agriassist",
	}

	server := &agriassist.Server{
		Auth: &agriassist.Auth{
			Users:       users,
			Notifier:    &agriassist.ConsoleNotifier{},
			Signer:      signer,
			FrontendURL: cfg.FrontendURL,
		},
		Todos: &agriassist.Todos{Store: todos},
		Chat: &agriassist.Chat{
			Store: chats,
			LLM: &agriassist.HTTPLLMClient{
				Provider: cfg.LLMProvider,
				Model:    cfg.LLMModel,
				APIKey:   cfg.LLMAPIKey,
			},
		},
		Weather:    &agriassist.Weather{APIKey: cfg.OpenWeatherAPIKey},
		Middleware: &agriassist.Middleware{Signer: signer},
	}

	corsOpts := []handlers.CORSOption{
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
	}
	if cfg.ClientOrigin != "" {
		corsOpts = append(corsOpts,
			handlers.AllowedOrigins([]string{cfg.ClientOrigin}),
			handlers.AllowCredentials(),
		)
	}

	var handler http.Handler = server.Router()
	handler = handlers.CORS(corsOpts...)(handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openStores connects to postgres when DATABASE_URL is set. Without a
// database (or when the connection fails) the server still comes up on
// in-memory stores so the weather, events, and chat endpoints keep
// working, but nothing is persisted.
func openStores(cfg agriassist.Config) (agriassist.UserStore, agriassist.TodoStore, agriassist.ChatStore) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, starting with in-memory stores")
		return mem.NewUserStore(), mem.NewTodoStore(), mem.NewChatStore()
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Database connection error: %v", err)
		log.Println("Starting with in-memory stores, data will not be persisted")
		return mem.NewUserStore(), mem.NewTodoStore(), mem.NewChatStore()
	}
	if err := gormstores.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Println("Database connected")
	return gormstores.NewUserStore(db), gormstores.NewTodoStore(db), gormstores.NewChatStore(db)
}
