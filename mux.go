package agriassist

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Server bundles the handler components and assembles the API router.
type Server struct {
	Auth       *Auth
	Todos      *Todos
	Chat       *Chat
	Weather    *Weather
	Middleware *Middleware
}

// Router builds the full /api route tree. Auth, weather and events are
// public; todos and chat require a Bearer session token.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", s.Auth.HandleSignup).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.Auth.HandleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/send-email-otp", s.Auth.HandleSendEmailOTP).Methods(http.MethodPost)
	auth.HandleFunc("/verify-email", s.Auth.HandleVerifyEmail).Methods(http.MethodPost)
	auth.HandleFunc("/send-mobile-otp", s.Auth.HandleSendMobileOTP).Methods(http.MethodPost)
	auth.HandleFunc("/verify-mobile", s.Auth.HandleVerifyMobile).Methods(http.MethodPost)
	auth.HandleFunc("/forgot", s.Auth.HandleForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset", s.Auth.HandleResetPassword).Methods(http.MethodPost)

	todos := api.PathPrefix("/todos").Subrouter()
	todos.Use(s.Middleware.RequireUser)
	todos.HandleFunc("", s.Todos.HandleList).Methods(http.MethodGet)
	todos.HandleFunc("", s.Todos.HandleCreate).Methods(http.MethodPost)
	todos.HandleFunc("/{id}", s.Todos.HandlePatch).Methods(http.MethodPatch)

	chat := api.PathPrefix("/chat").Subrouter()
	chat.Use(s.Middleware.RequireUser)
	chat.HandleFunc("/history", s.Chat.HandleHistory).Methods(http.MethodGet)
	chat.HandleFunc("/llm", s.Chat.HandlePost).Methods(http.MethodPost)

	api.HandleFunc("/weather", s.Weather.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/events", HandleEvents).Methods(http.MethodGet)

	return r
}
