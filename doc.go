// Package agriassist is the backend for the Smart Agriculture assistant
// web application.
//
// It exposes an HTTP JSON API with four areas:
//
//   - Account management: signup and login with email and/or mobile,
//     OTP-based verification of both channels, and password reset. This is
//     the stateful core of the service; see Auth for the workflow and the
//     otp.go helpers for secret issuance.
//   - Todos: plain user-owned CRUD (no delete).
//   - Chat: persists conversation history and relays a bounded window of it
//     to an LLM provider, falling back to a canned reply when the provider
//     is unavailable.
//   - Read-only lookups: current weather (openweathermap passthrough) and a
//     curated list of agriculture events.
//
// Authenticated routes carry a Bearer session token: a signed, stateless
// JWT that only names the user and expires after seven days. Middleware
// validates it by signature and expiry alone, with no store lookup.
//
// Persistence is behind small store interfaces (UserStore, TodoStore,
// ChatStore). stores/gorm implements them on a database; stores/mem keeps
// everything in memory so the server can still come up without a
// DATABASE_URL, at the cost of losing all data on restart.
package agriassist
