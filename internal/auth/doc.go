// Package auth provides the authentication boundary for PrintDesk.
//
// It implements signup/login with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - HS256 JWT access tokens
//   - SQLite-backed user accounts keyed by email
//
// Order operations never consult authentication state; this package exists
// purely so clients can obtain bearer tokens at the transport boundary.
package auth
