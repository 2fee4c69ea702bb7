// Package mockapi is a small in-memory auth backend that speaks the same
// protocol as the production API:
//
//	POST /auth/login   {"email","password"} -> 200 {"token","user":{"id","email"}}
//	POST /auth/signup  {"email","password"} -> 201 {"token","user":{"id","email"}}
//	GET  /me           Authorization: Bearer <token> -> 200 {"id","email"}
//	GET  /health       -> 200 ALIVE
//
// Failures answer {"msg": "..."} with a 4xx status. Passwords are stored as
// bcrypt hashes and tokens are HS256 JWTs. Users live in memory with
// incrementing integer ids and may be seeded from a YAML file.
//
// It backs cmd/authmock and the end-to-end tests of the client.
package mockapi
