// Package tokens persists the access/refresh token pair and the current
// workspace id in the local SQLite database.
//
// Get returns ("", nil) for absent keys. SaveTokens writes the pair in one
// transaction; when a refresh response carries no refresh token the stored
// one is kept, otherwise it is rotated.
package tokens
