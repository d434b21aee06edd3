// Package session holds the in-progress signup/login draft for one client
// process. Values live in memory only and disappear with the process.
package session
