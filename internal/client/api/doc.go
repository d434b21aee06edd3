// Package api is the typed client of the ScapeGIS REST identity backend.
//
// HTTPClient attaches the stored bearer token to each request, turns non-2xx
// responses into *RequestError, and on a 401 from an authenticated endpoint
// refreshes the token pair once (shared by all concurrent callers) before
// retrying the request a single time. When the refresh fails the stored pair
// is cleared and the OnUnauthenticated hook fires. Navigation is left to the
// caller.
package api
