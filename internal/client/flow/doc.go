// Package flow drives the identity-resolution steps of signup and login.
//
// Each Controller method takes what the user typed, makes the backend calls
// the step needs, updates the session draft and the auth state, and returns
// an Outcome naming the next step and route. Backend and validation failures
// end up in Outcome.Message; none of them are returned as errors.
package flow
