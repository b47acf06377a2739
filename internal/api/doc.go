// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates HTTP concerns into calls on the
// task, user, and authentication services and maps their errors back to
// sanitized status codes.
package api
