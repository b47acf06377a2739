// Package service contains the application's business logic, sitting between
// the HTTP handlers and the persistence layer. Services own ownership checks,
// partial-update semantics, and the completion-triggered creation of a
// recurring task's next occurrence.
package service
