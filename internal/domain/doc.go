// Package domain defines the core business entities and errors: tasks with
// calendar-date occurrences, recurrence rules, reminders, and the users that
// own them. The recurrence arithmetic lives here as pure functions so the
// scheduling subsystem can be tested without I/O.
package domain
