// Package scheduler implements the background scheduling subsystem: the
// occurrence materializer that pre-creates future occurrences of recurring
// tasks, and the reminder scheduler that arms one-shot timers for due
// reminders and dispatches push notifications when they fire.
//
// Both jobs are driven by a cron-based runner with an immediate run at
// startup. Each scan and each fired reminder callback is an independent unit
// of work; failures are contained within that unit and never crash the
// process. The design assumes a single scheduler instance; running several
// concurrently requires external serialization, which is out of scope.
package scheduler
