// Package jobs provides scheduled background tasks for the order ledger.
//
// Jobs are built on github.com/robfig/cron/v3 with second resolution.
//
// # Available Jobs
//
// 1. OutboxRelayJob - moves committed ledger events from the outbox to the
// configured event publisher, one batch per tick
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay defaults to "* * * * * *" (every second). Ticks never overlap:
// a tick that finds the previous one still running is skipped.
//
// # Error Handling
//
// Relay failures are logged and retried on the next tick. Events stay in the
// outbox until a publish succeeds, so delivery is at least once.
package jobs
