// Package jobs provides scheduled background tasks for the workshop.
//
// Jobs use github.com/robfig/cron/v3 for the period and a plain timer for
// the delay before the first run.
//
// # Available Jobs
//
// OrderSweepJob runs three sweeps per tick, in this order:
//
//  1. feedback: issued orders older than FEEDBACK_DELAY get a rating prompt
//  2. stuck_accepted: orders accepted longer than STUCK_ACCEPTED_AGE are
//     reported to administrators
//  3. stale_new: new orders older than REMINDER_AGE get a reminder with
//     response buttons
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewOrderSweepJob(feedback, stuck, reminders, "@every 1h", time.Minute, logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep that cannot read its candidates is logged and the remaining
// sweeps still run. Failures of single messages are counted by the sweep
// itself and do not fail it.
package jobs
