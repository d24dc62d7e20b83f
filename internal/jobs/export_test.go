package jobs

// Tick runs the scheduled callback the way the cron entry and the startup
// timer do.
func (j *OrderSweepJob) Tick() {
	j.tick()
}
