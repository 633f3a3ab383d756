// Package retention prunes old validation records on a cron schedule.
//
// The pruner deletes records older than the configured maximum age. The
// scheduler wraps it in a cron job (standard 5-field syntax) and stops
// cleanly when its context is cancelled.
//
// # Usage
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    MaxAgeDays: 90,
//	    Schedule:   "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pruner.Stop()
//
// Prune can also be called directly for a one-shot cleanup, which is what
// the "history prune" command does.
package retention
