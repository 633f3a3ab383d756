// Package metrics provides Prometheus metrics for validation runs.
//
// # Overview
//
// The metrics package tracks:
//   - cyclonedx_validation_runs_total: runs by outcome (valid, invalid, error)
//   - cyclonedx_diagnostics_total: diagnostics by severity (error, warning)
//   - cyclonedx_validation_duration_seconds: run duration histogram
//   - cyclonedx_watched_files: gauge of files under watch
//
// All metrics live on a private registry so that embedding applications
// decide how (and whether) to expose them. Recording methods are no-ops
// when metrics are disabled in configuration.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//
//	start := time.Now()
//	result, err := v.ValidateFile(ctx, path)
//	if err != nil {
//	    collector.RecordRun(metrics.OutcomeError, time.Since(start), 0, 0)
//	} else {
//	    outcome := metrics.OutcomeInvalid
//	    if result.Valid {
//	        outcome = metrics.OutcomeValid
//	    }
//	    collector.RecordRun(outcome, time.Since(start), len(result.Errors), len(result.Warnings))
//	}
package metrics
