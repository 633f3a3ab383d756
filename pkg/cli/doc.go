/*
Package cli provides output formatting, progress reporting, and shutdown
helpers shared by the cyclonedx subcommands.

Output Formatting:

Command results render as text, JSON, or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

CSV output requires the result type to implement CSVMarshaler.

Progress Reporting:

Multi-file validation runs show a progress bar on stderr:

	progress := cli.NewProgressReporter(nil)
	progress.Start(len(files))
	for _, file := range files {
		// Validate file
		progress.File(file)
	}
	progress.Finish()

Shutdown:

Long-running commands block until the first SIGINT or SIGTERM:

	sig := <-cli.WaitForShutdown()
*/
package cli
