// Package watch provides filesystem watching for SBOM files.
//
// FileWatcher wraps fsnotify to watch a single file or a directory tree and
// invoke a callback when a watched file changes. Rapid event bursts, such as
// an editor writing a file in several chunks, are coalesced by a Debouncer
// so the callback fires once per quiet period.
//
// Usage:
//
//	fw, err := watch.NewFileWatcher(&watch.Config{
//		Path:             "sboms/",
//		DebounceInterval: 500 * time.Millisecond,
//		Extensions:       []string{".json"},
//		SkipHidden:       true,
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer fw.Stop()
//
//	err = fw.Watch(ctx, func(path string) error {
//		result, err := bom.ValidateFile(ctx, path)
//		// report result
//		return err
//	})
package watch
