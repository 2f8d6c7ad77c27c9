package api

import (
	"net/http"

	"github.com/tain335/chunkgraph/internal/fswatch"
)

// WatchOptions configures Watch in addition to the base Options used for
// each rebuild.
type WatchOptions struct {
	Options

	// ServeAddr, if non-empty, starts an HTTP server at this address
	// pushing RebuildNotification messages over websocket at "/" after
	// every rebuild (SPEC_FULL.md §6).
	ServeAddr string

	OnResult func(*Result, error)
}

// Watch runs an initial Build, then rebuilds whenever a source file it
// depended on changes, until the returned stop function is called.
func Watch(opts WatchOptions) (stop func(), err error) {
	var notifier *fswatch.Notifier
	if opts.ServeAddr != "" {
		notifier = fswatch.NewNotifier()
		mux := http.NewServeMux()
		mux.HandleFunc("/", notifier.Handler)
		server := &http.Server{Addr: opts.ServeAddr, Handler: mux}
		go server.ListenAndServe()
	}

	runBuild := func() (*Result, []string, error) {
		res, buildErr := Build(opts.Options)
		if buildErr != nil {
			return nil, nil, buildErr
		}
		watched := make([]string, 0, len(res.SourceList))
		watched = append(watched, res.SourceList...)
		return res, watched, nil
	}

	res, watched, err := runBuild()
	if opts.OnResult != nil {
		opts.OnResult(res, err)
	}
	if err != nil {
		return nil, err
	}

	rebuild := func(dirtyPath string) ([]string, error) {
		res, watched, err := runBuild()
		if opts.OnResult != nil {
			opts.OnResult(res, err)
		}
		if err != nil {
			return nil, err
		}
		if notifier != nil {
			notification := fswatch.RebuildNotification{SourceCount: len(res.SourceList)}
			notification.Flags = append(notification.Flags, res.Flags...)
			for _, d := range res.Diagnostics {
				notification.Errors = append(notification.Errors, d.Error())
			}
			notifier.Broadcast(notification)
		}
		return watched, nil
	}

	w, err := fswatch.New(watched, rebuild, nil)
	if err != nil {
		return nil, err
	}
	go w.Run()

	return w.Stop, nil
}
