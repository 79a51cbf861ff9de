// Package cli implements the netvalue command-line interface.
//
// The commands load a network file (JSON, YAML, TOML or an edge list),
// run one analysis through pkg/analysis, and print the result as a styled
// table or as a JSON report. The CLI is built using cobra and logs with
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - label: depth and branch of every node from a source
//   - metcalfe: network value of the whole graph or a subset
//   - shapley, exact: value of a single node
//   - rank: every node ordered by Shapley value
//   - render: node-link diagram coloured by branch
//   - explore: interactive ranking browser
//   - serve: HTTP API
//   - cache: manage the local result cache
//
// # Logging
//
// --verbose (-v) switches to debug output. Every command finds its logger in
// the command context, set up by the root command before it runs.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that stamps each line with a centisecond clock.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports how long a step took, e.g. "Loaded net.json (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default()
// when the command ran without setup.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
