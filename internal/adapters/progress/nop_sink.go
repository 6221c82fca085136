package progress

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

// ReportStage does nothing
func (n *NopSink) ReportStage(ctx context.Context, stage usecase.ExecutionStage) {}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(message string) {}

// Error does nothing with error messages
func (n *NopSink) Error(message string) {}

// NewSink picks the spinner when w is a terminal and output is meant for humans
func NewSink(cfg *config.RuntimeConfig, w io.Writer) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive || cfg.Debug {
		return NewNopSink()
	}
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter(w)
}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
