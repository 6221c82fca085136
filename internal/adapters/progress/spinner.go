package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerProgressReporter shows the deploy stages behind a spinner on w
type SpinnerProgressReporter struct {
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
	mu      sync.Mutex
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter writing to w
func NewSpinnerProgressReporter(w io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     w,
		spinner: s,
		stages:  []stageInfo{},
	}
}

// ReportStage closes the running stage and starts the next one
func (r *SpinnerProgressReporter) ReportStage(ctx context.Context, stage usecase.ExecutionStage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completeCurrentStage()

	if stage == usecase.StageCompleted {
		r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: time.Now(), EndTime: time.Now(), Status: "completed"})
		r.spinner.Suffix = " " + r.display()
		r.spinner.Stop()
		return
	}

	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: time.Now(),
		Status:    "running",
	})
	r.spinner.Suffix = " " + r.display()
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// OnProgress updates the running stage's message
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printLine(color.New(color.FgCyan), message)
}

// Error prints an error message and marks the running stage failed
func (r *SpinnerProgressReporter) Error(message string) {
	r.mu.Lock()
	if n := len(r.stages); n > 0 && r.stages[n-1].Status == "running" {
		r.stages[n-1].Status = "failed"
		r.stages[n-1].EndTime = time.Now()
	}
	r.mu.Unlock()

	r.spinner.Stop()
	r.printLine(color.New(color.FgRed), message)
}

// printLine pauses the spinner so the message gets a line of its own
func (r *SpinnerProgressReporter) printLine(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	_, _ = c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) completeCurrentStage() {
	if n := len(r.stages); n > 0 && r.stages[n-1].Status == "running" {
		r.stages[n-1].EndTime = time.Now()
		r.stages[n-1].Status = "completed"
	}
}

// display renders the stage trail, e.g. "✓ Compiling (1.2s) → ● Deploying (3s)"
func (r *SpinnerProgressReporter) display() string {
	var display string
	title := cases.Title(language.English)

	for i, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		case "failed":
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if stage.Stage != usecase.StageCompleted {
			if !stage.EndTime.IsZero() {
				duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
			} else if stage.Status == "running" {
				duration = fmt.Sprintf(" (%s)", time.Since(stage.StartTime).Round(time.Second))
			}
		}

		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(title.String(string(stage.Stage))), duration)
		if stage.Message != "" && stage.Status == "running" {
			display += ": " + stage.Message
		}
	}

	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
