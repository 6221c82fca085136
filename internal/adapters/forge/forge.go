package forge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/vdeploy/internal/domain"
	"github.com/trebuchet-org/vdeploy/internal/domain/config"
	"github.com/trebuchet-org/vdeploy/internal/usecase"
)

// ErrForgeNotInstalled is returned when the forge binary is not on PATH
var ErrForgeNotInstalled = errors.New("forge not found in PATH (install Foundry or run with --skip-build)")

// ForgeAdapter compiles the project with forge build
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	debug       bool
	stream      io.Writer
	lookPath    func(string) (string, error)
}

// NewForgeAdapter creates a new forge compiler adapter
func NewForgeAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		debug:       cfg.Debug,
		stream:      os.Stderr,
		lookPath:    exec.LookPath,
	}
}

// Compile runs forge build with the compiler profile's solc version and optimizer settings
func (f *ForgeAdapter) Compile(ctx context.Context, compiler domain.CompilerProfile) error {
	forgePath, err := f.lookPath("forge")
	if err != nil {
		return domain.NewError(domain.KindBuild, "compile", ErrForgeNotInstalled)
	}

	args := buildArgs(compiler)
	start := time.Now()
	f.log.Debug("running forge build", "dir", f.projectRoot, "args", args)

	cmd := exec.CommandContext(ctx, forgePath, args...)
	cmd.Dir = f.projectRoot

	if f.debug {
		err = f.runStreaming(cmd)
	} else {
		var output []byte
		output, err = cmd.CombinedOutput()
		if err != nil {
			f.log.Error("forge build failed", "error", err, "output", string(output), "duration", time.Since(start))
			return domain.NewError(domain.KindBuild, "compile",
				fmt.Errorf("forge build failed: %w\nOutput: %s", err, string(output)))
		}
	}
	if err != nil {
		return domain.NewError(domain.KindBuild, "compile", fmt.Errorf("forge build failed: %w", err))
	}

	f.log.Debug("forge build completed successfully", "duration", time.Since(start))
	return nil
}

// runStreaming runs the build through a pty so forge keeps its colours
func (f *ForgeAdapter) runStreaming(cmd *exec.Cmd) error {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// Read errors are expected once the child closes the pty
	_, _ = io.Copy(f.stream, ptyFile)

	return cmd.Wait()
}

// buildArgs builds the forge build arguments for a compiler profile
func buildArgs(compiler domain.CompilerProfile) []string {
	args := []string{"build"}
	if compiler.Version != "" {
		args = append(args, "--use", compiler.Version)
	}
	if compiler.Optimizer {
		args = append(args, "--optimize")
		if compiler.OptimizerRuns > 0 {
			args = append(args, "--optimizer-runs", strconv.Itoa(compiler.OptimizerRuns))
		}
	}
	return args
}

// Ensure the adapter implements the interface
var _ usecase.ContractCompiler = (*ForgeAdapter)(nil)
