package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ymlog/internal/logging"
)

func newExecCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var label string

	cmd := &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Run a command and record its output as a nested log stream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(outPath) == "" {
				runID := time.Now().UTC().Format("20060102T150405.000Z")
				outPath = filepath.Join(cfg.LogDir, fmt.Sprintf("ymlog-%s.log", runID))
			}

			logger, err := logging.NewFromConfig(cfg, outPath)
			if err != nil {
				return err
			}
			defer logger.Close()

			var handler slog.Handler = logging.NewHandler(logger)
			if cfg.Session.Enabled {
				handler = logging.NewSessionHandler(handler, uuid.NewString())
			}
			log := slog.New(handler)

			if strings.TrimSpace(label) == "" {
				label = filepath.Base(args[0])
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			exitCode, runErr := runLogged(sigCtx, log, logger.Enter(label), args)
			if closeErr := logger.Close(); closeErr != nil && runErr == nil {
				runErr = closeErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "log written to %s\n", outPath)
			if runErr != nil {
				return runErr
			}
			if exitCode != 0 {
				return fmt.Errorf("command exited with status %d", exitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Log file destination (default: log_dir/ymlog-<run>.log)")
	cmd.Flags().StringVar(&label, "label", "", "Scope label for the run (default: command name)")
	return cmd
}

// runLogged starts the child process and streams its output through the
// logger: stdout lines at info, stderr lines at warn, all nested under the
// run scope. The exit closure pops the scope before the final record.
func runLogged(ctx context.Context, log *slog.Logger, exit func(), args []string) (int, error) {
	defer exit()

	child := exec.CommandContext(ctx, args[0], args[1:]...)

	stdout, err := child.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("attach stdout: %w", err)
	}
	stderr, err := child.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("attach stderr: %w", err)
	}

	log.Info("command started", slog.String("command", strings.Join(args, " ")))
	started := time.Now()

	if err := child.Start(); err != nil {
		log.Error("command failed to start", slog.String("error", err.Error()))
		return -1, fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := forwardLines(stdout, func(line string) { log.Info(line) }); err != nil {
			log.Warn("stdout capture interrupted", slog.String("error", err.Error()))
		}
	}()
	go func() {
		defer wg.Done()
		if err := forwardLines(stderr, func(line string) { log.Warn(line) }); err != nil {
			log.Warn("stderr capture interrupted", slog.String("error", err.Error()))
		}
	}()
	wg.Wait()

	waitErr := child.Wait()
	exitCode := child.ProcessState.ExitCode()

	exit()
	elapsed := time.Since(started).Round(time.Millisecond)
	if waitErr != nil && exitCode < 0 {
		log.Error("command aborted",
			slog.String("error", waitErr.Error()),
			slog.Duration("elapsed", elapsed))
		return exitCode, fmt.Errorf("run command: %w", waitErr)
	}

	if exitCode == 0 {
		log.Info("command exited", slog.Int("status", exitCode), slog.Duration("elapsed", elapsed))
	} else {
		log.Error("command exited", slog.Int("status", exitCode), slog.Duration("elapsed", elapsed))
	}
	return exitCode, nil
}

// forwardLines emits each line of r until EOF or a scan failure. On failure
// (typically a line past the buffer cap) the rest of the stream is drained so
// the child never blocks on a full pipe, and the error is returned for the
// caller to report.
func forwardLines(r io.Reader, emit func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		emit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}
