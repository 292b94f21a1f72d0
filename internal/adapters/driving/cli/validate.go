package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oyna-ai/modelkit/internal/connectors/filesystem"
	"github.com/oyna-ai/modelkit/internal/core/domain"
	"github.com/oyna-ai/modelkit/internal/core/ports/driving"
	"github.com/oyna-ai/modelkit/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate model documents against their schemas",
	Long: `Classifies every model document in the models directory by file name and
validates it against the JSON Schema for its model type.

Exits with status 1 when any classified document fails validation. Files
whose type cannot be inferred are reported as skipped and do not fail the run.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("models-dir", "", "models directory (default <root>/models/v1)")
	validateCmd.Flags().String("schemas-dir", "", "schemas directory (default <root>/models/schemas)")
	validateCmd.Flags().Bool("pretty", false, "bulleted violation lines")
	validateCmd.Flags().Bool("json", false, "print the report as JSON")
	validateCmd.Flags().Bool("record", false, "record the run in the history database")
	validateCmd.Flags().Bool("watch", false, "re-validate when models or schemas change")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	watch, _ := cmd.Flags().GetBool("watch")
	pretty := boolFlag(cmd, "pretty", s.cfg.Validate.Pretty)

	opts := driving.ValidateOptions{
		ProjectRoot: s.root,
		ModelsDir:   s.pathFlag(cmd, "models-dir", s.cfg.Validate.ModelsDir),
		SchemasDir:  s.pathFlag(cmd, "schemas-dir", s.cfg.Validate.SchemasDir),
		Record:      boolFlag(cmd, "record", s.cfg.Validate.Record),
	}

	svc, closeFn, err := s.validationService(opts.Record)
	if err != nil {
		return err
	}
	defer closeFn()

	pass := func(ctx context.Context) (*domain.ValidationReport, error) {
		logger.Section("Validate " + relativeTo(s.root, opts.ModelsDir))
		report, err := svc.Validate(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		logDiagnostics(report.Diagnostics)
		if asJSON {
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return nil, err
			}
		} else {
			newReportWriter(cmd.OutOrStdout(), pretty).report(report)
		}
		return report, nil
	}

	ctx := commandContext(cmd)
	if watch {
		return watchValidate(ctx, cmd, s, opts, pass)
	}

	report, err := pass(ctx)
	if err != nil {
		return err
	}
	if code := report.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// watchValidate runs one pass, then another after every relevant change,
// until interrupted.
func watchValidate(
	ctx context.Context,
	cmd *cobra.Command,
	s *session,
	opts driving.ValidateOptions,
	pass func(context.Context) (*domain.ValidationReport, error),
) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := filesystem.NewWatcher(s.cfg.Validate.WatchDebounce)
	defer watcher.Close()

	changes, err := watcher.Watch(ctx, []string{opts.ModelsDir, opts.SchemasDir})
	if err != nil {
		return fmt.Errorf("failed to watch: %w", err)
	}

	if _, err := pass(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	for change := range changes {
		logger.Info("%s %s", change.Op, relativeTo(s.root, change.Path))
		if _, err := pass(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			return err
		}
	}
	return nil
}
