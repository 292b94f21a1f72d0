// Package cli provides the cobra command tree for modelkit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oyna-ai/modelkit/internal/adapters/driven/config/file"
	"github.com/oyna-ai/modelkit/internal/core/ports/driven"
	"github.com/oyna-ai/modelkit/internal/logger"
	"github.com/oyna-ai/modelkit/internal/telemetry"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	rootDir    string
	configPath string
	verbose    bool
)

// settings is the configuration surface the config commands work through.
type settings interface {
	driven.ConfigStore
	Render() ([]byte, error)
}

// session holds per-invocation state resolved before a command runs.
type session struct {
	root     string
	store    settings
	cfg      *file.Config
	shutdown telemetry.ShutdownFunc
}

var current *session

// ExitError carries a non-zero exit code without an error message.
// Commands return it for verdicts such as a failed validation.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var rootCmd = &cobra.Command{
	Use:   "modelkit",
	Short: "Build and validate model manifests",
	Long: `modelkit discovers model documents on disk, builds a consolidated
manifest from them, and validates typed documents against the JSON Schema
for their model type.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startSession,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default <root>/"+file.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases session resources.
func Execute(ctx context.Context) error {
	defer endSession()
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func startSession(cmd *cobra.Command, _ []string) error {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	path := configPath
	if path == "" {
		path = filepath.Join(root, file.DefaultFileName)
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := store.Config()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose || cfg.Log.Verbose)

	service := cfg.Telemetry.ServiceName
	if service == "" {
		service = "modelkit"
	}
	shutdown, err := telemetry.Init(service, version, telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
		Writer:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	current = &session{root: root, store: store, cfg: cfg, shutdown: shutdown}
	logger.Debug("root: %s, config: %s", root, path)
	return nil
}

func endSession() {
	if current == nil {
		return
	}
	s := current
	current = nil
	if s.shutdown != nil {
		if err := s.shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown: %v", err)
		}
	}
}

// resolve interprets a configured path relative to the project root.
func (s *session) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// pathFlag returns the flag value when set on the command line,
// otherwise the configured value resolved against the root.
func (s *session) pathFlag(cmd *cobra.Command, name, configured string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return s.resolve(configured)
}

// boolFlag returns the flag value when set, otherwise the configured value.
func boolFlag(cmd *cobra.Command, name string, configured bool) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return configured
}

func activeSession() (*session, error) {
	if current == nil {
		return nil, errors.New("session not started")
	}
	return current, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// relativeTo shortens path for display when it lies under root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
