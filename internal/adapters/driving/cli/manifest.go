package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyna-ai/modelkit/internal/core/ports/driving"
	"github.com/oyna-ai/modelkit/internal/logger"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Build and inspect the model manifest",
}

var manifestBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the manifest from model documents",
	Long: `Scans the models directory recursively and writes one consolidated
manifest entry per document. Files that cannot be parsed are reported and
skipped; they do not fail the build.`,
	Args: cobra.NoArgs,
	RunE: runManifestBuild,
}

var manifestInspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "List the entries of a written manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManifestInspect,
}

func init() {
	manifestBuildCmd.Flags().String("models-dir", "", "models directory (default <root>/models)")
	manifestBuildCmd.Flags().StringP("output", "o", "", "manifest file (default <root>/manifest.json)")
	manifestBuildCmd.Flags().Bool("pretty", false, "indent the manifest")
	manifestInspectCmd.Flags().Bool("json", false, "print the manifest as JSON")

	manifestCmd.AddCommand(manifestBuildCmd)
	manifestCmd.AddCommand(manifestInspectCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestBuild(cmd *cobra.Command, _ []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	output := s.pathFlag(cmd, "output", s.cfg.Manifest.Output)
	pretty := boolFlag(cmd, "pretty", s.cfg.Manifest.Pretty)
	opts := driving.BuildOptions{
		ModelsDir:   s.pathFlag(cmd, "models-dir", s.cfg.Manifest.ModelsDir),
		ProjectRoot: s.root,
	}
	logger.Section("Build manifest from " + relativeTo(s.root, opts.ModelsDir))

	ctx := commandContext(cmd)
	svc := s.manifestService()

	result, err := svc.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("manifest build failed: %w", err)
	}
	logDiagnostics(result.Diagnostics)

	if err := svc.Write(ctx, result.Manifest, output, pretty); err != nil {
		return err
	}

	cmd.Printf("Manifest written to: %s\n", relativeTo(s.root, output))
	cmd.Printf("Total models in manifest: %d\n", result.Manifest.ModelCount)
	if n := len(result.Skipped); n > 0 {
		logger.Warn("%d file(s) skipped", n)
	}
	return nil
}

func runManifestInspect(cmd *cobra.Command, args []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	path := s.resolve(s.cfg.Manifest.Output)
	if len(args) > 0 {
		path = args[0]
	}

	m, err := s.manifestService().Read(commandContext(cmd), path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), m)
	}

	cmd.Printf("Manifest version %d, generated %s\n", m.Version, m.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	cmd.Printf("%d model(s):\n", m.ModelCount)
	for _, e := range m.Models {
		cmd.Printf("  - %s", e.ID)
		if e.Name != e.ID {
			cmd.Printf(" (%s)", e.Name)
		}
		cmd.Printf("  [%s]\n", e.SourceFile)
		if e.Description != "" {
			cmd.Printf("      %s\n", e.Description)
		}
		if len(e.Endpoints) > 0 {
			cmd.Printf("      endpoints: %d\n", len(e.Endpoints))
		}
	}
	return nil
}
