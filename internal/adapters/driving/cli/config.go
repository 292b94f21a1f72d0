package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after applying defaults, the config file and
MODELKIT_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Long: `Writes a value to the project config file, e.g.

  modelkit config set validate.schemas_dir schemas`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	out, err := s.store.Render()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	cmd.Printf("# %s\n", s.store.Path())
	cmd.Print(string(out))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	value, ok := s.store.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: config key %s", domain.ErrNotFound, args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := activeSession()
	if err != nil {
		return err
	}

	key, value := args[0], parseValue(args[1])
	if err := s.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("%s = %v\n", key, value)
	return nil
}

// parseValue keeps booleans typed so the file stays readable.
func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
