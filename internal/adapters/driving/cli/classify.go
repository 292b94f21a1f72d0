package cli

import (
	"github.com/spf13/cobra"

	"github.com/oyna-ai/modelkit/internal/core/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>...",
	Short: "Show the model type inferred from file names",
	Long: `Applies the file-name classification rules to each argument and prints
the resulting model type and the schema file it would be validated against.
Files are not read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		t := domain.ClassifyPath(path)
		if schema := t.SchemaFileName(); schema != "" {
			cmd.Printf("%s\t%s\t%s\n", path, t, schema)
		} else {
			cmd.Printf("%s\t%s\n", path, t)
		}
	}
	return nil
}
