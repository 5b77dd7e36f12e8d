package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ben-kodbiz/quranlingo/internal/glossary"
)

// glossaryCmd represents the glossary command
var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Convert and lint the word glossary",
}

var glossaryConvertCmd = &cobra.Command{
	Use:   "convert <out>",
	Short: "Write the glossary as structured JSON or YAML",
	Long: `Convert reads the glossary (data.glossary_source, which may be the
JavaScript source with the embedded table) and writes it to <out> in the
format implied by its extension (.json, .yaml or .yml).

Example:
  quranlingo glossary convert word_meanings.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGlossaryConvert,
}

var glossaryCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report glossary words without a usable meaning",
	Args:  cobra.NoArgs,
	RunE:  runGlossaryCheck,
}

func init() {
	rootCmd.AddCommand(glossaryCmd)
	glossaryCmd.AddCommand(glossaryConvertCmd)
	glossaryCmd.AddCommand(glossaryCheckCmd)
}

func runGlossaryConvert(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	g, err := loadGlossary(cfg, log)
	if err != nil {
		return err
	}
	if err := glossary.Save(args[0], g); err != nil {
		return fmt.Errorf("write glossary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d words to %s\n", len(g), args[0])
	return nil
}

func runGlossaryCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	g, err := loadGlossary(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	problems := g.Check()
	for _, p := range problems {
		fmt.Fprintf(out, "✗ %s: %s\n", p.Word, p.Reason)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d of %d glossary words have problems", len(problems), len(g))
	}

	fmt.Fprintf(out, "✓ %d words, no problems\n", len(g))
	return nil
}
