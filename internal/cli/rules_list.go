package cli

import (
	"fmt"
	"io"

	"weathercheck/internal/rules"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesListQuiet bool
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage and list rules",
	Long: `Manage weathercheck rules.

This command group helps you discover which rules exist and what each rule checks.
Rules are evaluated during runs (see "weathercheck run --help").

Examples:
  # List all available rules
  weathercheck rules list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available rules",
	Long: `List all rules currently registered in this build.

Rules are listed in execution order.

Examples:
  weathercheck rules list
  weathercheck rules list --quiet

Output:
  A vertical list of rules:
    ----------------------------------------
    RULE: {ID}
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rList := rules.List()

		for _, r := range rList {
			if rulesListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), r.ID())
			} else {
				printRule(cmd.OutOrStdout(), r)
			}
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [rule-id]",
	Short: "Show details of a specific rule",
	Long: `Show details of a specific rule by its ID, including the request it sends
(with the API key masked) and what the response must satisfy.

Examples:
  weathercheck rules show invalid_coordinates
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rList, err := rules.Resolve(args[0])
		if err != nil {
			return err
		}
		if len(rList) == 0 {
			return fmt.Errorf("rule not found: %s", args[0])
		}
		printRule(cmd.OutOrStdout(), rList[0])
		return nil
	},
}

func printRule(w io.Writer, r rules.Rule) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "RULE: %s\n", r.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, r.Title())
	fmt.Fprintln(w, r.Description())

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Request:  %s\n", r.Request().Redacted())
	if c, ok := r.(*rules.Contract); ok {
		fmt.Fprintf(w, "Status:   %d\n", c.ExpectedStatus)
		if len(c.Assertions) > 0 {
			fmt.Fprintln(w, "Asserts:")
			for _, a := range c.Assertions {
				fmt.Fprintf(w, "  %s %s\n", a.Path, a.Check)
			}
		}
	}
	if exp := r.Expectation(); exp != "" {
		fmt.Fprintf(w, "Expected: %s\n", exp)
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print rule IDs")
	rulesCmd.AddCommand(rulesShowCmd)
}
