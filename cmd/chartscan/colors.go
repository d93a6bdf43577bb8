package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chart-color-inspector/internal/classifier"
	"chart-color-inspector/internal/config"
)

// NewColorsCmd creates the colors command.
func NewColorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "List the available color rules and their thresholds",
		Long: `Colors lists every color rule the scanner knows, with the threshold
conditions each rule checks. Pass --rules to inspect a custom rule file
instead of the built-in set.`,
		Args: cobra.NoArgs,
		RunE: runColorsCmd,
	}

	cmd.Flags().StringP("rules", "r", "",
		"YAML file with custom color rules (replaces the built-in set)")

	return cmd
}

// runColorsCmd executes the colors command.
func runColorsCmd(cmd *cobra.Command, _ []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")

	ruleSet := classifier.BuiltinRules()
	if rulesPath != "" {
		var err error
		ruleSet, err = config.LoadRulesFile(rulesPath)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, rule := range ruleSet {
		fmt.Fprintf(out, "%s\n", rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(out, "  %s\n", rule.Description)
		}
		for _, cond := range rule.Conditions {
			fmt.Fprintf(out, "    - %s\n", cond.String())
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d color rule(s)\n", len(ruleSet))
	return nil
}
