package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vitalis-hq/glosaguard/pkg/validation/rules"
)

var rulesFlags struct {
	stats bool
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered validation rules",
	Long: `List the built-in validation rules in execution order (ascending
priority), with their enabled state.

Examples:
  # List all rules
  glosaguard rules

  # Show registry statistics
  glosaguard rules --stats`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().BoolVar(&rulesFlags.stats, "stats", false, "print registry statistics")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	engine := rules.NewEngine(rules.Deps{Logger: logger})
	for _, id := range cfg.Rules.Disabled {
		engine.SetRuleEnabled(id, false)
	}
	registry := engine.Registry()

	if rulesFlags.stats {
		stats := registry.Stats()
		fmt.Printf("Total:    %d\n", stats.Total)
		fmt.Printf("Enabled:  %d\n", stats.Enabled)
		fmt.Printf("Disabled: %d\n", stats.Disabled)

		priorities := make([]int, 0, len(stats.ByPriority))
		for p := range stats.ByPriority {
			priorities = append(priorities, p)
		}
		sort.Ints(priorities)

		fmt.Println("By priority:")
		for _, p := range priorities {
			fmt.Printf("  %4d: %d\n", p, stats.ByPriority[p])
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tID\tENABLED\tNAME")
	for _, r := range registry.AllRules() {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", r.Priority(), r.ID(), registry.Enabled(r.ID()), r.Name())
	}
	return w.Flush()
}
