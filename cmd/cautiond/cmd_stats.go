package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socialcaution/cautiond/internal/domain"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog-wide caution statistics",
		Long: `Shows caution counts by severity and category, the count of items
published in the last 7 days, and the catalog total. Requires a selected
persona, but the counts cover the entire catalog: the stats panel shows the
full threat landscape alongside the personalized feed.`,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	stats, err := a.svc.Stats(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoPersonaSelected) {
			fmt.Println("No persona selected. Run `cautiond persona select <name>` first.")
			return nil
		}
		return err
	}

	fmt.Println("By severity:")
	for _, sev := range domain.Severities() {
		fmt.Printf("  %-9s %d\n", sev, stats.BySeverity[sev])
	}
	fmt.Println("By category:")
	for category, count := range stats.ByCategory {
		fmt.Printf("  %-18s %d\n", category, count)
	}
	fmt.Printf("Recent (7d): %d\n", stats.RecentCount)
	fmt.Printf("Total:       %d\n", stats.TotalActive)
	return nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the caution categories present in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			categories, err := a.svc.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Println(c)
			}
			return nil
		},
	}
}
