package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/socialcaution/cautiond/internal/domain"
)

func newCautionsCmd() *cobra.Command {
	cautionsCmd := &cobra.Command{
		Use:   "cautions",
		Short: "Query the persona-scoped caution feed",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List caution items for the selected persona",
		RunE:  runCautionsList,
	}
	addFilterFlags(listCmd.Flags())

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one caution item by id (not persona scoped)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCautionsGet,
	}

	cautionsCmd.AddCommand(listCmd, getCmd)
	return cautionsCmd
}

// addFilterFlags registers the caution query flags on a flag set.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.String("category", "", "Filter by category (exact match)")
	fs.String("severity", "", "Filter by severity (low|medium|high|critical)")
	fs.String("since", "", "Only items published on or after this date (ISO-8601)")
	fs.Int("page", 1, "Page number (1-indexed)")
	fs.Int("limit", domain.DefaultPageLimit, "Page size")
}

func runCautionsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	var filter domain.CautionFilter
	filter.Category, _ = cmd.Flags().GetString("category")

	if sevStr, _ := cmd.Flags().GetString("severity"); sevStr != "" {
		sev, err := domain.ParseSeverity(sevStr)
		if err != nil {
			return err
		}
		filter.Severity = sev
	}

	if sinceStr, _ := cmd.Flags().GetString("since"); sinceStr != "" {
		since, err := time.Parse("2006-01-02", sinceStr)
		if err != nil {
			if since, err = time.Parse(time.RFC3339, sinceStr); err != nil {
				return &domain.ValidationError{Field: "since", Reason: fmt.Sprintf("%q is not an ISO-8601 date", sinceStr)}
			}
		}
		filter.StartDate = since
	}

	var page domain.Page
	page.Number, _ = cmd.Flags().GetInt("page")
	page.Limit, _ = cmd.Flags().GetInt("limit")

	result, err := a.svc.QueryCautions(cmd.Context(), filter, page)
	if err != nil {
		if errors.Is(err, domain.ErrNoPersonaSelected) {
			fmt.Println("No persona selected. Run `cautiond persona select <name>` first.")
			return nil
		}
		return err
	}

	for _, item := range result.Items {
		fmt.Printf("%-6s [%-8s] %-16s %s\n", item.ID, item.Severity, item.Category, item.Title)
	}
	fmt.Printf("\nPage %d/%d (%d items total)\n",
		result.Pagination.Page, result.Pagination.Pages, result.Pagination.Total)
	return nil
}

func runCautionsGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	item, err := a.svc.CautionByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", item.ID, item.Title)
	fmt.Printf("Severity:  %s\n", item.Severity)
	fmt.Printf("Category:  %s\n", item.Category)
	fmt.Printf("Published: %s (%s)\n", item.PublishedDate.Format("2006-01-02"), item.Source.Name)
	fmt.Printf("Personas:  %v\n", item.Personas)
	fmt.Printf("\n%s\n", item.Description)
	if item.Content != "" {
		fmt.Printf("\n%s\n", item.Content)
	}
	if item.Link != "" {
		fmt.Printf("\nMore: %s\n", item.Link)
	}
	return nil
}
