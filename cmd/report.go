// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/format"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

// maxPageSize is the largest page the GraphQL API accepts for a connection.
const maxPageSize = 100

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetches a user's GitHub activity and renders a report",
	Long: `Fetches a user's contribution activity (commits, issues, pull requests,
reviews) for a date window via the GitHub GraphQL API, optionally narrows it
to one repository or organization, and renders the result in the requested
format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose)

		username, _ := cmd.Flags().GetString("user")
		if err := domain.ValidateUsername(username); err != nil {
			return err
		}

		period, _ := cmd.Flags().GetString("period")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		window, err := domain.ResolveWindow(period, fromStr, toStr, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to get date range: %w", err)
		}

		formatName, _ := cmd.Flags().GetString("format")
		outFormat, err := format.Parse(formatName)
		if err != nil {
			return err
		}
		// The output extension wins over --format when both are given.
		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath != "" {
			outFormat = format.Detect(outputPath, outFormat)
		}

		pageSize, _ := cmd.Flags().GetInt("page-size")
		if pageSize < 1 || pageSize > maxPageSize {
			return fmt.Errorf("page-size must be between 1 and %d, got %d", maxPageSize, pageSize)
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return errors.New("GITHUB_TOKEN environment variable is required")
		}

		logger.Info().
			Str("user", username).
			Time("from", window.From).
			Time("to", window.To).
			Msg("starting activity fetch")

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}

		ctx := cmd.Context()
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if verbose {
			githubGateway.LogRateLimit(ctx)
		}

		sizes := usecase.PageSizes{Issues: pageSize, PullRequests: pageSize, Reviews: pageSize}
		aggregator := usecase.NewAggregator(githubGateway, logger)
		report, err := aggregator.Aggregate(ctx, username, window, sizes)
		if err != nil {
			return fmt.Errorf("failed to fetch activity from GitHub API: %w", err)
		}

		repoFilter, _ := cmd.Flags().GetString("repo")
		orgFilter, _ := cmd.Flags().GetString("org")
		report = usecase.Filters{Repo: repoFilter, Org: orgFilter}.Apply(report)

		renderer, err := format.New(outFormat)
		if err != nil {
			return err
		}
		rendered, err := renderer.Render(report)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}

		// Write the report to a file if specified, otherwise print it.
		if outputPath != "" {
			if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("failed to write report to %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", outputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

// newLogger builds the CLI logger. Quiet by default; verbose switches to
// human-readable debug output on stderr.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("user", "u", "", "GitHub username to report on (required)")
	reportCmd.MarkFlagRequired("user")
	reportCmd.Flags().StringP("period", "p", "", "Look-back window ending now, e.g. 1d, 2w, 3m (a month is 30 days)")
	reportCmd.Flags().String("from", "", "Window start, RFC 3339 or YYYY-MM-DD (requires --to)")
	reportCmd.Flags().String("to", "", "Window end, RFC 3339 or YYYY-MM-DD (requires --from)")
	reportCmd.Flags().String("repo", "", "Only keep activity in this repository (owner/name)")
	reportCmd.Flags().String("org", "", "Only keep activity in repositories owned by this organization")
	reportCmd.Flags().StringP("format", "f", "plain", "Output format: plain, markdown, json or html")
	reportCmd.Flags().StringP("output", "o", "", "Write the report to this file (format inferred from its extension)")
	reportCmd.Flags().Int("page-size", usecase.DefaultPageSize, "Items per page when draining paginated connections (1-100)")
	reportCmd.Flags().Duration("timeout", 0, "Abort the whole fetch after this duration (0 disables)")
}
