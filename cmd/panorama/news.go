package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdapps/panorama/internal/httpapi"
	"github.com/mvdapps/panorama/internal/news"
)

func newNewsCommand() *cobra.Command {
	var (
		keyword  string
		category string
		page     string
		size     int
	)

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest headlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := httpapi.NewClient(cfg.News.BaseURL)
			defer func() {
				_ = client.Close()
			}()

			service, err := news.NewService(client, cfg.News)
			if err != nil {
				return err
			}

			result, err := service.Latest(cmd.Context(), news.Query{
				Keyword:  keyword,
				Category: category,
				Page:     page,
				Size:     size,
			})
			if err != nil {
				return err
			}

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			title := color.New(color.Bold)
			for _, article := range result.Articles {
				title.Fprintln(out, article.Title)
				if article.SourceID != "" || article.PubDate != "" {
					fmt.Fprintf(out, "  %s  %s\n", article.SourceID, article.PubDate)
				}
				if article.Link != "" {
					fmt.Fprintf(out, "  %s\n", article.Link)
				}
			}
			if result.HasMore {
				fmt.Fprintf(out, "\nmore available: --page %s\n", result.NextPage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "Filter headlines by keyword")
	cmd.Flags().StringVar(&category, "category", "", "Filter headlines by category")
	cmd.Flags().StringVar(&page, "page", "", "Next-page cursor from a previous call")
	cmd.Flags().IntVar(&size, "size", 10, "Page size (1-10)")

	return cmd
}
