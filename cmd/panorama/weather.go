package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/httpapi"
	"github.com/mvdapps/panorama/internal/weather"
)

func newWeatherCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show current conditions and the daily forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 || days > 5 {
				return fmt.Errorf("--days must be between 1 and 5")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, closeStore, err := newStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			client := httpapi.NewClient(cfg.Weather.BaseURL)
			defer func() {
				_ = client.Close()
			}()

			service := weather.NewService(client, cache.NewGate(store), cfg.Weather)
			snapshot, err := service.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			daily := weather.Daily(snapshot.Forecast, days)

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), struct {
					Current weather.Weather         `json:"current" yaml:"current"`
					Daily   []weather.ForecastEntry `json:"daily" yaml:"daily"`
				}{snapshot.Current, daily})
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			fmt.Fprintln(out, cfg.Weather.City)
			bold.Fprintf(out, "%.0f °C  %s\n", snapshot.Current.TemperatureC, snapshot.Current.Description)
			fmt.Fprintf(out, "feels like %.0f °C, humidity %d%%\n\n",
				snapshot.Current.FeelsLikeC, snapshot.Current.HumidityPercent)
			for _, entry := range daily {
				fmt.Fprintf(out, "%s  %3.0f °C  %s\n",
					entry.Time.Format("Mon 02/01"), entry.TemperatureC, entry.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 5, "Number of forecast days to show (1-5)")

	return cmd
}
