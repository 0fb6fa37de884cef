package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdapps/panorama/internal/cache"
	"github.com/mvdapps/panorama/internal/currency"
	"github.com/mvdapps/panorama/internal/httpapi"
)

func newRatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show exchange rates against the local currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := httpapi.NewClient(cfg.Currency.BaseURL)
			defer func() {
				_ = client.Close()
			}()

			var opts []currency.ServiceOption
			if maxAge := cfg.Cache.CurrencyMaxAgeSeconds; maxAge > 0 {
				store, closeStore, err := newStore(cfg)
				if err != nil {
					return err
				}
				defer closeStore()
				opts = append(opts, currency.WithGate(
					cache.NewGate(store),
					cache.MaxAge(time.Duration(maxAge)*time.Second),
				))
			}

			service := currency.NewService(client, cfg.Currency, opts...)
			rates, err := service.Rates(cmd.Context())
			if err != nil {
				return err
			}

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), rates)
			}

			out := cmd.OutOrStdout()
			local := cfg.Currency.Local
			bold := color.New(color.Bold)
			bold.Fprintf(out, "1 USD = %s %s\n", rates.USDToLocal, local)
			bold.Fprintf(out, "1 EUR = %s %s\n", rates.EURToLocal, local)
			bold.Fprintf(out, "1 BRL = %s %s\n", rates.BRLToLocal, local)
			fmt.Fprintf(out, "updated %s\n", rates.LastUpdatedLocal.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
