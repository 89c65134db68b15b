package cmd

import (
	"fmt"
	"os"

	"cardcomps-backend/lib/platforms/ebay"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum number of listings to fetch.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches active fixed-price marketplace listings.",
	Long: "Searches active fixed-price marketplace listings. Credentials are " +
		"read from EBAY_CLIENT_ID/EBAY_CLIENT_SECRET (or a .env file), " +
		"EBAY_ENV selects sandbox or production.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := ebay.ConfigFromEnv()
		if cfg.ClientId == "" || cfg.ClientSecret == "" {
			fmt.Fprintln(os.Stderr, "EBAY_CLIENT_ID and EBAY_CLIENT_SECRET must be set")
			os.Exit(1)
		}

		items, err := ebay.NewClient(cfg).SearchItems(cmd.Context(), args[0], searchLimit)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Title", "Price", "Currency", "Url"})
		for _, item := range items {
			t.AppendRow(table.Row{item.Title, item.Price, item.Currency, item.Url})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
