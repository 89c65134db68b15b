package cmd

import (
	"fmt"
	"os"

	"cardcomps-backend/lib/platforms/pricecharting"

	"github.com/spf13/cobra"
)

var baseUrl string

var rootCmd = &cobra.Command{
	Use:   "comps-cli",
	Short: "comps-cli looks up comparable-sale statistics for collectible cards.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseUrl,
		"base-url",
		pricecharting.DefaultBaseUrl,
		"Base url of the pricing site.",
	)
}

func newPricecharting() *pricecharting.Client {
	client, err := pricecharting.NewClient(pricecharting.ClientOptions{
		BaseUrl: baseUrl,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	return client
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
