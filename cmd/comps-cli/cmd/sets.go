package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setsCmd)
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Prints the card sets in the pricing site's directory.",
	Run: func(cmd *cobra.Command, args []string) {
		sets, err := newPricecharting().ListSets(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Set", "Url"})
		for _, set := range sets {
			t.AppendRow(table.Row{set.Name, set.Url})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
