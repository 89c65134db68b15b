package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var findCard string

func init() {
	cardsCmd.Flags().StringVar(&findCard, "find", "", "Print only the card whose name is closest to this.")
	rootCmd.AddCommand(cardsCmd)
}

var cardsCmd = &cobra.Command{
	Use:   "cards <set slug>",
	Short: "Prints every card of a set from the console listing endpoint.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cards, err := newPricecharting().ListCards(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		if findCard != "" {
			var bestSimilarity float64
			bestIdx := -1
			for i, card := range cards {
				similarity := matchr.JaroWinkler(
					strings.ToLower(findCard),
					strings.ToLower(card.Name),
					false,
				)
				if similarity > bestSimilarity {
					bestSimilarity = similarity
					bestIdx = i
				}
			}
			if bestIdx < 0 {
				fmt.Fprintln(os.Stderr, "no cards found")
				os.Exit(1)
			}
			cards = cards[bestIdx : bestIdx+1]
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Card", "Id", "Url"})
		for _, card := range cards {
			t.AppendRow(table.Row{card.Name, card.Id, card.Url})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
