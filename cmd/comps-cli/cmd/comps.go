package cmd

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"cardcomps-backend/lib/platforms/pricecharting"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showSales bool

func init() {
	compsCmd.Flags().BoolVar(&showSales, "sales", false, "Also print the individual sales.")
	rootCmd.AddCommand(compsCmd)
}

var compsCmd = &cobra.Command{
	Use:   "comps <product url>",
	Short: "Prints per-grade comp statistics for a product page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newPricecharting()

		sales, err := client.ScrapeSales(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		slices.SortFunc(sales, func(a, b pricecharting.Sale) int {
			return a.Date.Compare(b.Date)
		})
		stats := pricecharting.AggregateComps(sales)

		grades := make([]string, 0, len(stats))
		for grade := range stats {
			grades = append(grades, grade)
		}
		sort.Strings(grades)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Grade", "Count", "Median", "Mean", "Min", "Max", "Latest"})
		for _, grade := range grades {
			s := stats[grade]
			t.AppendRow(table.Row{grade, s.Count, s.Median, s.Mean, s.Min, s.Max, s.LatestSale})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if !showSales {
			return
		}

		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Date", "Grade", "Price", "Title", "Listing"})
		for _, sale := range sales {
			t.AppendRow(table.Row{
				sale.Date.Format("2006-01-02"),
				sale.Grade,
				sale.Price,
				sale.Title,
				sale.ListingUrl(),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
