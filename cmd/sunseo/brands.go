package main

import (
	"fmt"
	"sort"
	"sunseo/internal/brand"

	"github.com/spf13/cobra"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Manage the Latin to Cyrillic brand map",
}

var brandsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Add a guessed entry for every listed brand missing from the map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		added, err := app.syncBrands()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Добавлено брендов: %d (%s)\n", added, app.brandMap.Path())
		return nil
	},
}

var brandsLocalizeCmd = &cobra.Command{
	Use:   "localize <brand>",
	Short: "Print the Cyrillic form used for a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(brand.NewLocalizer(app.brandMap).Localize(args[0]))
		return nil
	},
}

var brandsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the brand map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := app.brandMap.Entries()
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%-20s %s\n", k, entries[k])
		}
		fmt.Printf("\nTotal: %d\n", len(keys))
		return nil
	},
}

func init() {
	brandsCmd.AddCommand(brandsSyncCmd, brandsLocalizeCmd, brandsShowCmd)
	rootCmd.AddCommand(brandsCmd)
}
