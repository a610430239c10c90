package main

import (
	"fmt"
	"strings"
	"sunseo/internal/lists"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage the brands, descriptions and frames lists",
}

var listShowCmd = &cobra.Command{
	Use:   "show <brands|descriptions|frames>",
	Short: "Print a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadList(args[0])
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Println(item)
		}
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <brands|descriptions|frames> <value>",
	Short: "Append a value to a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, value := args[0], strings.Join(args[1:], " ")
		if _, err := loadList(name); err != nil {
			return err
		}

		added, err := app.lists.Add(name, value)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("Уже в списке: %s\n", value)
			return nil
		}
		fmt.Printf("✓ Добавлено: %s\n", value)

		if name == lists.Brands {
			if _, err := app.syncBrands(); err != nil {
				return err
			}
		}
		return nil
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <brands|descriptions|frames> <value>",
	Short: "Remove a value from a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, value := args[0], strings.Join(args[1:], " ")
		if _, err := loadList(name); err != nil {
			return err
		}

		removed, err := app.lists.Remove(name, value)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("Нет в списке: %s\n", value)
			return nil
		}
		// the brand map keeps its entry
		fmt.Printf("✓ Удалено: %s\n", value)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listShowCmd, listAddCmd, listRemoveCmd)
	rootCmd.AddCommand(listCmd)
}

func loadList(name string) ([]string, error) {
	if !lists.Known(name) {
		return nil, fmt.Errorf("unknown list %q (want brands, descriptions or frames)", name)
	}
	return app.lists.Load(name, lists.Defaults[name])
}
