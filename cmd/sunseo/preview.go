package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <input.xlsx>",
	Short: "Show the rewritten name and description of the first row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOpts.options(cmd)
		if err != nil {
			return err
		}
		preview, err := app.rewriter.PreviewFile(args[0], opts)
		if err != nil {
			return err
		}
		fmt.Println(preview)
		return nil
	},
}

func init() {
	addOptionFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
