package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gd32test",
		Long:  `All software has versions. This is gd32test's.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gd32test version %s\n", rootCmd.Version)
		},
	}
}
