package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sprig"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sprig",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sprig version %s\n", strings.TrimSpace(sprig.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
