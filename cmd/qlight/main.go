// qlight is a command line tool for qlight USB indicator lights.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "qlight",
		Short:         "Control qlight USB indicator lights",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(setCmd(), listCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
