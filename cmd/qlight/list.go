package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helloitszak/qlight-ctrl/internal/hid"
	"github.com/helloitszak/qlight-ctrl/internal/qlight"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all lights connected to this system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := hid.NewManager()
			if err != nil {
				return err
			}

			lights, err := qlight.Lights(mgr)
			if err != nil {
				return err
			}
			for _, l := range lights {
				fmt.Fprintln(cmd.OutOrStdout(), l.Path)
			}
			return nil
		},
	}
}
