package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helloitszak/qlight-ctrl/internal/hid"
	"github.com/helloitszak/qlight-ctrl/internal/qlight"
)

func setCmd() *cobra.Command {
	var (
		paths []string
		all   bool
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "set [flags] color:mode...",
		Short: "Set the light to a specific set of colors",
		Long: `Set the light to a specific set of colors.

Each argument is a color:mode pair.
Valid colors: red, yellow, green, blue, white
Valid modes: off, on, blink`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := qlight.NewCommandSet()
			if reset {
				set = qlight.AllOff()
			}
			for _, tok := range args {
				lc, err := qlight.ParseLightCommand(tok)
				if err != nil {
					return err
				}
				set.Set(lc.Color, lc.Mode)
			}

			mgr, err := hid.NewManager()
			if err != nil {
				return err
			}

			targets := paths
			if all {
				lights, err := qlight.Lights(mgr)
				if err != nil {
					return err
				}
				if len(lights) == 0 {
					return fmt.Errorf("no lights detected")
				}
				targets = targets[:0]
				for _, l := range lights {
					targets = append(targets, l.Path)
				}
			}

			for _, path := range targets {
				sess := qlight.NewSession(mgr, qlight.Binding{Path: path})
				if _, err := sess.Apply(set); err != nil {
					return err
				}
				if err := sess.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&paths, "path", nil, "apply the commands to the light at `PATH` (see qlight list)")
	cmd.Flags().BoolVar(&all, "all", false, "apply the commands to all detected lights")
	cmd.Flags().BoolVar(&reset, "reset", false, "turn off any unspecified color")
	cmd.MarkFlagsMutuallyExclusive("path", "all")
	cmd.MarkFlagsOneRequired("path", "all")

	return cmd
}
