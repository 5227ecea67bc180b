package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindframe/internal/battery"
)

var batteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Inspect and validate battery files",
}

var batteryValidateCmd = &cobra.Command{
	Use:   "validate <battery.yaml>",
	Short: "Validate an external battery file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bat, err := battery.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s %s: %d domains, %d items, %d screening rules, %d classifier sets\n",
			bat.Name, bat.Version,
			len(bat.Domains), len(bat.Items), len(bat.Screenings), len(bat.Classifiers))
		return nil
	},
}

var batteryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Describe the active battery",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bat, err := resolveBattery(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n\n", bat.Name, bat.Version)
		for _, d := range bat.Domains {
			n := 0
			for _, it := range bat.Items {
				if it.Domain == d.Name {
					n++
				}
			}
			fmt.Fprintf(out, "  %-22s %-10s scale %d, %d items\n", d.Name, d.Class, d.Scale, n)
		}
		return nil
	},
}

func init() {
	batteryCmd.AddCommand(batteryValidateCmd)
	batteryCmd.AddCommand(batteryShowCmd)
}
