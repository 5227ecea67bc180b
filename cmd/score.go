package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindframe/internal/likert"
	"github.com/abhisek/mindframe/internal/profile"
)

var scoreCmd = &cobra.Command{
	Use:   "score [session-id]",
	Short: "Score a session and print the report",
	Long: "Score reads responses from a stored session (by ID) or from a JSON " +
		"file (--input) and runs the full scoring pipeline over them.",
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("input", "", "Read responses from a JSON file instead of the store")
	scoreCmd.Flags().Bool("json", false, "Print the raw report as JSON")
	scoreCmd.Flags().Bool("save", false, "Save the report snapshot to the store")
}

func runScore(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	if input == "" && len(args) == 0 {
		return fmt.Errorf("either a session ID or --input is required")
	}
	if input != "" && save {
		return fmt.Errorf("--save requires a stored session, not --input")
	}

	bat, err := resolveBattery(cmd)
	if err != nil {
		return err
	}

	var responses []likert.Response
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		responses, err = likert.DecodeJSON(f)
		if err != nil {
			return err
		}
	} else {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		sess, err := st.SessionRepo().Get(ctx, args[0])
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("session %s not found", args[0])
		}
		responses, err = st.ResponseRepo().BySession(ctx, sess.ID)
		if err != nil {
			return err
		}

		report := profile.NewService(bat).Score(responses)
		if save {
			if err := st.ReportRepo().Save(ctx, sess.ID, report); err != nil {
				return err
			}
		}
		return printReport(cmd, report, asJSON)
	}

	report := profile.NewService(bat).Score(responses)
	return printReport(cmd, report, asJSON)
}

func printReport(cmd *cobra.Command, rep *profile.Report, asJSON bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(out, "Battery: %s %s\n\n", rep.Battery, rep.BatteryVersion)

	names := make([]string, 0, len(rep.Domains))
	for name := range rep.Domains {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Domains:")
	for _, name := range names {
		d := rep.Domains[name]
		if d.Status != profile.StatusScored {
			fmt.Fprintf(out, "  %-22s (insufficient data)\n", name)
			continue
		}
		line := fmt.Sprintf("  %-22s %3d", name, d.Score)
		if d.Interval != nil {
			line += fmt.Sprintf("  [%5.1f, %5.1f]", d.Interval.Lower, d.Interval.Upper)
		}
		line += fmt.Sprintf("  %s (%d items", d.Level, d.ItemCount)
		if d.ImputedCount > 0 {
			line += fmt.Sprintf(", %d imputed", d.ImputedCount)
		}
		fmt.Fprintln(out, line+")")
	}

	if len(rep.Screenings) > 0 {
		fmt.Fprintln(out, "\nScreenings:")
		for _, res := range rep.Screenings {
			var met []string
			for fam, ok := range res.IndicatorsMet {
				if ok {
					met = append(met, string(fam))
				}
			}
			sort.Strings(met)
			fmt.Fprintf(out, "  %-22s %s (%d/3 indicators: %s)\n",
				res.Domain, res.Tier, res.ValidatedCount, strings.Join(met, ", "))
		}
	}

	if len(rep.Classifications) > 0 {
		fmt.Fprintln(out, "\nClassifications:")
		for _, c := range rep.Classifications {
			label := c.PrimaryType
			if c.IsHybrid {
				label += " / " + c.SecondaryType
			}
			fmt.Fprintf(out, "  %-22s %s\n", c.Set, label)
		}
	}

	if n := len(rep.UnattributedItems); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"\nwarning: %d item(s) could not be attributed to any domain: %s\n",
			n, strings.Join(rep.UnattributedItems, ", "))
	}
	return nil
}
