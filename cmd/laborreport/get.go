package main

import (
	"encoding/json"
	"fmt"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/platform/credentials"
	perr "laborreport/internal/platform/errors"
	"laborreport/internal/presentation/chart"
	"laborreport/internal/services/reports/domain"
	"laborreport/internal/services/reports/service"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		spec       domain.Spec
		typ        string
		noSave     bool
		asJSON     bool
		noProgress bool
	)
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Compute a report for a date range and store it",
		Example: `  laborreport get --start 2024-01-01 --end 2024-02-01 --type lost-time
  laborreport get --start 2024-01-01 --end 2024-04-01 --type "Parts per labor hour" --no-save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := domain.ParseType(typ)
			if err != nil {
				return err
			}
			spec.Type = t
			if err := spec.Validate(); err != nil {
				return err
			}

			var opts []service.Option
			if !noProgress && !asJSON {
				opts = append(opts, service.WithProgress(newProgressBar(a.errOut, a.noColor)))
			}
			svc, err := a.online(opts...)
			if err != nil {
				return err
			}

			run := svc.Generate
			if noSave {
				run = svc.Run
			}
			res, err := run(cmd.Context(), spec)
			if err != nil {
				if fieldservice.IsUnauthorized(err) {
					return perr.Wrapf(err, perr.ErrorCodeUnauthorized, "API key rejected; replace %s in %s", credentials.KeyVar, a.opts.KeyFile)
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "    ")
				return enc.Encode(res)
			}
			fmt.Fprint(a.out, chart.MetricsTable(res.Metrics, a.chartOptions(res.Name, unitFor(spec.Type.Label()))))
			fmt.Fprintf(a.out, "\n%d work orders, %d job items, %d failed requests (run %s)\n",
				res.Orders, res.Items, res.Failures, res.RunID)
			if res.Saved {
				fmt.Fprintf(a.out, "saved as %q\n", res.Name)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&spec.Start, "start", "", "first completed date, YYYY-MM-DD (inclusive)")
	f.StringVar(&spec.End, "end", "", "last completed date, YYYY-MM-DD (exclusive)")
	f.StringVar(&typ, "type", "", "report type key or label; see the types command")
	f.BoolVar(&noSave, "no-save", false, "print the report without storing it")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&noProgress, "no-progress", false, "do not draw progress bars")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// unitFor names what a report measures from its type label
func unitFor(label string) string {
	if t, ok := domain.TypeByLabel(label); ok {
		if p, _ := t.Params(); p.Proportional {
			return "Parts $"
		}
	}
	return "Hours"
}
