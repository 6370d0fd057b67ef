package main

import (
	"encoding/json"
	"fmt"

	"laborreport/internal/presentation/chart"
	"laborreport/internal/services/reports/domain"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := a.readOnly().List(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(a.out, "no stored reports")
				return nil
			}
			fmt.Fprint(a.out, chart.ReportTable(rows, a.chartOptions("Stored Reports", "")))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <index|name>",
		Short: "Print one stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.readOnly()
			name, err := svc.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := svc.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "    ")
				return enc.Encode(m)
			}
			parts, _ := domain.ParseName(name)
			fmt.Fprint(a.out, chart.MetricsTable(m, a.chartOptions(name, unitFor(parts.Label))))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored report",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.readOnly()
			name, err := svc.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %q\n", name)
			return nil
		},
	}
}

func newPlotCmd(a *app) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "plot <index|name>...",
		Short: "Chart one or more stored reports side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.readOnly()
			series := make([]chart.Series, 0, len(args))
			unit := ""
			for _, ref := range args {
				name, err := svc.Resolve(cmd.Context(), ref)
				if err != nil {
					return err
				}
				m, err := svc.Get(cmd.Context(), name)
				if err != nil {
					return err
				}
				parts, _ := domain.ParseName(name)
				if unit == "" {
					unit = unitFor(parts.Label)
				}
				series = append(series, chart.Series{Label: name, Values: m})
			}
			if title == "" {
				parts, _ := domain.ParseName(series[0].Label)
				title = parts.Label + " per Technician"
			}
			fmt.Fprint(a.out, chart.Bars(series, a.chartOptions(title, unit)))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "chart title (default from the first report's type)")
	return cmd
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the report types",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprint(a.out, chart.TypesTable(a.chartOptions("Report Types", "")))
		},
	}
}
