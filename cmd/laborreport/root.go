package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "laborreport",
		Short: "Per-technician labor and parts reports from the field-service API",
		Long: `laborreport pulls completed work orders and job items from the field-service
API, attributes labor hours or parts revenue to technicians, stores each report
by name and draws stored reports side by side in the terminal.

Configuration comes from LABOR_* and LOG_* environment variables; the API key
is read from MY_API_KEY in the key file (LABOR_KEY_FILE, default .env) and
prompted for when missing.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.BoolVar(&a.noColor, "no-color", false, "render charts and tables without colour")
	pf.StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error, off)")
	pf.StringVar(&a.logFormat, "log-format", "", "override LOG_FORMAT (console, json)")

	root.AddCommand(
		newGetCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newPlotCmd(a),
		newTypesCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}
