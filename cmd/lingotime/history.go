package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrygo/lingotime/server/service/temporal"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recently parsed sentences from the audit store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.profile()
			if err != nil {
				return err
			}
			st, err := openStore(cmd, p)
			if err != nil {
				return err
			}
			defer st.Close()

			p.AuditEnabled = true
			svc, err := temporal.NewServiceFromProfile(p, st, a.logger)
			if err != nil {
				return err
			}
			entries, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				return enc.Encode(entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tTEXT\tDATE\tSOURCE")
			for _, e := range entries {
				date := "-"
				if e.Date != nil {
					date = e.Date.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Text, date, e.Source)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", temporal.DefaultHistoryLimit, "number of rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
