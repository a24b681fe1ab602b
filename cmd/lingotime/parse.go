package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/lingotime/server/service/temporal"
	"github.com/hrygo/lingotime/store"
)

type parseOptions struct {
	file        string
	reference   string
	json        bool
	record      bool
	concurrency int
}

// parsedLine is one output row of the parse command.
type parsedLine struct {
	Input string `json:"input"`
	*temporal.ParseResponse
}

func newParseCmd(a *app) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse sentences and print their date and content",
		Long: `Parse each argument as one sentence, or each line of --file.
Results are printed in input order.`,
		Example: `  lingotime parse "明天下午三点开会"
  lingotime parse --reference 2024-01-01T09:30:00+08:00 --timezone Asia/Shanghai "下周六晚上八点数学"
  lingotime parse --file todo.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", `read one sentence per line ("-" for stdin)`)
	cmd.Flags().StringVar(&opts.reference, "reference", "", "reference instant, RFC 3339 or YYYY-MM-DD[ HH:MM] (default: now)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print one JSON object per sentence")
	cmd.Flags().BoolVar(&opts.record, "record", false, "write each result to the audit store")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "sentences parsed at once")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, opts *parseOptions, args []string) error {
	inputs := args
	if opts.file != "" {
		lines, err := readLines(cmd.InOrStdin(), opts.file)
		if err != nil {
			return err
		}
		inputs = append(inputs, lines...)
	}
	if len(inputs) == 0 {
		return errors.New("nothing to parse: pass sentences as arguments or use --file")
	}

	p, err := a.profile()
	if err != nil {
		return err
	}
	var st *store.Store
	if opts.record {
		if st, err = openStore(cmd, p); err != nil {
			return err
		}
		defer st.Close()
	} else {
		p.AuditEnabled = false
	}
	svc, err := temporal.NewServiceFromProfile(p, st, a.logger)
	if err != nil {
		return err
	}

	results := make([]parsedLine, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, opts.concurrency))
	for i, input := range inputs {
		g.Go(func() error {
			resp, err := svc.Parse(ctx, &temporal.ParseRequest{Text: input, Reference: opts.reference})
			if err != nil {
				return errors.Wrapf(err, "line %d", i+1)
			}
			results[i] = parsedLine{Input: input, ParseResponse: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.json {
		return writeJSONLines(cmd.OutOrStdout(), results)
	}
	return writeTable(cmd.OutOrStdout(), results)
}

// readLines returns the non-blank lines of name, or of stdin for "-".
func readLines(stdin io.Reader, name string) ([]string, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", name)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return lines, nil
}

func writeJSONLines(w io.Writer, results []parsedLine) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, results []parsedLine) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCONTENT\tLANG\tSOURCE")
	for _, r := range results {
		date := "-"
		if r.Date != nil {
			date = r.Date.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", date, r.Content, r.Language, r.Source)
	}
	return tw.Flush()
}
