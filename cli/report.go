package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/output"
	"github.com/robinvdvleuten/finreport/report"
)

type ReportCmd struct {
	Type   string `arg:"" help:"Report type (${enum})." enum:"summary,detailed,budget" default:"summary"`
	Period string `help:"Reporting period (${enum})." enum:"week,month,quarter,year" default:"month" short:"p"`
	JSON   bool   `help:"Print the report as JSON."`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, fmt.Sprintf("report %s", cmd.Type))
	defer s.finish()

	typ, err := report.ParseType(cmd.Type)
	if err != nil {
		return err
	}

	result, err := s.loadDataset(globals)
	if err != nil {
		return err
	}

	generated, err := report.New().Generate(s.run, typ, analytics.ParsePeriod(cmd.Period), result.Dataset)
	if err != nil {
		return s.fail(err, "report generation failed")
	}

	if cmd.JSON {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(generated)
	}

	return renderReport(ctx.Stdout, generated, output.NewStyles(ctx.Stdout))
}
