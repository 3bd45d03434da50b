package cli

import (
	"fmt"
	"os"

	gcs "cloud.google.com/go/storage"
	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/export"
	"github.com/robinvdvleuten/finreport/report"
)

type ExportCmd struct {
	Type   string `arg:"" help:"Report type (${enum})." enum:"summary,detailed,budget" default:"summary"`
	Format string `help:"Export format (${enum})." enum:"csv,xlsx,pdf" default:"csv" short:"f"`
	Period string `help:"Reporting period (${enum})." enum:"week,month,quarter,year" default:"month" short:"p"`
	Output string `help:"Directory to write the export to." default:"." type:"path" short:"o"`
	Bucket string `help:"Upload to this Cloud Storage bucket instead of a directory." env:"FINREPORT_GCS_BUCKET"`
	Prefix string `help:"Object name prefix inside the bucket."`
	Force  bool   `help:"Overwrite an existing file without asking." short:"F"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, fmt.Sprintf("export %s %s", cmd.Type, cmd.Format))
	defer s.finish()

	typ, err := report.ParseType(cmd.Type)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	exporter, err := export.ForFormat(format)
	if err != nil {
		return err
	}
	period := analytics.ParsePeriod(cmd.Period)

	result, err := s.loadDataset(globals)
	if err != nil {
		return err
	}

	workspace := report.NewWorkspace(report.New())
	if _, err := workspace.Generate(s.run, typ, period, result.Dataset); err != nil {
		return s.fail(err, "report generation failed")
	}
	generated, err := workspace.Lookup(typ, period)
	if err != nil {
		return s.fail(err, "export failed")
	}

	var (
		sink     export.Sink
		location string
	)
	filename := export.Filename(generated, format)

	if cmd.Bucket != "" {
		client, err := gcs.NewClient(s.run)
		if err != nil {
			return fmt.Errorf("failed to create Cloud Storage client: %w", err)
		}
		defer client.Close()

		gcsSink := export.NewGCSSink(client, cmd.Bucket, cmd.Prefix)
		sink = gcsSink
		location = fmt.Sprintf("gs://%s/%s", cmd.Bucket, gcsSink.ObjectName(filename))
	} else {
		dirSink := export.NewDirSink(cmd.Output)
		path := dirSink.Path(filename)

		if _, err := os.Stat(path); err == nil && !cmd.Force {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q already exists. Overwrite it?", path))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !confirmed {
				printError(ctx.Stderr, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
				return NewCommandError(1)
			}
		}
		sink = dirSink
		location = path
	}

	if _, err := export.Write(s.run, sink, exporter, generated); err != nil {
		return s.fail(err, "export failed")
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Exported %s report to %s", typ, pathStyle.Render(location)))
	return nil
}
