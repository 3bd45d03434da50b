package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finreport/output"
	"github.com/robinvdvleuten/finreport/schedule"
)

// ScheduleCmd groups the schedule descriptor commands. Descriptors are only
// stored; nothing runs them.
type ScheduleCmd struct {
	Add     ScheduleAddCmd    `cmd:"" help:"Add a scheduled report."`
	List    ScheduleListCmd   `cmd:"" default:"withargs" help:"List scheduled reports."`
	Remove  ScheduleRemoveCmd `cmd:"" aliases:"rm" help:"Remove a scheduled report."`
	Enable  ScheduleToggleCmd `cmd:"" help:"Enable a scheduled report."`
	Disable ScheduleToggleCmd `cmd:"" help:"Disable a scheduled report."`
	Due     ScheduleDueCmd    `cmd:"" help:"List enabled scheduled reports whose next run has passed."`
}

type ScheduleAddCmd struct {
	Name      string   `help:"Descriptive name." short:"n"`
	Type      string   `help:"Report type (${enum})." enum:"summary,detailed,budget" default:"summary" short:"t"`
	Period    string   `help:"Reporting period (${enum})." enum:"week,month,quarter,year" default:"month" short:"p"`
	Frequency string   `help:"How often the report recurs (${enum})." enum:"daily,weekly,monthly,quarterly" default:"monthly"`
	NextRun   string   `help:"First run, as RFC 3339 or YYYY-MM-DDTHH:MM local time." required:""`
	Email     []string `help:"Recipient email address; repeat for several." short:"e"`
	Disabled  bool     `help:"Store the schedule disabled."`
}

func (cmd *ScheduleAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "schedule add")
	defer s.finish()

	store, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	enabled := !cmd.Disabled
	d, err := store.Add(s.run, schedule.Request{
		Name:            cmd.Name,
		ReportType:      cmd.Type,
		Period:          cmd.Period,
		Frequency:       cmd.Frequency,
		NextRun:         cmd.NextRun,
		EmailRecipients: cmd.Email,
		Enabled:         &enabled,
	})
	if err != nil {
		return s.fail(err, "schedule not saved")
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Scheduled %q (%s)", d.Name, d.ID))
	return nil
}

type ScheduleListCmd struct {
	JSON bool `help:"Print descriptors as JSON."`
}

func (cmd *ScheduleListCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "schedule list")
	defer s.finish()

	store, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := store.List(s.run)
	if err != nil {
		return s.fail(err, "failed to read schedules")
	}
	return writeDescriptors(ctx.Stdout, list, cmd.JSON, "No scheduled reports")
}

type ScheduleRemoveCmd struct {
	ID  string `arg:"" help:"Descriptor id."`
	Yes bool   `help:"Remove without asking." short:"y"`
}

func (cmd *ScheduleRemoveCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "schedule remove")
	defer s.finish()

	store, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	d, err := store.Get(s.run, cmd.ID)
	if err != nil {
		return s.fail(err, "schedule not removed")
	}

	if !cmd.Yes {
		confirmed, err := promptYesNo(ctx, fmt.Sprintf("Remove scheduled report %q?", d.Name))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			printError(ctx.Stderr, "not removed (use --yes to skip the confirmation)")
			return NewCommandError(1)
		}
	}

	if err := store.Remove(s.run, cmd.ID); err != nil {
		return s.fail(err, "schedule not removed")
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Removed %q", d.Name))
	return nil
}

// ScheduleToggleCmd backs both enable and disable; the command name decides.
type ScheduleToggleCmd struct {
	ID string `arg:"" help:"Descriptor id."`
}

func (cmd *ScheduleToggleCmd) Run(ctx *kong.Context, globals *Globals) error {
	enable := ctx.Selected().Name == "enable"

	s := newSession(ctx, globals, "schedule "+ctx.Selected().Name)
	defer s.finish()

	store, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	d, err := store.SetEnabled(s.run, cmd.ID, enable)
	if err != nil {
		return s.fail(err, "schedule not updated")
	}

	state := "Disabled"
	if d.Enabled {
		state = "Enabled"
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("%s %q", state, d.Name))
	return nil
}

type ScheduleDueCmd struct {
	At   string `help:"Instant to evaluate against, RFC 3339 or YYYY-MM-DDTHH:MM (default now)."`
	JSON bool   `help:"Print descriptors as JSON."`
}

func (cmd *ScheduleDueCmd) Run(ctx *kong.Context, globals *Globals) error {
	s := newSession(ctx, globals, "schedule due")
	defer s.finish()

	at := time.Now()
	if cmd.At != "" {
		parsed, err := schedule.ParseNextRun(cmd.At, time.Local)
		if err != nil {
			return err
		}
		at = parsed
	}

	store, closeFn, err := s.openSchedules(globals)
	if err != nil {
		return err
	}
	defer closeFn()

	due, err := store.Due(s.run, at)
	if err != nil {
		return s.fail(err, "failed to read schedules")
	}
	return writeDescriptors(ctx.Stdout, due, cmd.JSON, "Nothing is due")
}

func writeDescriptors(w io.Writer, list []schedule.Descriptor, asJSON bool, empty string) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		printInfof(w, "%s", empty)
		return nil
	}

	styles := output.NewStyles(w)
	t := output.NewTable("ID", "Name", "Report", "Frequency", "Next Run", "Enabled", "Recipients")
	t.Style = func(col int, cell string) string {
		switch col {
		case 0:
			return styles.Dim(cell)
		case 5:
			if strings.TrimSpace(cell) == "no" {
				return styles.Warning(cell)
			}
		}
		return cell
	}
	for _, d := range list {
		enabled := "yes"
		if !d.Enabled {
			enabled = "no"
		}
		t.Append(
			d.ID,
			d.Name,
			fmt.Sprintf("%s/%s", d.ReportType, d.Period),
			string(d.Frequency),
			d.NextRun.Format(time.RFC3339),
			enabled,
			strings.Join(d.EmailRecipients, ", "),
		)
	}
	return t.Render(w)
}
