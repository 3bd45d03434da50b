package cli

import "github.com/alecthomas/kong"

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config     kong.ConfigFlag `help:"Load flag defaults from a JSON config file." placeholder:"FILE"`
	Telemetry  bool            `help:"Show timing telemetry for operations."`
	Data       string          `help:"Dataset to report on: a JSON file, a CSV of transactions or a directory." env:"FINREPORT_DATA" default:"." type:"path" short:"d"`
	StateDir   string          `help:"Directory holding persisted state such as scheduled reports." env:"FINREPORT_STATE_DIR" default:".finreport" type:"path"`
	Store      string          `help:"State backend (${enum})." enum:"file,sqlite" default:"file" env:"FINREPORT_STORE"`
	Passphrase string          `help:"Encrypt file-backed state with this passphrase." env:"FINREPORT_PASSPHRASE"`
	LogLevel   string          `help:"Log level for the web server and state changes (${enum})." enum:"debug,info,warn,error" default:"info" env:"FINREPORT_LOG_LEVEL"`
}

type Commands struct {
	Globals

	Report   ReportCmd   `cmd:"" help:"Generate a financial report and print it."`
	Export   ExportCmd   `cmd:"" help:"Generate a report and export it as CSV, XLSX or PDF."`
	Schedule ScheduleCmd `cmd:"" help:"Manage scheduled report descriptors."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for checking datasets."`
	Web      WebCmd      `cmd:"" help:"Start the reporting web API."`
}
