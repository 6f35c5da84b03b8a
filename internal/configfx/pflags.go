package configfx

import (
	"os"

	"github.com/spf13/pflag"
)

func PFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("es-retention", pflag.ExitOnError)

	// Config file flag
	fs.StringP("config", "c", "", "Config file")

	// Target store
	fs.String("url", "", "Elasticsearch base URL (required)")
	fs.String("username", "", "Basic auth username")
	fs.String("password", "", "Basic auth password")

	// Retention rule
	fs.String("index-prefix", "zis-audit-", "Index name prefix")
	fs.String("older-than", "25", "Age threshold in months, e.g. '25' or '25m'")
	fs.String("date-pattern", "month", "Date pattern in index names: 'month' or 'week'")
	fs.Bool("no-dryrun", false, "Actually delete indices (default is dry-run)")

	// Operational extras
	fs.String("cron", "", "Cron spec; when set, sweeps run on a schedule instead of once")
	fs.String("audit-db", "", "Sqlite database file for the deletion audit log")
	fs.String("server.address", "", "Ops HTTP server listen address (scheduled mode only)")
	fs.String("log.level", "info", "Log level")
	fs.String("log.format", "text", "Log format: 'text' or 'json'")

	fs.BoolP("version", "V", false, "Print version and exit")

	// ExitOnError: parse failures and -h/--help never return here
	_ = fs.Parse(os.Args[1:])

	return fs
}
