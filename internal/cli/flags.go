package cli

import "github.com/spf13/pflag"

// addPeriodFlags registers the --period/--date/--agent trio shared by the
// kpi subcommands.
func addPeriodFlags(fs *pflag.FlagSet, period, date, agent *string) {
	fs.StringVar(period, "period", "daily", "Period (daily|weekly|monthly)")
	fs.StringVar(date, "date", "", "Reference date (YYYY-MM-DD, default today)")
	fs.StringVar(agent, "agent", "", "Agent email or ID (default: you)")
}
