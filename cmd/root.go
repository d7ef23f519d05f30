package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "Secure desktop notifications from root to user sessions.",
	Long: `herald delivers notifications from privileged senders (cron jobs,
monitoring scripts, the administrator) to the desktop sessions of
unprivileged users. The filesystem is the transport: root drops a file
into a per-user queue directory and each user's receiver watches its own
queue, so the operating system's permission model is the only access
control involved.`,
}

// Root returns the top-level command for execution by main.
func Root() *cobra.Command {
	return rootCmd
}

// setupLogging installs the tint slog handler. HERALD_LOG_LEVEL overrides
// the command's default level.
func setupLogging(level slog.Level) {
	if levelStr := os.Getenv("HERALD_LOG_LEVEL"); levelStr != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(levelStr)); err == nil {
			level = l
		}
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}
