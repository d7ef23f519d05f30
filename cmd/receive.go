package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/0443n/herald/internal/config"
	"github.com/0443n/herald/internal/queue"
	"github.com/0443n/herald/internal/receiver"
	"github.com/spf13/cobra"
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Watch this user's queue and display notifications.",
	Long: `Receive drains any notifications that arrived while this user was
logged out, then watches the queue directory and displays each new
notification as it arrives. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(slog.LevelInfo)

		current, err := user.Current()
		if err != nil {
			return fmt.Errorf("determine current user: %w", err)
		}

		cfgPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfg := config.Load(cfgPath)

		source, err := receiver.NewFSWatchSource()
		if err != nil {
			return fmt.Errorf("initialize file watch: %w", err)
		}
		defer source.Close()

		var presenter receiver.Presenter
		if dp, err := receiver.NewDBusPresenter(); err != nil {
			slog.Warn("Session bus unavailable, using fallback presenter", "err", err)
			presenter = receiver.BeeepPresenter{}
		} else {
			defer dp.Close()
			presenter = dp
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := receiver.New(queue.New(queue.BaseDir()), cfg, presenter, source, current.Username)
		return r.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(receiveCmd)
}
