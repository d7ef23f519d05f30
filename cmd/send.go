package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/0443n/herald/internal/identity"
	"github.com/0443n/herald/internal/notification"
	"github.com/0443n/herald/internal/queue"
	"github.com/0443n/herald/internal/recipient"
	"github.com/0443n/herald/internal/sender"
	"github.com/spf13/cobra"
)

var (
	sendUsers    []string
	sendGroups   []string
	sendAdmins   bool
	sendEveryone bool
	sendUrgency  string
	sendIcon     string
	sendTimeout  int
)

var sendCmd = &cobra.Command{
	Use:   "send TITLE [BODY]",
	Short: "Send a notification to users' queues (requires root).",
	Long: `Send writes one notification file into each recipient's queue
directory. Receivers running in the recipients' sessions pick the files
up immediately, or on their next start if the user is logged out.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(slog.LevelWarn)

		if os.Geteuid() != 0 {
			return errors.New("must be run as root")
		}

		urgency, err := notification.ParseUrgency(sendUrgency)
		if err != nil {
			return err
		}
		n := notification.New(args[0])
		n.Urgency = urgency
		n.Icon = sendIcon
		n.Timeout = sendTimeout
		if len(args) == 2 {
			n.Body = args[1]
		}

		store := queue.New(queue.BaseDir())
		result, err := recipient.Resolve(&identity.PasswdDirectory{}, store, recipient.Target{
			Users:    sendUsers,
			Groups:   sendGroups,
			Admins:   sendAdmins,
			Everyone: sendEveryone,
		})
		if err != nil {
			if len(result.Missing) > 0 {
				return fmt.Errorf("%w (unresolved: %s)", err, strings.Join(result.Missing, ", "))
			}
			return err
		}

		if len(result.Missing) > 0 {
			fmt.Fprintf(os.Stderr, "warning: could not resolve: %s\n", strings.Join(result.Missing, ", "))
		}

		s := &sender.Sender{Store: store}
		count := s.Send(n, result.Recipients)
		fmt.Printf("Sent to %d user(s)\n", count)
		if count == 0 {
			return errors.New("no notifications were delivered")
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringSliceVar(&sendUsers, "users", nil, "Send to specific users.")
	sendCmd.Flags().StringSliceVar(&sendGroups, "group", nil, "Send to all members of Unix groups.")
	sendCmd.Flags().BoolVar(&sendAdmins, "admins", false, "Send to members of the administrative groups.")
	sendCmd.Flags().BoolVar(&sendEveryone, "everyone", false, "Send to all human users.")
	sendCmd.MarkFlagsOneRequired("users", "group", "admins", "everyone")
	sendCmd.MarkFlagsMutuallyExclusive("users", "group", "admins", "everyone")

	sendCmd.Flags().StringVar(&sendUrgency, "urgency", string(notification.UrgencyNormal),
		"Urgency level: low, normal, or critical.")
	sendCmd.Flags().StringVar(&sendIcon, "icon", "", "FreeDesktop icon name.")
	sendCmd.Flags().IntVar(&sendTimeout, "timeout", notification.TimeoutServerDefault,
		"Display timeout in ms (-1 = server default, 0 = persistent).")

	rootCmd.AddCommand(sendCmd)
}
