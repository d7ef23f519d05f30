//go:build linux

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/0443n/herald/internal/fileutil"
	"github.com/0443n/herald/internal/xdgpath"
	"github.com/spf13/cobra"
)

const serviceName = "herald.service"

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the per-session herald receiver service.",
	Long:  `Manage the systemd user service that runs the herald receiver.`,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and start the receiver service for this user.",
	RunE: func(cmd *cobra.Command, args []string) error {
		executable, err := os.Executable()
		if err != nil {
			return err
		}

		service := fmt.Sprintf(daemonServiceTemplate, executable)
		if print, _ := cmd.Flags().GetBool("print"); print {
			fmt.Fprint(os.Stdout, service)
			fmt.Fprintln(os.Stderr, "WARNING: Service configuration printed but not installed.")
			return nil
		}

		servicePath, err := xdgpath.SystemdUserUnitPath(serviceName)
		if err != nil {
			return err
		}
		if err := fileutil.AtomicWriteFile(servicePath, []byte(service), 0o644); err != nil {
			return err
		}

		if err := exec.Command("systemctl", "--user", "enable", "--now", serviceName).Run(); err != nil {
			return err
		}

		fmt.Printf("Successfully installed herald receiver service. Configuration file created at: %s\n", servicePath)
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop and remove the receiver service for this user.",
	RunE: func(cmd *cobra.Command, args []string) error {
		servicePath, err := xdgpath.SystemdUserUnitPath(serviceName)
		if err != nil {
			return err
		}

		// The service may not be running; that is fine.
		_ = exec.Command("systemctl", "--user", "disable", "--now", serviceName).Run()

		if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
			return err
		}

		fmt.Println("Successfully uninstalled herald receiver service.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the receiver service is running.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := exec.Command("systemctl", "--user", "is-active", serviceName).Output()
		state := strings.TrimSpace(string(out))
		if state == "" {
			state = "unknown"
		}
		fmt.Printf("%s: %s\n", serviceName, state)
		if err != nil {
			return fmt.Errorf("service is not active")
		}
		return nil
	},
}

const daemonServiceTemplate = `[Unit]
Description=herald notification receiver

[Service]
ExecStart=%s receive
Restart=always
Environment="HERALD_LOG_LEVEL=info"

[Install]
WantedBy=default.target
`

func init() {
	installCmd.Flags().Bool("print", false, "Print the service configuration to stdout instead of installing it.")
	daemonCmd.AddCommand(installCmd)
	daemonCmd.AddCommand(uninstallCmd)
	daemonCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(daemonCmd)
}
