package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusgate/exitpass/internal/bootstrap"
)

var (
	configPath string

	deps *bootstrap.Dependencies
)

var rootCmd = &cobra.Command{
	Use:   "exitpass",
	Short: "Campus exit-pass management",
	Long: `exitpass manages campus exit passes: students register and request
passes with leaving/returning times and a purpose, administrators approve or
reject them, and an approved pass carries a scannable QR code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		deps, err = bootstrap.Setup(cmd.Context(), configPath)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if deps != nil {
			return deps.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "exitpass.yaml", "path to the configuration file")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(adminLoginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(listCmd)
}

// printJSON renders a record for the terminal.
func printJSON(cmd *cobra.Command, v interface{}) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(blob))
	return nil
}

// timeLayouts accepted by the submit command, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (expected e.g. 2006-01-02 15:04)", value)
}
