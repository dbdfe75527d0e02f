package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the schedctl command tree
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "schedctl",
		Short:         "schedctl: schedule conference sessions into rooms from CSV files",
		Long:          "schedctl reads session, room, speaker, day and time CSV files, runs the greedy room scheduler across every day and slot, and writes the resulting schedule as CSV.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	viper.SetEnvPrefix("SCHEDCTL")
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newScheduleCmd(),
	)

	return rootCmd
}
