package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/backprop-go/backprop/internal/envconfig"
)

const version = "v0.1.0"

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "backprop",
		Short:         "Train and check fully connected networks",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: envconfig.LogLevel(),
			})))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versionHandler(cmd, args)
				return
			}
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	trainCmd := newTrainCmd()
	gradcheckCmd := newGradcheckCmd()
	compareCmd := newCompareCmd()
	activationsCmd := newActivationsCmd()
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{trainCmd, gradcheckCmd, compareCmd, activationsCmd} {
		appendEnvDocs(cmd, []envconfig.EnvVar{
			envVars["BACKPROP_DEBUG"],
			envVars["BACKPROP_SEED"],
			envVars["BACKPROP_MNIST_DIR"],
		})
	}

	rootCmd.AddCommand(
		trainCmd,
		gradcheckCmd,
		compareCmd,
		activationsCmd,
		versionCmd,
	)
	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	cmd.Printf("backprop version %s\n", version)
}
