package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/vosh/internal/app"
	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/infrastructure/notify"
	"github.com/doeshing/vosh/internal/infrastructure/tts"
	"github.com/doeshing/vosh/internal/infrastructure/voice"
	"github.com/doeshing/vosh/internal/services"
	"github.com/doeshing/vosh/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running the bare binary starts
// the voice loop, same as the run subcommand.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	runCmd := newRunCommand(container)

	root := &cobra.Command{
		Use:   "vosh",
		Short: "VOSH - voice driven command relay",
		Long:  "VOSH listens for spoken requests, turns them into shell commands via a local model, and executes them only after double confirmation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd)
	root.AddCommand(newAskCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

// newRunCommand attaches the hardware adapters and starts the infinite
// listen loop. This is the only command that opens the microphone.
func newRunCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the voice command loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := container.Session

			gateway, err := voice.NewGateway(container.Config.Voice, container.Logger)
			if err != nil {
				return fmt.Errorf("voice input unavailable: %w", err)
			}
			defer gateway.Close()

			speaker := tts.NewEspeak(container.Config.Voice, container.Logger)
			if !speaker.Available() {
				container.Logger.Warn("espeak-ng not found, speech output disabled", nil)
			}

			session.Transcriber = gateway
			session.Speaker = speaker
			if container.Config.Voice.CueSound != "" {
				session.Cue = notify.NewCue(container.Config.Voice.CueSound, container.Logger)
			}
			session.Gate = &services.Gate{
				Transcriber: gateway,
				Speaker:     speaker,
				Prompter:    NewPrompter(nil, nil),
				Logger:      container.Logger,
			}

			return session.Run(cmd.Context())
		},
	}
}

// newAskCommand feeds a typed request through the same pipeline, without a
// microphone. Confirmation gates fall back to typed input.
func newAskCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [request]",
		Short: "Process a typed request through the command pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := container.Session
			session.Oracle = &spinnerOracle{
				inner:   session.Oracle,
				spinner: NewSpinner(cmd.ErrOrStderr()),
			}
			session.Gate = &services.Gate{
				Prompter: NewPrompter(nil, nil),
				Logger:   container.Logger,
			}
			// One-shot invocation, nothing to cool down for.
			session.Sleep = func(time.Duration) {}

			session.HandleUtterance(cmd.Context(), strings.Join(args, " "))
			return nil
		},
	}
}

// newHistoryCommand lists past command cycles.
func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent command cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}
			records, err := container.History.Records(limit, search)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			RenderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max cycles to show")
	cmd.Flags().StringVar(&search, "search", "", "Only show cycles matching this keyword")
	return cmd
}

// newConfigCommand inspects the configuration.
func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect VOSH configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, container)
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, container)
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	})
	return configCmd
}

func showConfiguration(cmd *cobra.Command, container *app.Container) error {
	data, err := yaml.Marshal(container.Config)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.ConfigLoader.Path(), data)
	return nil
}

// newDoctorCommand diagnoses the host environment.
func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the host has everything the voice loop needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := container.Doctor.Run(cmd.Context())
			RenderDoctorResults(cmd.OutOrStdout(), results)
			for _, res := range results {
				if !res.OK {
					return fmt.Errorf("one or more checks failed")
				}
			}
			return nil
		},
	}
}

// newVersionCommand shows build information.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show VOSH version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "VOSH version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
			}
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}
