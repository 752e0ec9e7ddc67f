package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui"
	"github.com/custodia-labs/binderdash/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/binderdash/internal/core/domain"
)

var (
	tuiStructure string
	tuiScores    string
	tuiWatch     bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch the terminal dashboard.

The Structure panel shows the interface residues of a complex and lets you
move the distance threshold. The Designs panel lists the metric filters,
shows the designs that pass and exports their full stats as CSV.

Controls:
  ↑/k, ↓/j  - Navigate
  ←/h, →/l  - Move the selected slider
  space     - Toggle a filter
  o         - Open a file
  e         - Export filtered designs
  Esc       - Back
  q         - Quit

With --watch the dashboard reloads the opened files when they change on
disk.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiStructure, "structure", "s", "", "PDB file to open on start")
	tuiCmd.Flags().StringVarP(&tuiScores, "scores", "c", "", "design score CSV to open on start")
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload opened files when they change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if tuiStructure != "" {
		if _, err := sessionService.OpenStructure(ctx, tuiStructure); err != nil {
			return err
		}
	}
	if tuiScores != "" {
		if _, err := sessionService.OpenScores(ctx, tuiScores); err != nil {
			return err
		}
	}

	ports := &tui.Ports{
		Interface: interfaceService,
		Metrics:   metricsService,
		Settings:  settingsService,
		Session:   sessionService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if tuiWatch {
		go func() {
			err := sessionService.Watch(ctx, func(ev domain.SessionEvent) {
				p.Send(messages.FileReloaded{Event: ev})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				p.Send(messages.ErrorOccurred{Err: fmt.Errorf("watch: %w", err)})
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
