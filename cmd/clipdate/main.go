package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"clipdate/internal/app"
	"clipdate/internal/config"
	"clipdate/internal/domain"
	appErrors "clipdate/internal/errors"
	"clipdate/internal/infra/exiftool"
	"clipdate/internal/infra/fs"
	"clipdate/internal/infra/media"
	"clipdate/internal/logging"
	"clipdate/internal/pattern"
	"clipdate/internal/presentation"
	"clipdate/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "clipdate [dir]",
		Short: "Restore recording dates from camera filenames",
		Long: `clipdate reads the recording date encoded in video filenames such as
VID_20230815_143022_00_001.mp4 and writes it into the file's embedded
metadata (via ExifTool) and its filesystem timestamps.

Files whose names carry no date are skipped and reported.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.Dir = args[0]
			}
			flags.Changed = cmd.Flags().Changed

			cfg, err := config.Resolve(flags, os.Getenv)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.DryRun, "dry-run", "n", false, "Report what would change without writing")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose output")
	f.BoolVarP(&flags.Recursive, "recursive", "r", false, "Descend into subdirectories")
	f.BoolVar(&flags.Force, "force", false, "Rewrite files whose dates already match")
	f.BoolVar(&flags.TUI, "tui", false, "Interactive progress display")
	f.StringVar(&flags.Exiftool, "exiftool", "", "Path to the exiftool binary")
	f.StringVar(&flags.Timezone, "timezone", "", "Zone the filename times are in (default: local)")
	f.StringSliceVar(&flags.Extensions, "ext", nil, "File extensions to process (default: common video formats)")
	f.StringVar(&flags.ConfigFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/clipdate/config.yaml)")

	return cmd
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	loc, err := cfg.Location()
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "timezone", "", err)
	}

	useTUI := cfg.TUI && isTerminal(stdout)
	logger := logging.New(stderr, cfg.Verbose)
	if useTUI {
		logger = logging.Logger{}
	}

	filesystem := fs.OSFS{}
	info, err := filesystem.Stat(cfg.Dir)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.Dir, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidConfig, "stat", cfg.Dir, fmt.Errorf("%s is not a directory", cfg.Dir))
	}

	version, err := exiftool.NewChecker(exiftool.WithCheckerBinary(cfg.ExiftoolPath)).Check(ctx)
	if err != nil {
		return err
	}
	logger.Verbosef("using exiftool %s", version)

	writer := exiftool.NewWriter(exiftool.WithBinary(cfg.ExiftoolPath))
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Warnf("%v", err)
		}
	}()

	walker := &app.Walker{
		FS:     filesystem,
		Parser: pattern.Default(),
		Applicator: &app.Applicator{
			Metadata: writer,
			Times:    filesystem,
			Location: loc,
		},
		Inspector:  media.Inspector{Location: loc},
		Extensions: domain.NewExtensionSet(cfg.Extensions),
		Recursive:  cfg.Recursive,
		DryRun:     cfg.DryRun,
		Force:      cfg.Force,
		Logger:     logger,
	}

	if useTUI {
		return runTUI(ctx, cfg, walker)
	}

	walker.Observer = presentation.Printer{Writer: stdout, Verbose: cfg.Verbose}
	if _, err := walker.Run(ctx, cfg.Dir); err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "scan", cfg.Dir, err)
	}
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, walker *app.Walker) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel(tui.Config{Dir: cfg.Dir, DryRun: cfg.DryRun}))
	walker.Observer = tui.Observer{Program: program}

	result := make(chan error, 1)
	go func() {
		_, err := walker.Run(ctx, cfg.Dir)
		if err != nil {
			err = appErrors.Wrap(appErrors.IOFailure, "scan", cfg.Dir, err)
			program.Send(tui.ErrorMsg{Err: err})
		}
		result <- err
	}()

	_, runErr := program.Run()
	cancel()
	walkErr := <-result
	if runErr != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", runErr)
	}
	return walkErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
