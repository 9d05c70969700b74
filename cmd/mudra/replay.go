package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/testdata"
)

func newReplayCmd(opts *rootOptions) *cobra.Command {
	var (
		builtin      string
		withProfiles bool
	)

	cmd := &cobra.Command{
		Use:   "replay [script.json | -]",
		Short: "Replay a pointer event script and print the gesture events as JSON lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := loadScript(cmd.InOrStdin(), args, builtin)
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), cmd.OutOrStdout(), opts.cfg, events, withProfiles)
		},
	}

	cmd.Flags().StringVar(&builtin, "builtin", "", "replay an embedded script instead of a file")
	cmd.Flags().BoolVar(&withProfiles, "profiles", false, "also recognize the enabled stored profiles")
	return cmd
}

func loadScript(stdin io.Reader, args []string, builtin string) ([]pointer.Event, error) {
	switch {
	case builtin != "" && len(args) > 0:
		return nil, errors.New("give either a script file or --builtin, not both")
	case builtin != "":
		events, err := testdata.LoadScript(builtin)
		if err != nil {
			names, _ := testdata.ScriptNames()
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}
		return events, nil
	case len(args) == 0:
		return nil, errors.New("a script file, - or --builtin is required")
	case args[0] == "-":
		return testdata.DecodeScript(stdin)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return testdata.DecodeScript(f)
}

// runReplay feeds events through a pipeline in order and writes every
// gesture event to out.
func runReplay(ctx context.Context, out io.Writer, cfg *config.Config, events []pointer.Event, withProfiles bool) error {
	logger := observability.GetLogger()

	var st *store.Store
	if withProfiles {
		var err error
		st, err = store.New(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()
	}

	a := app.New(app.ConfigFrom(cfg, st, logger))
	if err := a.LoadProfiles(); err != nil {
		return err
	}

	s, err := a.NewSurface("replay")
	if err != nil {
		return err
	}

	var (
		enc      = json.NewEncoder(out)
		written  int
		writeErr error
	)
	s.OnGesture(func(e gesture.Event) {
		if writeErr != nil {
			return
		}
		if writeErr = enc.Encode(e); writeErr == nil {
			written++
		}
	})

	p := a.NewPipeline(s)
	p.Start(ctx)
	for _, e := range events {
		if err := p.Submit(ctx, e); err != nil {
			p.Stop()
			return fmt.Errorf("replay interrupted: %w", err)
		}
	}
	p.Stop()

	if writeErr != nil {
		return fmt.Errorf("failed to write gesture event: %w", writeErr)
	}
	logger.Info("replay finished",
		zap.Int("pointer_events", len(events)),
		zap.Int("gesture_events", written))
	return nil
}
