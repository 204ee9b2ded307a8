package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprout-ui/sprout/pkg/compose"
	"github.com/sprout-ui/sprout/pkg/config"
	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/host"
	"github.com/sprout-ui/sprout/pkg/signal"
	sproutest "github.com/sprout-ui/sprout/pkg/testing"
	"github.com/sprout-ui/sprout/pkg/views"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	ConfigDir string
	Mode      string
	Toggles   int
}

// DemoStep is the child list of the root view after one toggle.
type DemoStep struct {
	Step     int      `json:"step"`
	Flag     bool     `json:"flag"`
	Children []string `json:"children"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the toggle demo against a recording platform",
		Long: `Build a root view holding a static text followed by two regions that
follow the same boolean signal, then flip the signal and print the root's
children after every flip.

The executor is either run by sprout itself (embedded) or stepped the way
a native host would step it (host).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigDir, "config", "", "directory containing sprout.yaml")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "executor mode (embedded|host), overrides the config")
	cmd.Flags().IntVar(&opts.Toggles, "toggles", 3, "number of times to flip the signal")

	return cmd
}

// driver owns the executor for one demo run.
type driver interface {
	Spawner() *executor.Spawner
	Settle(ctx context.Context) error
	Close()
}

type embeddedDriver struct {
	exec *executor.Executor
}

func (d *embeddedDriver) Spawner() *executor.Spawner { return d.exec.Spawner() }

func (d *embeddedDriver) Settle(ctx context.Context) error {
	d.exec.RunUntilStalled()
	return ctx.Err()
}

func (d *embeddedDriver) Close() { d.exec.Close() }

// hostDriver steps the executor through the host handle API.
type hostDriver struct {
	h  host.Handle
	sp *executor.Spawner
}

func newHostDriver(opts ...executor.Option) (*hostDriver, error) {
	h := host.Setup(opts...)
	sp, err := host.Spawner(h)
	if err != nil {
		return nil, err
	}
	return &hostDriver{h: h, sp: sp}, nil
}

func (d *hostDriver) Spawner() *executor.Spawner { return d.sp }

func (d *hostDriver) Settle(ctx context.Context) error {
	for d.sp.Executor().Pending() > 0 {
		if err := host.ReceiveNextReadyTaskContext(ctx, d.h); err != nil {
			return err
		}
		host.PollStagedTask(d.h)
	}
	return nil
}

func (d *hostDriver) Close() {
	_ = host.Release(d.h)
}

func newDriver(mode string, opts ...executor.Option) (driver, error) {
	switch mode {
	case config.ModeEmbedded:
		return &embeddedDriver{exec: executor.New(opts...)}, nil
	case config.ModeHost:
		return newHostDriver(opts...)
	default:
		return nil, fmt.Errorf("unknown mode %q (use %s or %s)", mode, config.ModeEmbedded, config.ModeHost)
	}
}

func runDemo(cmd *cobra.Command, rootOpts *RootOptions, opts *DemoOptions) error {
	if opts.Toggles < 0 {
		return fmt.Errorf("--toggles must not be negative (got %d)", opts.Toggles)
	}

	res, err := resolveConfig(opts.ConfigDir)
	if err != nil {
		return err
	}
	mode := res.Executor.Mode
	if opts.Mode != "" {
		mode = strings.ToLower(opts.Mode)
	}

	logger := res.Log.Logger(cmd.ErrOrStderr())
	if rootOpts.Verbose {
		logger = config.NewLogger("debug", res.Log.Format, cmd.ErrOrStderr())
	}

	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: res.Log.Verbose || rootOpts.Verbose})
	defer errors.SetHandler(nil)

	drv, err := newDriver(mode,
		executor.WithQueueCapacity(res.Executor.QueueCapacity),
		executor.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer drv.Close()

	logger.Info("demo starting", "app", res.App.Name, "mode", mode, "toggles", opts.Toggles)

	f := sproutest.NewFactory()
	root := f.MustView("root")
	flag := signal.NewMutable(true)

	c := compose.New(root, drv.Spawner(),
		compose.WithStrictParent(res.Composer.StrictParent),
		compose.WithLogger(logger),
	)
	if err := buildDemo(c, f, flag); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	steps := make([]DemoStep, 0, opts.Toggles+1)
	for i := 0; i <= opts.Toggles; i++ {
		if i > 0 {
			flag.Set(!flag.Get())
		}
		if err := drv.Settle(ctx); err != nil {
			return fmt.Errorf("demo step %d: %w", i, err)
		}
		steps = append(steps, DemoStep{Step: i, Flag: flag.Get(), Children: sproutest.Names(root)})
		logger.Debug("demo step", "step", i, "views", f.Created(), "calls", len(f.Calls()))
	}

	return writeSteps(cmd.OutOrStdout(), rootOpts.Format, steps)
}

// buildDemo composes a static text followed by two regions driven by flag.
func buildDemo(c *compose.Composer, f views.Factory, flag *signal.Mutable[bool]) error {
	if err := views.NewText(f, "Hello").Compose(c); err != nil {
		return err
	}

	_, err := compose.IfSignal(c, flag.Signal(), func(rc *compose.Composer, v bool) error {
		if v {
			return views.Compose(rc, views.NewText(f, "Breaking"), views.NewText(f, "True"))
		}
		return views.NewText(f, "NotTrue").Compose(rc)
	})
	if err != nil {
		return err
	}

	_, err = compose.IfSignal(c, flag.Signal(), func(rc *compose.Composer, v bool) error {
		if v {
			return views.NewButton(f, func() { flag.Set(!flag.Get()) }).Label("Button").Compose(rc)
		}
		return views.NewText(f, "OnlyFalse").Compose(rc)
	})
	return err
}

func writeSteps(w io.Writer, format string, steps []DemoStep) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}
	for _, s := range steps {
		if _, err := fmt.Fprintf(w, "%d %-5t [%s]\n", s.Step, s.Flag, strings.Join(s.Children, " ")); err != nil {
			return err
		}
	}
	return nil
}

