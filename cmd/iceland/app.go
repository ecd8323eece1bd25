package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/discovery"
	"github.com/0xmhha/iceland/pkg/display"
	"github.com/0xmhha/iceland/pkg/journal"
	"github.com/0xmhha/iceland/pkg/launcher"
	"github.com/0xmhha/iceland/pkg/ledger"
	"github.com/0xmhha/iceland/pkg/logger"
	"github.com/0xmhha/iceland/pkg/prompt"
	"github.com/0xmhha/iceland/pkg/scaffold"
	"github.com/0xmhha/iceland/pkg/session"
	"github.com/0xmhha/iceland/pkg/state"
)

// app holds the streams and injectable capabilities shared by all
// commands. Tests replace the streams, the environment, the clock and the
// process starter.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// environ replaces the process environment when non-nil.
	environ map[string]string

	now      func() time.Time
	start    launcher.StartFunc
	confirm  area.ConfirmationPrompt
	selector area.ItemSelector

	// Global flags
	home    string
	verbose bool
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		now:    time.Now,
	}
}

// execute runs the command line args.
func (a *app) execute(args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.Execute()
}

// runtime is the resolved environment of one command.
type runtime struct {
	paths  config.Paths
	store  config.Store
	env    config.Env
	config *config.Config // effective: env overrides applied
	logger logger.Logger
}

func (a *app) parseEnv() (config.Env, error) {
	if a.environ != nil {
		return config.ParseEnvMap(a.environ)
	}
	return config.ParseEnv()
}

// resolvePaths returns the state paths. --home wins over ICELAND_HOME.
func (a *app) resolvePaths(env config.Env) config.Paths {
	base := config.DefaultBaseDir()
	if env.Home != "" {
		base = discovery.ExpandHome(env.Home)
	}
	if a.home != "" {
		base = discovery.ExpandHome(a.home)
	}
	return config.NewPaths(base)
}

// load resolves paths, reads the config and builds the logger.
func (a *app) load() (*runtime, error) {
	env, err := a.parseEnv()
	if err != nil {
		return nil, err
	}

	paths := a.resolvePaths(env)
	store := config.NewFileStore(paths.Config())

	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	effective := env.Apply(cfg)

	return &runtime{
		paths:  paths,
		store:  store,
		env:    env,
		config: effective,
		logger: a.newLogger(effective.Logging),
	}, nil
}

func (a *app) newLogger(cfg config.LoggingConfig) logger.Logger {
	logCfg := logger.Config{
		Level:  cfg.Level,
		Output: cfg.Output,
		Format: cfg.Format,
	}
	if a.verbose {
		logCfg.Level = "debug"
	}
	// Diagnostics meant for stderr follow the command's error stream.
	if out := strings.ToLower(cfg.Output); out == "" || out == "stderr" {
		logCfg.Writer = a.errOut
	}
	return logger.New(logCfg)
}

// workspace is an opened area service together with the resources it
// holds.
type workspace struct {
	*runtime

	svc        *area.Service
	scaffolder *scaffold.Scaffolder
	ledger     ledger.Ledger
	journal    journal.Journal
}

// open wires the area service. A locked workspace holds the state lock
// until Close and first completes any interrupted operation.
func (a *app) open(locked bool) (*workspace, error) {
	rt, err := a.load()
	if err != nil {
		return nil, err
	}
	log := rt.logger

	ws := &workspace{
		runtime:    rt,
		scaffolder: scaffold.New(rt.paths.Base, log),
		ledger:     ledger.New(ledger.Config{Path: rt.paths.Sessions()}, log),
	}

	pointer := state.NewFilePointer(rt.paths.CurrentArea())
	sessions, err := session.New(session.Config{
		Pointer: pointer,
		Timer:   state.NewFileTimer(rt.paths.SessionStart()),
		Ledger:  ws.ledger,
		Now:     a.now,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session timer: %w", err)
	}

	if locked {
		ws.journal, err = journal.New(journal.Config{
			Path: rt.paths.StateDB(),
			Now:  a.now,
		}, log)
		if err != nil {
			return nil, err
		}
	}

	confirm := a.confirm
	if confirm == nil {
		confirm = prompt.NewLineConfirmer(a.in, a.out)
	}

	cfg := area.Config{
		Store:      rt.store,
		Pointer:    pointer,
		Sessions:   sessions,
		Scaffolder: ws.scaffolder,
		Launcher:   launcher.New(a.start, log),
		Links:      ws.scaffolder,
		Confirm:    confirm,
		Discoverer: discovery.New(rt.paths.Base, log),
		Journal:    ws.journal,
		Overrides:  rt.env.Apply,
	}

	ws.svc, err = area.New(cfg, log)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("failed to initialize area service: %w", err)
	}

	if locked {
		if err := a.recover(ws); err != nil {
			ws.Close()
			return nil, err
		}
	}

	return ws, nil
}

// recover completes an operation interrupted by an earlier run.
func (a *app) recover(ws *workspace) error {
	rec, err := ws.svc.Recover()
	if err != nil {
		return fmt.Errorf("failed to complete interrupted operation: %w", err)
	}
	if rec == nil {
		return nil
	}

	switch {
	case rec.Discarded:
	case rec.Op.Kind == journal.KindSwitch:
		a.warn("completed interrupted switch to %s", rec.Op.To)
	case rec.Op.Kind == journal.KindRemove:
		a.warn("completed interrupted removal of %s", rec.Op.To)
	}
	for _, w := range rec.Warnings {
		a.warn("%s", w)
	}
	return nil
}

// Close releases the state lock.
func (ws *workspace) Close() {
	if ws.journal == nil {
		return
	}
	if err := ws.journal.Close(); err != nil {
		ws.logger.Error("failed to release state lock", "error", err)
	}
}

// formatter builds a display formatter for the given format flag. Styling
// is enabled only when writing to a terminal.
func (a *app) formatter(format string, cfg display.Config) (display.Formatter, error) {
	f, err := display.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	cfg.Format = f
	cfg.Styled = isTerminal(a.out)
	return display.New(cfg), nil
}

// itemSelector returns the injected selector or a terminal one.
func (a *app) itemSelector() area.ItemSelector {
	if a.selector != nil {
		return a.selector
	}
	return prompt.NewSelector(a.in, a.out)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintf(a.errOut, "Warning: "+format+"\n", args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && prompt.IsTerminal(f)
}
