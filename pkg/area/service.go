package area

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/journal"
	"github.com/0xmhha/iceland/pkg/launcher"
	"github.com/0xmhha/iceland/pkg/logger"
	"github.com/0xmhha/iceland/pkg/parser"
	"github.com/0xmhha/iceland/pkg/session"
)

// Service implements the area operations.
type Service struct {
	config Config
	logger logger.Logger
}

// New creates a new area service.
//
// Returns error if a required dependency is missing.
func New(cfg Config, log logger.Logger) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if cfg.Pointer == nil {
		return nil, fmt.Errorf("pointer is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg.Scaffolder == nil {
		return nil, fmt.Errorf("scaffolder is required")
	}

	return &Service{
		config: cfg,
		logger: log,
	}, nil
}

// Init creates the default config if none exists, scaffolds every
// configured area and points at the first area when the pointer is unset
// or names an area that is no longer configured. Running it again is safe.
func (s *Service) Init() (*InitResult, error) {
	exists, err := s.config.Store.Exists()
	if err != nil {
		return nil, err
	}

	cfg, err := s.config.Store.Load()
	if err != nil {
		return nil, err
	}

	res := &InitResult{Areas: cfg.Areas}

	if !exists {
		if err := s.config.Store.Save(cfg); err != nil {
			return nil, err
		}
		res.ConfigCreated = true
	}

	for _, name := range cfg.Areas {
		if err := s.config.Scaffolder.Create(name); err != nil {
			return nil, err
		}
	}

	current, ok, err := s.config.Pointer.Get()
	if err != nil {
		return nil, err
	}

	stale := ok && !cfg.HasArea(current)
	if stale {
		// Record the running session under the area it was started in
		// before the pointer moves away from it.
		res.Closed = s.closeSession(&res.Warnings, "stale area's")
	}

	switch first, hasFirst := cfg.FirstArea(); {
	case ok && !stale:
		res.Current = current
	case hasFirst:
		if err := s.config.Pointer.Set(first); err != nil {
			return nil, err
		}
		res.Current = first
	case ok:
		if err := s.config.Pointer.Clear(); err != nil {
			return nil, err
		}
	}

	s.logger.Info("initialized", "areas", len(cfg.Areas), "current", res.Current,
		"config_created", res.ConfigCreated)
	return res, nil
}

// SwitchTo makes name the current area.
//
// Steps, in order:
//  1. name must be configured and have a backing directory (ErrAreaNotFound)
//  2. a running session is closed and recorded against the old area; a
//     failure here is a warning and the old timer is discarded
//  3. a new session starts
//  4. the pointer moves to name
//  5. links are read and the browser is launched; failures are warnings
func (s *Service) SwitchTo(name string) (*SwitchResult, error) {
	cfg, err := s.config.Store.Load()
	if err != nil {
		return nil, err
	}

	if err := s.requireArea(cfg, name); err != nil {
		return nil, err
	}

	from, _, err := s.config.Pointer.Get()
	if err != nil {
		return nil, err
	}

	op := journal.Op{Kind: journal.KindSwitch, From: from, To: name}
	if err := s.begin(op); err != nil {
		return nil, err
	}

	res := &SwitchResult{From: from, To: name}
	if err := s.runSwitch(&op, res); err != nil {
		return nil, err
	}

	s.afterSwitch(s.effective(cfg), res)

	s.logger.Info("switched area", "from", from, "to", name, "launched", res.Launched)
	return res, nil
}

// SelectArea asks sel to choose one of the configured areas.
func (s *Service) SelectArea(sel ItemSelector) (string, error) {
	cfg, err := s.config.Store.Load()
	if err != nil {
		return "", err
	}
	if len(cfg.Areas) == 0 {
		return "", fmt.Errorf("%w: no areas configured", ErrAreaNotFound)
	}

	idx, err := sel.Select("Select an area", cfg.Areas)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(cfg.Areas) {
		return "", fmt.Errorf("selection %d out of range", idx)
	}
	return cfg.Areas[idx], nil
}

// AddArea scaffolds name and appends it to the configured areas.
func (s *Service) AddArea(name string) error {
	if err := config.ValidateAreaName(name); err != nil {
		return err
	}

	cfg, err := s.config.Store.Load()
	if err != nil {
		return err
	}

	if cfg.HasArea(name) {
		return fmt.Errorf("%w: %q", ErrAreaAlreadyExists, name)
	}

	if err := s.config.Scaffolder.Create(name); err != nil {
		return err
	}

	cfg.Areas = append(cfg.Areas, name)
	if err := s.config.Store.Save(cfg); err != nil {
		return err
	}

	s.logger.Info("area added", "area", name)
	return nil
}

// RemoveArea deletes name and its whole directory tree after an explicit
// confirmation. Declining returns ErrAborted and changes nothing.
//
// If name is current, its running session is recorded first and the
// pointer moves to the new first area, or is cleared when none remain.
// Ledger records of the area are kept.
func (s *Service) RemoveArea(name string) (*RemoveResult, error) {
	cfg, err := s.config.Store.Load()
	if err != nil {
		return nil, err
	}

	if !cfg.HasArea(name) {
		return nil, fmt.Errorf("%w: %q", ErrAreaNotFound, name)
	}

	if s.config.Confirm == nil {
		return nil, ErrNoConfirmation
	}

	msg := fmt.Sprintf("WARNING: This will delete all data for area '%s' (notes, flashcards, etc.).", name)
	ok, err := s.config.Confirm.Confirm(msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}

	op := journal.Op{Kind: journal.KindRemove, To: name}
	if err := s.begin(op); err != nil {
		return nil, err
	}

	res := &RemoveResult{Removed: name}
	if err := s.runRemove(cfg, &op, res); err != nil {
		return nil, err
	}

	s.logger.Info("area removed", "area", name, "current", res.Current)
	return res, nil
}

// StartSession starts a session in the current area.
func (s *Service) StartSession() (string, time.Time, error) {
	current, ok, err := s.config.Pointer.Get()
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		return "", time.Time{}, session.ErrNoCurrentArea
	}

	start, err := s.config.Sessions.Start(current)
	if err != nil {
		return "", time.Time{}, err
	}
	return current, start, nil
}

// StopSession stops and records the running session.
func (s *Service) StopSession() (parser.SessionRecord, error) {
	return s.config.Sessions.Stop()
}

// List returns the configured areas with their state.
func (s *Service) List() (*Listing, error) {
	cfg, err := s.config.Store.Load()
	if err != nil {
		return nil, err
	}

	current, _, err := s.config.Pointer.Get()
	if err != nil {
		return nil, err
	}

	res := &Listing{Current: current, Areas: make([]Entry, 0, len(cfg.Areas))}
	for _, name := range cfg.Areas {
		exists, err := s.config.Scaffolder.Exists(name)
		if err != nil {
			return nil, err
		}
		res.Areas = append(res.Areas, Entry{
			Name:    name,
			Current: name == current,
			Missing: !exists,
		})
	}

	if s.config.Discoverer != nil {
		dirs, err := s.config.Discoverer.Discover()
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			if !cfg.HasArea(d) {
				res.Untracked = append(res.Untracked, d)
			}
		}
	}

	return res, nil
}

// Status reports the current area and the running session. An unreadable
// timer is reported in the result rather than as an error.
func (s *Service) Status() (*Status, error) {
	cfg, err := s.config.Store.Load()
	if err != nil {
		return nil, err
	}

	current, _, err := s.config.Pointer.Get()
	if err != nil {
		return nil, err
	}

	res := &Status{Current: current, Known: cfg.HasArea(current)}

	active, err := s.config.Sessions.Active()
	if err != nil {
		s.logger.Warn("session timer is unreadable", "error", err)
		res.TimerError = err.Error()
		return res, nil
	}
	res.Active = active

	return res, nil
}

// Recover completes an operation interrupted in a previous run. It
// returns nil when there was nothing to recover.
func (s *Service) Recover() (*Recovered, error) {
	if s.config.Journal == nil {
		return nil, nil
	}

	op, err := s.config.Journal.Pending()
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, nil
	}

	s.logger.Warn("completing interrupted operation",
		"kind", op.Kind, "from", op.From, "to", op.To, "step", op.Step)

	rec := &Recovered{Op: *op}

	var runErr error
	switch op.Kind {
	case journal.KindSwitch:
		res := &SwitchResult{From: op.From, To: op.To}
		runErr = s.runSwitch(op, res)
		rec.Warnings = res.Warnings

	case journal.KindRemove:
		cfg, err := s.config.Store.Load()
		if err != nil {
			return nil, err
		}
		res := &RemoveResult{Removed: op.To}
		runErr = s.runRemove(cfg, op, res)
		rec.Warnings = res.Warnings

	default:
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("discarded unknown operation %q", op.Kind))
		rec.Discarded = true
		if err := s.complete(); err != nil {
			return nil, err
		}
	}

	if runErr != nil {
		// Retrying on every command would lock the user out of the
		// commands that can repair the state.
		s.logger.Error("interrupted operation failed again, discarding it",
			"kind", op.Kind, "to", op.To, "error", runErr)
		if err := s.complete(); err != nil {
			return nil, err
		}
		rec.Discarded = true
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("could not complete interrupted %s of %s, discarded it: %v", op.Kind, op.To, runErr))
	}

	return rec, nil
}

// runSwitch performs the switch steps op has not completed yet.
func (s *Service) runSwitch(op *journal.Op, res *SwitchResult) error {
	if !op.Done(journal.StepSessionClosed) {
		res.Closed = s.closeSession(&res.Warnings, "previous")
		if err := s.advance(journal.StepSessionClosed); err != nil {
			return err
		}
	}

	if !op.Done(journal.StepTimerStarted) {
		start, err := s.config.Sessions.Start(op.To)
		if errors.Is(err, session.ErrSessionAlreadyActive) {
			// Started before an interruption.
			active, activeErr := s.config.Sessions.Active()
			if activeErr != nil {
				return activeErr
			}
			start, err = active.Start, nil
		}
		if err != nil {
			return err
		}
		res.Started = start

		if err := s.advance(journal.StepTimerStarted); err != nil {
			return err
		}
	}

	if !op.Done(journal.StepPointerSet) {
		if err := s.config.Pointer.Set(op.To); err != nil {
			return err
		}
		if err := s.advance(journal.StepPointerSet); err != nil {
			return err
		}
	}

	return s.complete()
}

// runRemove performs the remove steps op has not completed yet.
func (s *Service) runRemove(cfg *config.Config, op *journal.Op, res *RemoveResult) error {
	current, hasCurrent, err := s.config.Pointer.Get()
	if err != nil {
		return err
	}
	wasCurrent := hasCurrent && current == op.To

	if !op.Done(journal.StepDirRemoved) {
		if wasCurrent {
			res.Closed = s.closeSession(&res.Warnings, "removed area's")
		}
		if err := s.config.Scaffolder.Remove(op.To); err != nil {
			return err
		}
		if err := s.advance(journal.StepDirRemoved); err != nil {
			return err
		}
	}

	if !op.Done(journal.StepConfigSaved) {
		if cfg.HasArea(op.To) {
			next := cfg.Clone()
			next.Areas = slices.DeleteFunc(next.Areas, func(a string) bool { return a == op.To })
			if err := s.config.Store.Save(next); err != nil {
				return err
			}
			cfg = next
		}
		if err := s.advance(journal.StepConfigSaved); err != nil {
			return err
		}
	}

	res.Current = current
	if !op.Done(journal.StepPointerReassigned) {
		if wasCurrent {
			if first, ok := cfg.FirstArea(); ok {
				if err := s.config.Pointer.Set(first); err != nil {
					return err
				}
				res.Current = first
			} else {
				if err := s.config.Pointer.Clear(); err != nil {
					return err
				}
				res.Current = ""
			}
			res.PointerChanged = true
		}
		if err := s.advance(journal.StepPointerReassigned); err != nil {
			return err
		}
	}

	return s.complete()
}

// closeSession stops and records the running session. Any failure other
// than there being no session is a warning, and the unrecordable timer is
// discarded so a new session can start.
func (s *Service) closeSession(warnings *[]string, which string) *parser.SessionRecord {
	rec, err := s.config.Sessions.Stop()
	switch {
	case err == nil:
		return &rec
	case errors.Is(err, session.ErrNoActiveSession):
		return nil
	}

	s.warn(warnings, fmt.Sprintf("failed to stop %s session, its time was not recorded", which), err)
	if err := s.config.Sessions.Discard(); err != nil {
		s.warn(warnings, "failed to discard session timer", err)
	}
	return nil
}

// afterSwitch shows links and launches the browser. Failures are warnings.
func (s *Service) afterSwitch(cfg *config.Config, res *SwitchResult) {
	if s.config.Links != nil {
		text, ok, err := s.config.Links.ReadLinks(res.To)
		if err != nil {
			s.warn(&res.Warnings, "could not read links", err)
		} else if ok {
			res.Links, res.HasLinks = text, true
		}
	}

	if s.config.Launcher != nil {
		err := s.config.Launcher.Launch(cfg.BrowserCommand, res.To)
		switch {
		case err == nil:
			res.Launched = true
		case errors.Is(err, launcher.ErrNoCommand):
		default:
			s.warn(&res.Warnings, "could not launch browser", err)
		}
	}
}

func (s *Service) requireArea(cfg *config.Config, name string) error {
	if !cfg.HasArea(name) {
		return fmt.Errorf("%w: %q does not exist, use add-area first", ErrAreaNotFound, name)
	}

	exists, err := s.config.Scaffolder.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q has no directory, run init to recreate it", ErrAreaNotFound, name)
	}
	return nil
}

func (s *Service) effective(cfg *config.Config) *config.Config {
	if s.config.Overrides == nil {
		return cfg
	}
	return s.config.Overrides(cfg)
}

func (s *Service) warn(warnings *[]string, msg string, err error) {
	s.logger.Warn(msg, "error", err)
	*warnings = append(*warnings, fmt.Sprintf("%s: %v", msg, err))
}

func (s *Service) begin(op journal.Op) error {
	if s.config.Journal == nil {
		return nil
	}
	if err := s.config.Journal.Begin(op); err != nil {
		return fmt.Errorf("failed to record %s: %w", op.Kind, err)
	}
	return nil
}

func (s *Service) advance(step journal.Step) error {
	if s.config.Journal == nil {
		return nil
	}
	return s.config.Journal.Advance(step)
}

func (s *Service) complete() error {
	if s.config.Journal == nil {
		return nil
	}
	return s.config.Journal.Complete()
}
