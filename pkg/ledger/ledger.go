package ledger

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xmhha/iceland/pkg/logger"
	"github.com/0xmhha/iceland/pkg/parser"
)

// ledger implements the Ledger interface on a CSV file.
type ledger struct {
	config Config
	logger logger.Logger
}

// New creates a file-backed ledger. The file is created on first Append.
func New(cfg Config, log logger.Logger) Ledger {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = 100 * 1024 * 1024 // 100MB
	}

	return &ledger{
		config: cfg,
		logger: log,
	}
}

// Append implements Ledger.Append.
func (l *ledger) Append(rec parser.SessionRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := os.MkdirAll(filepath.Dir(l.config.Path), 0700); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	// #nosec G304: path comes from the application's base directory
	f, err := os.OpenFile(l.config.Path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0600) // nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat ledger: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch {
	case info.Size() == 0:
		if err := w.Write(parser.Header); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
	case !endsWithNewline(f, info.Size()):
		// A previous write was cut short; start the new row on its own line
		// so only the damaged row is lost.
		l.logger.Warn("ledger does not end with a newline, previous row may be truncated",
			"path", l.config.Path)
		buf.WriteByte('\n')
	}

	if err := w.Write(parser.EncodeRecord(rec)); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync ledger: %w", err)
	}

	l.logger.Debug("session appended",
		"area", rec.Area,
		"seconds", rec.Seconds())

	return nil
}

// Load implements Ledger.Load.
func (l *ledger) Load(mode Mode) (*Result, error) {
	return l.ReadFrom(0, mode)
}

// ReadFrom implements Ledger.ReadFrom.
func (l *ledger) ReadFrom(offset int64, mode Mode) (*Result, error) {
	if offset < 0 {
		return nil, ErrInvalidOffset
	}

	// #nosec G304: path comes from the application's base directory
	f, err := os.Open(l.config.Path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{Restarted: offset > 0}, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat ledger: %w", err)
	}

	size := info.Size()
	if size > l.config.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	restarted := false
	if offset > size {
		l.logger.Warn("ledger was truncated, resetting offset",
			"path", l.config.Path,
			"old_offset", offset,
			"file_size", size)
		offset = 0
		restarted = true
	}

	if offset == size {
		return &Result{Offset: offset, Restarted: restarted}, nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek ledger: %w", err)
	}

	lineNum := 0
	if offset > 0 {
		lineNum = -1 // line numbers are unknown when tailing
	}

	res, err := l.scan(bufio.NewReader(f), offset, lineNum, mode)
	if err != nil {
		return nil, err
	}
	res.Restarted = restarted
	return res, nil
}

// scan reads complete lines from r. lineNum is the number of lines before
// r's start, or -1 when unknown.
func (l *ledger) scan(r *bufio.Reader, offset int64, lineNum int, mode Mode) (*Result, error) {
	res := &Result{
		Records: make([]parser.SessionRecord, 0, 64),
		Offset:  offset,
	}
	atStart := offset == 0

	for {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		if errors.Is(err, io.EOF) {
			// A partial trailing line. Tolerant reads of the whole file
			// still report it; tails wait for the rest.
			if line != "" && atStart {
				l.handleLine(res, line, nextLine(&lineNum), mode)
				if mode == Strict && len(res.Skipped) > 0 {
					return nil, res.Skipped[0]
				}
			}
			return res, nil
		}

		res.Offset += int64(len(line))
		n := nextLine(&lineNum)

		if n == 1 {
			if fields, splitErr := parser.SplitLine(line); splitErr == nil && parser.IsHeader(fields) {
				continue
			}
		}

		l.handleLine(res, line, n, mode)
		if mode == Strict && len(res.Skipped) > 0 {
			return nil, res.Skipped[0]
		}
	}
}

func (l *ledger) handleLine(res *Result, line string, lineNum int, mode Mode) {
	if strings.TrimSpace(line) == "" {
		return
	}

	rec, err := parser.ParseLine(line, lineNum)
	if err != nil {
		var perr *parser.ParseError
		if !errors.As(err, &perr) {
			perr = &parser.ParseError{Line: lineNum, Data: line, Err: err}
		}
		res.Skipped = append(res.Skipped, perr)
		if mode == Tolerant {
			l.logger.Warn("skipping malformed ledger row",
				"path", l.config.Path,
				"line", lineNum,
				"error", perr.Err)
		}
		return
	}

	res.Records = append(res.Records, rec)
}

func nextLine(n *int) int {
	if *n < 0 {
		return 0
	}
	*n++
	return *n
}

func endsWithNewline(f *os.File, size int64) bool {
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return true
	}
	return last[0] == '\n'
}
