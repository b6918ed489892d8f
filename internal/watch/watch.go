// Package watch follows a JSON-lines feed of calendar events.
//
// Each line of the feed is one JSON-encoded calendar event. The follower
// decodes appended lines as they arrive and hands them to a callback, so a
// live export stream can be sanitized continuously.
package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"calshield/internal/event"
)

// Options configures the follower behavior.
type Options struct {
	FilePath     string                          // Path to the JSONL feed
	Replay       bool                            // Decode lines already in the file before following
	Follow       bool                            // Keep following the file for new lines
	FollowRotate bool                            // Keep following through file rotations
	Handler      func(event.CalendarEvent) error // Called for each decoded event
}

// Follower tails a JSONL event feed.
type Follower struct {
	opts    Options
	logger  *slog.Logger
	file    *os.File
	offset  int64
	watcher *fsnotify.Watcher
}

// New creates a Follower with the given options.
func New(opts Options, logger *slog.Logger) *Follower {
	if logger == nil {
		logger = slog.Default()
	}
	return &Follower{opts: opts, logger: logger}
}

// Run starts the follower. It blocks until the context is cancelled, the
// feed ends (when not following), or an error occurs.
func (f *Follower) Run(ctx context.Context) error {
	if f.opts.Handler == nil {
		return fmt.Errorf("watch: no handler configured")
	}

	if err := f.openFile(); err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.close()

	if f.opts.Replay {
		if err := f.readNewLines(); err != nil {
			return fmt.Errorf("failed to replay feed: %w", err)
		}
		// A one-shot replay treats an unterminated final line as complete.
		if !f.opts.Follow {
			if err := f.drainTail(); err != nil {
				return fmt.Errorf("failed to replay feed: %w", err)
			}
		}
	} else {
		// Start at the end: only lines appended from now on are decoded.
		var err error
		f.offset, err = f.file.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
	}

	if !f.opts.Follow {
		return nil
	}

	if err := f.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	defer f.watcher.Close()

	return f.watch(ctx)
}

func (f *Follower) openFile() error {
	file, err := os.Open(f.opts.FilePath)
	if err != nil {
		return err
	}
	f.file = file
	f.offset = 0
	return nil
}

func (f *Follower) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	f.watcher = watcher
	return watcher.Add(f.opts.FilePath)
}

// watch monitors the feed for changes and decodes new lines.
func (f *Follower) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-f.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := f.handleEvent(ctx, ev); err != nil {
				return err
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (f *Follower) handleEvent(ctx context.Context, ev fsnotify.Event) error {
	switch {
	case ev.Op&fsnotify.Write == fsnotify.Write:
		return f.readNewLines()

	case ev.Op&fsnotify.Remove == fsnotify.Remove || ev.Op&fsnotify.Rename == fsnotify.Rename:
		return f.handleRotation(ctx)
	}
	return nil
}

// readNewLines decodes every newline-terminated line between the last
// offset and the end of the file. A partially written final line is left
// in place until its newline arrives, so a write that races the watcher
// never loses an event. Malformed lines are logged and skipped so one bad
// export record cannot stall the feed.
func (f *Follower) readNewLines() error {
	if _, err := f.file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}

	data, err := io.ReadAll(f.file)
	if err != nil {
		return err
	}

	cut := bytes.LastIndexByte(data, '\n')
	if cut < 0 {
		return nil
	}
	chunk := data[:cut+1]

	for _, raw := range bytes.Split(chunk, []byte("\n")) {
		if err := f.decodeLine(string(raw)); err != nil {
			return err
		}
	}

	f.offset += int64(len(chunk))
	return nil
}

// drainTail decodes an unterminated final line. Only called when the feed
// will not grow, so the tail is known to be complete.
func (f *Follower) drainTail() error {
	if _, err := f.file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}

	data, err := io.ReadAll(f.file)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if err := f.decodeLine(string(data)); err != nil {
		return err
	}
	f.offset += int64(len(data))
	return nil
}

// decodeLine unmarshals one feed line and hands it to the handler. Blank
// and malformed lines are skipped.
func (f *Follower) decodeLine(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}

	var ev event.CalendarEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		f.logger.Warn("skipping malformed feed line", "error", err)
		return nil
	}

	return f.opts.Handler(ev)
}

// handleRotation re-opens the feed after it was removed or renamed.
func (f *Follower) handleRotation(ctx context.Context) error {
	if !f.opts.FollowRotate {
		return fmt.Errorf("feed rotated")
	}

	if f.file != nil {
		f.file.Close()
		f.file = nil
	}

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rotated feed to reappear")
		case <-ticker.C:
			file, err := os.Open(f.opts.FilePath)
			if err != nil {
				continue
			}
			f.file = file
			f.offset = 0

			if err := f.watcher.Add(f.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch rotated feed: %w", err)
			}

			f.logger.Info("feed rotated, following new file")
			return f.readNewLines()
		}
	}
}

func (f *Follower) close() {
	if f.file != nil {
		f.file.Close()
	}
	if f.watcher != nil {
		f.watcher.Close()
	}
}
