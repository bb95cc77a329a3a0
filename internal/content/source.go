package content

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

// StaticSource always returns the same content.
type StaticSource struct {
	content model.Content
}

// NewStaticSource wraps fixed content.
func NewStaticSource(c model.Content) *StaticSource {
	return &StaticSource{content: c}
}

func (s *StaticSource) Load() (model.Content, error) {
	return s.content, nil
}

// FileSource reads content from a YAML file. Relative ticker offsets resolve
// against the moment the source was created, so edits to the file do not
// restart countdowns.
type FileSource struct {
	path string
	base time.Time
	log  *logrus.Entry
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithLogger sets the logger used for reload failures.
func WithLogger(l *logrus.Entry) FileOption {
	return func(s *FileSource) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBase overrides the instant relative offsets resolve against.
func WithBase(t time.Time) FileOption {
	return func(s *FileSource) { s.base = t }
}

// NewFileSource creates a source for path.
func NewFileSource(path string, opts ...FileOption) *FileSource {
	s := &FileSource{
		path: path,
		base: time.Now(),
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("content_file", path)
	return s
}

// Path returns the watched file path.
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) Load() (model.Content, error) {
	return LoadFile(s.path, s.base)
}

// Watch blocks until ctx is done, calling fn with freshly parsed content each
// time the file changes. Invalid revisions are logged and skipped. The parent
// directory is watched so editors that replace the file are handled.
func (s *FileSource) Watch(ctx context.Context, fn func(model.Content)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve content path: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	last, _ := os.ReadFile(target)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != target {
				continue
			}
			data, err := os.ReadFile(target)
			if err != nil {
				s.log.WithError(err).Debug("content file not readable yet")
				continue
			}
			if bytes.Equal(data, last) {
				continue
			}
			last = data
			c, err := Parse(data, s.base)
			if err != nil {
				s.log.WithError(err).Warn("ignoring invalid content revision")
				continue
			}
			s.log.WithField("entries", len(c.Entries)).Info("content reloaded")
			fn(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.WithError(err).Warn("content watcher error")
		}
	}
}

var (
	_ model.ContentSource  = (*StaticSource)(nil)
	_ model.ContentWatcher = (*FileSource)(nil)
)
