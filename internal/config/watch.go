package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is re-read.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-reads a config file when it changes on disk and delivers
// the parsed result on Updates. Invalid files are reported on Errors and
// leave the previous config in effect.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	updates  chan *Config
	errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	log      *zap.Logger
}

// Watch starts watching path. The parent directory is watched so editors that
// replace the file by rename are picked up.
func Watch(path string) (*Watcher, error) {
	return WatchWithDebounce(path, DefaultDebounce)
}

// WatchWithDebounce is Watch with a custom quiet period.
func WatchWithDebounce(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		log:      logger.Named("config"),
	}
	go w.run()
	w.log.Info("watching config", zap.String("path", abs))
	return w, nil
}

// Updates delivers freshly parsed configs. Only the newest is kept if the
// reader falls behind.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers read and validation failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.updates)
	defer close(w.errors)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.log.Warn("config reload rejected", zap.Error(err))
		w.sendError(err)
		return
	}

	// Replace a pending update nobody has read yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Info("config reloaded", zap.String("path", w.path))
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
