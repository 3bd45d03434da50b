package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// startWatcher watches the dataset files, and the dataset directory when
// the dataset is a directory so that newly created files are picked up.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	s.mu.RLock()
	paths := s.watchPaths()
	s.mu.RUnlock()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	go s.runWatcher(ctx, watcher)

	s.logger.Info().Int("paths", len(paths)).Msg("watching dataset for changes")
	return nil
}

// watchPaths returns the root plus every file read. Caller must hold the mutex.
func (s *Server) watchPaths() []string {
	paths := []string{s.root}
	for _, f := range s.files {
		if f != s.root {
			paths = append(paths, f)
		}
	}
	return paths
}

func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() { _ = watcher.Close() }()

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// handleFileChange reloads the dataset and updates the watch list.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	s.mu.RLock()
	oldPaths := make(map[string]bool)
	for _, p := range s.watchPaths() {
		oldPaths[p] = true
	}
	s.mu.RUnlock()

	if err := s.Reload(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to reload dataset")
		s.broadcast("error")
		return
	}

	s.mu.RLock()
	newPaths := s.watchPaths()
	s.mu.RUnlock()

	current := make(map[string]bool, len(newPaths))
	for _, p := range newPaths {
		current[p] = true
	}
	for p := range oldPaths {
		if !current[p] {
			_ = watcher.Remove(p)
		}
	}
	// Re-add to catch files re-created by atomic saves
	for _, p := range newPaths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := watcher.Add(p); err != nil {
			s.logger.Warn().Err(err).Str("path", p).Msg("failed to watch file")
		}
	}

	s.logger.Info().Str("root", newPaths[0]).Msg("dataset reloaded")
	s.broadcast("reload")
}

// handleSSE streams reload events to the client.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
