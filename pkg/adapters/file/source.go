package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events editors emit for one save.
const debounce = 50 * time.Millisecond

// Source implements ports.LayerSource and ports.Watchable over one YAML file.
type Source struct {
	Path string
}

// NewSource creates a source reading path.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// Load reads and decodes the file.
func (s *Source) Load(ctx context.Context) (*domain.Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.Path, domain.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return doc, nil
}

// Save writes doc to the file atomically.
func (s *Source) Save(ctx context.Context, doc *domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return writeAtomic(s.Path, data)
}

// Watch signals on every change of the file. The parent directory is
// watched, so atomic replacements by editors are seen.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()

		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs || evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
					continue
				}
				timer = time.After(debounce)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-timer:
				timer = nil
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
