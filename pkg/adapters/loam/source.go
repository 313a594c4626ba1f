package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Source adapts a Loam repository to the ports.LayerSource interface.
// Every document describes one layer, or one group when its type is "group".
type Source struct {
	Repo *loam.TypedRepository[LayerMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[LayerMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

type ordered struct {
	order *int
	pos   int
	info  domain.LayerInfo
}

// Load lists the repository and assembles the document. Layers are sorted by
// their order key; IDs default to the file name without extension.
func (s *Source) Load(ctx context.Context) (*domain.Document, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	doc := &domain.Document{}
	seen := make(map[string]string)
	var layers []ordered

	for i, d := range docs {
		meta := d.Data
		rawID := meta.ID
		if rawID == "" {
			rawID = d.ID
		}
		id := trimExtension(rawID)

		if meta.Type == domain.DocumentTypeGroup {
			doc.Groups = append(doc.Groups, domain.GroupInfo{
				ID:       id,
				Title:    meta.Title,
				Scope:    domain.Scope(meta.Scope).Clone(),
				Metadata: meta.Metadata,
			})
			continue
		}

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, d.ID)
		}
		seen[id] = d.ID

		style, err := normalizeStyle(meta.Style)
		if err != nil {
			return nil, fmt.Errorf("style of %s: %w", id, err)
		}
		title := meta.Title
		if title == "" {
			title = firstLine(d.Content)
		}
		layers = append(layers, ordered{
			order: meta.Order,
			pos:   i,
			info: domain.LayerInfo{
				ID:    id,
				Title: title,
				Scope: domain.Scope(meta.Scope).Clone(),
				Style: style,
			},
		})
	}

	sort.SliceStable(layers, func(i, j int) bool {
		a, b := layers[i], layers[j]
		switch {
		case a.order != nil && b.order != nil:
			return *a.order < *b.order
		case a.order != nil:
			return true
		case b.order != nil:
			return false
		}
		return a.pos < b.pos
	})
	doc.Layers = make([]domain.LayerInfo, 0, len(layers))
	for _, l := range layers {
		doc.Layers = append(doc.Layers, l.info)
	}
	return doc, nil
}

func normalizeStyle(raw map[string]any) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var style map[string]string
	if err := mapstructure.WeakDecode(raw, &style); err != nil {
		return nil, err
	}
	return style, nil
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces on its own; coalesce pending signals.
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
