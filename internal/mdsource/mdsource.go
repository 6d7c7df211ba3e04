// Package mdsource imports flashcards from markdown sources: local
// directories of `.md` files, or git repositories holding them. Imported
// cards start with fresh scheduling state and content-addressed ids, so
// re-importing a source only ever adds cards that are genuinely new.
package mdsource

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kyulli/flasHcARD/internal/cardid"
	"github.com/kyulli/flasHcARD/internal/domain"
	"github.com/kyulli/flasHcARD/internal/gitsource"
	"github.com/kyulli/flasHcARD/internal/parser"
)

// Scan walks dir for markdown files and returns the cards they contain,
// with content-addressed ids and fresh scheduling defaults. Files that fail
// to parse are skipped with a warning; the walk itself failing is an error.
func Scan(dir string, now time.Time) ([]domain.Card, error) {
	var cards []domain.Card

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		raw, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			slog.Warn("skipping unparsable markdown file", "path", path, "error", parseErr)
			return nil
		}
		for _, rc := range raw {
			id := cardid.FromContent(rc.Front, rc.Back, rc.Tag)
			cards = append(cards, domain.NewCard(id, rc.Front, rc.Back, rc.Tag, now))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return cards, nil
}

// Resolve turns a source path into a scannable local directory. Git URLs
// are cloned or pulled into reposDir first; local paths pass through. A
// path that exists on disk is always local, even if its name looks like a
// remote (e.g. a directory called decks.git).
func Resolve(source, reposDir string) (string, error) {
	if _, err := os.Stat(source); err == nil {
		return source, nil
	}
	if !gitsource.IsGitURL(source) {
		return source, nil
	}

	localPath, err := gitsource.LocalPath(reposDir, source)
	if err != nil {
		return "", err
	}
	if err := gitsource.Sync(source, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}

// Merge appends cards from a scan to the deck, skipping ids the deck
// already has. The deck is user-owned: a source disappearing never removes
// cards. Returns the new deck value and how many cards were added.
func Merge(deck domain.Deck, scanned []domain.Card) (domain.Deck, int) {
	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		seen[c.ID] = true
	}

	next := deck.Clone()
	added := 0
	for _, c := range scanned {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		next = append(next, c)
		added++
	}
	return next, added
}

// Import resolves, scans and merges a source into the deck in one step.
func Import(deck domain.Deck, source, reposDir string, now time.Time) (domain.Deck, int, error) {
	dir, err := Resolve(source, reposDir)
	if err != nil {
		return nil, 0, err
	}
	scanned, err := Scan(dir, now)
	if err != nil {
		return nil, 0, err
	}
	next, added := Merge(deck, scanned)
	return next, added, nil
}
