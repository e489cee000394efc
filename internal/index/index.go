// Package index builds the root page listing every lesson page found in
// the output directory.
package index

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codeberg.org/awtza/phrasebook/internal/fileutil"
	"codeberg.org/awtza/phrasebook/internal/lesson"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// TimestampLayout formats the "last updated" header
const TimestampLayout = "2006-01-02 15:04"

// siblingFormats are linked only when the file exists next to the page
var siblingFormats = []struct {
	label string
	ext   string
}{
	{"MD", ".md"},
	{"CSV", ".csv"},
	{"XLSX", ".xlsx"},
	{"APKG", ".apkg"},
}

// Options locates the scanned directory and the written index
type Options struct {
	OutputDir string           // Directory scanned for lesson pages
	IndexPath string           // File the index is written to
	Lang      string           // lang attribute, "fr" when empty
	Now       func() time.Time // Clock for the header, time.Now when nil
}

// Link points at one artifact of a lesson
type Link struct {
	Label string
	Href  string
}

// Entry is one lesson card on the index page
type Entry struct {
	ID          string
	Title       string
	TitleZh     string
	Description string
	FileName    string
	HTMLHref    string
	Links       []Link
}

// Entries scans the output directory and joins each page with its lesson
// metadata. A missing output directory yields no entries.
func Entries(opts Options, lessons []*lesson.Lesson) ([]Entry, error) {
	dirEntries, err := os.ReadDir(opts.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	meta := make(map[string]*lesson.Lesson, len(lessons))
	for _, l := range lessons {
		meta[l.ID] = l
	}

	prefix, err := hrefPrefix(opts)
	if err != nil {
		return nil, err
	}

	indexFile, err := filepath.Abs(opts.IndexPath)
	if err != nil {
		return nil, err
	}
	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, e := range dirEntries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".html") || strings.EqualFold(name, "index.html") {
			continue
		}
		// The index may live in the output directory under another name
		if filepath.Join(outDir, name) == indexFile {
			continue
		}
		pages = append(pages, name)
	}
	sort.Strings(pages)

	entries := make([]Entry, 0, len(pages))
	for _, name := range pages {
		id := strings.TrimSuffix(name, filepath.Ext(name))
		entry := Entry{ID: id, Title: id, FileName: name, HTMLHref: prefix + name}

		if l, ok := meta[id]; ok {
			entry.Title = l.Title
			entry.TitleZh = l.TitleZh
			entry.Description = l.Summary()
		}

		entry.Links = append(entry.Links, Link{Label: "HTML", Href: entry.HTMLHref})
		for _, f := range siblingFormats {
			if fileutil.Exists(filepath.Join(opts.OutputDir, id+f.ext)) {
				entry.Links = append(entry.Links, Link{Label: f.label, Href: prefix + id + f.ext})
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// hrefPrefix is the output directory as seen from the index file, with a
// trailing slash, or "" when both live in the same directory
func hrefPrefix(opts Options) (string, error) {
	indexDir, err := filepath.Abs(filepath.Dir(opts.IndexPath))
	if err != nil {
		return "", err
	}
	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(indexDir, outDir)
	if err != nil {
		return "", fmt.Errorf("output directory not reachable from index: %w", err)
	}
	if rel == "." {
		return "", nil
	}
	return path.Clean(filepath.ToSlash(rel)) + "/", nil
}

// Render produces the index page for entries
func Render(entries []Entry, updated time.Time, lang string) ([]byte, error) {
	if lang == "" {
		lang = "fr"
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, struct {
		Lang    string
		Updated string
		Entries []Entry
	}{lang, updated.Format(TimestampLayout), entries})
	if err != nil {
		return nil, fmt.Errorf("failed to execute index template: %w", err)
	}
	return buf.Bytes(), nil
}

// Build regenerates the index wholesale and returns the number of entries
func Build(opts Options, lessons []*lesson.Lesson) (int, error) {
	entries, err := Entries(opts, lessons)
	if err != nil {
		return 0, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	content, err := Render(entries, now(), opts.Lang)
	if err != nil {
		return 0, err
	}
	if err := fileutil.WriteFileAtomic(opts.IndexPath, content); err != nil {
		return 0, fmt.Errorf("failed to write index: %w", err)
	}
	return len(entries), nil
}
