package dialogue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codeberg.org/awtza/phrasebook/internal"
	"codeberg.org/awtza/phrasebook/internal/audio"
	"codeberg.org/awtza/phrasebook/internal/fileutil"
	"codeberg.org/awtza/phrasebook/internal/logger"
)

// Strategy selects how aggregate tracks are produced
type Strategy string

const (
	// StrategyText synthesises the joined text of each group in one request
	StrategyText Strategy = "text"
	// StrategyClips concatenates the per-line clips with silence between them
	StrategyClips Strategy = "clips"
)

// Silence inserted by the clips strategy
const (
	LeadIn     = 200 * time.Millisecond
	LineGap    = 400 * time.Millisecond
	SectionGap = 800 * time.Millisecond
)

const (
	DefaultPrefix = "restaurant"
	DefaultOutDir = "audio"
)

// Options controls a dialogue run
type Options struct {
	OutputDir string
	Prefix    string
	Strategy  Strategy
	Force     bool // Re-synthesise line clips that already exist
	Locale    string
	Rate      float64
	Voice     string // Voice of mixed-role aggregates in the text strategy
	Voices    VoiceMap
	Timeout   time.Duration // Per request, 0 uses the provider default
}

// Stats counts what a run produced
type Stats struct {
	Lines      int
	Skipped    int
	Aggregates int
	Failed     int
}

// Runner produces the audio of one dialogue
type Runner struct {
	synth  audio.Synthesizer
	concat audio.Concatenator
	opts   Options
	log    *logger.Logger
}

// NewRunner validates opts. concat is only required by StrategyClips.
func NewRunner(synth audio.Synthesizer, concat audio.Concatenator, opts Options, log *logger.Logger) (*Runner, error) {
	if synth == nil {
		return nil, fmt.Errorf("dialogue runner needs a synthesizer")
	}
	switch opts.Strategy {
	case StrategyText:
	case StrategyClips:
		if concat == nil {
			return nil, fmt.Errorf("the clips strategy needs a concatenator")
		}
	default:
		return nil, fmt.Errorf("unknown dialogue strategy %q", opts.Strategy)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutDir
	}
	if opts.Voices.fallback == "" {
		opts.Voices = NewVoiceMap(DefaultVoices(), "")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{synth: synth, concat: concat, opts: opts, log: log}, nil
}

// Run writes one clip per line followed by the section, role and whole
// document aggregates. Individual failures are logged and counted; only an
// unusable output directory is returned as an error.
func (r *Runner) Run(ctx context.Context, lines []Line) (Stats, error) {
	var stats Stats
	if len(lines) == 0 {
		r.log.Warn("no dialogue lines found")
		return stats, nil
	}
	if err := os.MkdirAll(r.opts.OutputDir, 0755); err != nil {
		return stats, fmt.Errorf("failed to create dialogue output directory: %w", err)
	}

	r.log.Info("generating dialogue audio",
		"lines", len(lines),
		"strategy", string(r.opts.Strategy),
		"output", r.opts.OutputDir)

	g := GroupLines(lines)
	reserved := r.aggregatePaths(g)

	for _, l := range lines {
		if reserved[r.LinePath(l.ID)] {
			r.log.Error("line id collides with an aggregate track, skipping",
				"id", l.ID, "path", r.LinePath(l.ID))
			stats.Failed++
			continue
		}
		r.line(ctx, l, &stats)
	}

	switch r.opts.Strategy {
	case StrategyText:
		r.textAggregates(ctx, g, &stats)
	case StrategyClips:
		r.clipAggregates(ctx, g, reserved, &stats)
	}

	r.log.Info("dialogue audio finished",
		"lines", stats.Lines,
		"skipped", stats.Skipped,
		"aggregates", stats.Aggregates,
		"failed", stats.Failed)
	return stats, nil
}

func (r *Runner) line(ctx context.Context, l Line, stats *Stats) {
	dst := r.LinePath(l.ID)
	if !r.opts.Force && fileutil.Exists(dst) {
		r.log.Debug("line clip exists, skipping", "id", l.ID)
		stats.Skipped++
		return
	}
	if err := r.synthesize(ctx, l.Text, r.opts.Voices.For(l.Role), dst); err != nil {
		r.log.Error("failed to synthesize line", "id", l.ID, "error", err)
		stats.Failed++
		return
	}
	r.log.Debug("wrote line clip", "id", l.ID, "path", dst)
	stats.Lines++
}

func (r *Runner) textAggregates(ctx context.Context, g Grouping, stats *Stats) {
	for _, s := range g.Sections {
		r.textAggregate(ctx, s.Texts(), r.opts.Voice, r.SectionPath(s.Key), stats)
	}
	for _, role := range g.Roles {
		r.textAggregate(ctx, role.Texts(), r.opts.Voices.For(role.Key), r.RolePath(role.Key), stats)
	}
	r.textAggregate(ctx, Group{Lines: g.All}.Texts(), r.opts.Voice, r.AllPath(), stats)
}

func (r *Runner) textAggregate(ctx context.Context, texts []string, voice, dst string, stats *Stats) {
	if err := r.synthesize(ctx, strings.Join(texts, " "), voice, dst); err != nil {
		r.log.Error("failed to synthesize aggregate", "path", dst, "error", err)
		stats.Failed++
		return
	}
	r.log.Info("wrote aggregate", "path", dst, "lines", len(texts))
	stats.Aggregates++
}

// aggregatePaths returns the file of every aggregate g produces. A line
// clip never takes one of these names.
func (r *Runner) aggregatePaths(g Grouping) map[string]bool {
	paths := map[string]bool{r.AllPath(): true}
	for _, s := range g.Sections {
		paths[r.SectionPath(s.Key)] = true
	}
	for _, role := range g.Roles {
		paths[r.RolePath(role.Key)] = true
	}
	return paths
}

func (r *Runner) clipAggregates(ctx context.Context, g Grouping, reserved map[string]bool, stats *Stats) {
	var written []string
	for _, s := range g.Sections {
		if r.clipAggregate(ctx, r.lineSegments(s.Lines, reserved), r.SectionPath(s.Key), stats) {
			written = append(written, s.Key)
		} else {
			r.log.Warn("section aggregate failed, leaving it out of the whole document", "section", s.Key)
		}
	}
	for _, role := range g.Roles {
		r.clipAggregate(ctx, r.lineSegments(role.Lines, reserved), r.RolePath(role.Key), stats)
	}

	// Only sections written by this run, a stale file from an earlier run
	// must not end up in the whole document
	sort.Strings(written)
	segments := make([]audio.Segment, 0, len(written))
	for _, key := range written {
		segments = append(segments, audio.Segment{Path: r.SectionPath(key), SilenceAfter: SectionGap})
	}
	r.clipAggregate(ctx, segments, r.AllPath(), stats)
}

// lineSegments returns the clips of lines that exist on disk
func (r *Runner) lineSegments(lines []Line, reserved map[string]bool) []audio.Segment {
	segments := make([]audio.Segment, 0, len(lines))
	for _, l := range lines {
		path := r.LinePath(l.ID)
		if reserved[path] {
			continue
		}
		if !fileutil.Exists(path) {
			r.log.Warn("line clip missing, leaving it out", "id", l.ID)
			continue
		}
		segments = append(segments, audio.Segment{Path: path, SilenceAfter: LineGap})
	}
	return segments
}

func (r *Runner) clipAggregate(ctx context.Context, segments []audio.Segment, dst string, stats *Stats) bool {
	if len(segments) == 0 {
		r.log.Error("no clips to concatenate", "path", dst)
		stats.Failed++
		return false
	}
	if err := r.concat.Concat(ctx, LeadIn, segments, dst); err != nil {
		r.log.Error("failed to concatenate aggregate", "path", dst, "error", err)
		stats.Failed++
		return false
	}
	r.log.Info("wrote aggregate", "path", dst, "clips", len(segments))
	stats.Aggregates++
	return true
}

func (r *Runner) synthesize(ctx context.Context, text, voice, dst string) error {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	data, err := r.synth.Synthesize(ctx, audio.Request{
		Text:   text,
		Locale: r.opts.Locale,
		Rate:   r.opts.Rate,
		Voice:  voice,
	})
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s returned no audio", r.synth.Name())
	}
	return fileutil.WriteFileAtomic(dst, data)
}

// LinePath returns the clip path of the line with the given id
func (r *Runner) LinePath(id string) string { return r.path(id) }

// SectionPath returns the aggregate path of a section
func (r *Runner) SectionPath(section string) string { return r.path("section", section) }

// RolePath returns the aggregate path of a role
func (r *Runner) RolePath(role string) string { return r.path("role", role) }

// AllPath returns the whole-document aggregate path
func (r *Runner) AllPath() string { return r.path("all") }

func (r *Runner) path(parts ...string) string {
	names := make([]string, 0, len(parts)+1)
	if r.opts.Prefix != "" {
		names = append(names, internal.SanitizeFilename(r.opts.Prefix))
	}
	for _, p := range parts {
		names = append(names, internal.SanitizeFilename(p))
	}
	return filepath.Join(r.opts.OutputDir, strings.Join(names, "_")+".mp3")
}
