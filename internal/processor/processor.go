package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"codeberg.org/awtza/phrasebook/internal/anki"
	"codeberg.org/awtza/phrasebook/internal/audio"
	"codeberg.org/awtza/phrasebook/internal/config"
	"codeberg.org/awtza/phrasebook/internal/fileutil"
	"codeberg.org/awtza/phrasebook/internal/index"
	"codeberg.org/awtza/phrasebook/internal/lesson"
	"codeberg.org/awtza/phrasebook/internal/logger"
	"codeberg.org/awtza/phrasebook/internal/render"
)

// Processor handles the lesson build
type Processor struct {
	cfg       *config.Config
	log       *logger.Logger
	synth     audio.Synthesizer
	newSynth  func(context.Context, *audio.Config, *logger.Logger) (audio.Synthesizer, error)
	factories map[string]render.Factory
	now       func() time.Time
	out       io.Writer
}

// NewProcessor creates a processor for cfg
func NewProcessor(cfg *config.Config, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{
		cfg:      cfg,
		log:      log,
		newSynth: audio.NewSynthesizer,
		now:      time.Now,
		out:      os.Stdout,
	}
}

// WithSynthesizer replaces the synthesizer built from the audio configuration
func (p *Processor) WithSynthesizer(s audio.Synthesizer) *Processor {
	p.synth = s
	return p
}

// WithFactories replaces the renderer factories
func (p *Processor) WithFactories(factories map[string]render.Factory) *Processor {
	p.factories = factories
	return p
}

// WithClock sets the clock used for the index timestamp
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// WithOutput sets where the summary table is printed
func (p *Processor) WithOutput(w io.Writer) *Processor {
	p.out = w
	return p
}

// Factories returns the builtin renderers plus the Anki package renderer
func Factories(outputDir string) map[string]render.Factory {
	factories := render.BuiltinFactories()
	factories["apkg"] = func(render.Options) render.Renderer { return anki.NewRenderer(outputDir) }
	return factories
}

// Run builds every lesson. Per-lesson problems are logged and counted in
// the summary; only setup failures (unusable or locked output directory)
// are returned.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	outDir := p.cfg.Output.Directory

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	lock, err := fileutil.LockDir(outDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.log.Warn("failed to release output lock", "error", err)
		}
	}()

	summary := &Summary{RunID: uuid.NewString()}
	log := p.log.With("run", summary.RunID)

	lessons := lesson.LoadDir(p.cfg.Lessons.Directory, log)
	log.Info("loaded lessons", "count", len(lessons), "directory", p.cfg.Lessons.Directory)

	gen, release := p.generator(ctx, log)
	defer release()
	summary.AudioSkipped = gen == nil

	factories := p.factories
	if factories == nil {
		factories = Factories(outDir)
	}
	registry := render.NewRegistry(p.cfg.Output.Formats, factories, render.Options{
		OutputDir:    outDir,
		PageLanguage: p.cfg.PageLanguage(),
		Locale:       p.cfg.Audio.Locale,
		Rate:         p.cfg.Audio.Rate,
	}, log)
	summary.Formats = registry.Formats()

	// Audio goes first so the Anki package can embed the clips
	for _, l := range lessons {
		result := LessonResult{ID: l.ID, Sentences: len(l.Sentences)}
		llog := log.With("lesson", l.ID)

		if gen != nil {
			result.Audio = gen.GenerateLesson(ctx, l)
		}

		for _, r := range registry.Renderers() {
			path, err := render.WriteArtifact(outDir, l, r)
			if err != nil {
				llog.Error("failed to write artifact", "format", r.Format(), "error", err)
				result.ArtifactErrors++
				continue
			}
			llog.Debug("wrote artifact", "format", r.Format(), "path", path)
			result.Artifacts++
		}

		llog.Info("lesson done",
			"sentences", result.Sentences,
			"synthesized", result.Audio.Synthesized,
			"skipped", result.Audio.Skipped,
			"failed", result.Audio.Failed,
			"artifacts", result.Artifacts)
		summary.add(result)
	}

	entries, err := index.Build(index.Options{
		OutputDir: outDir,
		IndexPath: p.cfg.Output.Index,
		Lang:      p.cfg.PageLanguage(),
		Now:       p.now,
	}, lessons)
	if err != nil {
		log.Error("failed to build index", "path", p.cfg.Output.Index, "error", err)
		summary.IndexFailed = true
	} else {
		log.Info("wrote index", "path", p.cfg.Output.Index, "entries", entries)
	}
	summary.IndexEntries = entries
	summary.Duration = time.Since(start)

	if p.out != nil {
		fmt.Fprintln(p.out, summary.Table())
	}
	return summary, nil
}

// generator returns nil when audio is disabled or no provider can be built.
// release closes a synthesizer built here; an injected one stays open.
func (p *Processor) generator(ctx context.Context, log *logger.Logger) (gen *audio.Generator, release func()) {
	release = func() {}
	if p.cfg.Audio.Skip {
		log.Info("audio generation disabled")
		return nil, release
	}

	synth := p.synth
	if synth == nil {
		built, err := p.newSynth(ctx, p.cfg.SynthesizerConfig(), log)
		if err != nil {
			log.Error("audio provider unavailable, skipping audio for every lesson", "error", err)
			return nil, release
		}
		synth = built
		release = func() {
			if err := audio.Close(built); err != nil {
				log.Warn("failed to close audio provider", "provider", built.Name(), "error", err)
			}
		}
	}
	if err := synth.IsAvailable(); err != nil {
		log.Error("audio provider unavailable, skipping audio for every lesson",
			"provider", synth.Name(), "error", err)
		return nil, release
	}

	return audio.NewGenerator(synth, audio.GeneratorOptions{
		OutputDir:   p.cfg.Output.Directory,
		Locale:      p.cfg.Audio.Locale,
		Rate:        p.cfg.Audio.Rate,
		Voice:       p.cfg.Audio.Voice,
		Workers:     p.cfg.Audio.Workers,
		Timeout:     p.cfg.Audio.Timeout,
		Fingerprint: p.cfg.Audio.Fingerprint,
	}, log), release
}
