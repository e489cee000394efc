package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codeberg.org/awtza/phrasebook/internal/fileutil"
	"codeberg.org/awtza/phrasebook/internal/lesson"
	"codeberg.org/awtza/phrasebook/internal/logger"
)

// FingerprintFile is the per-lesson sidecar recording what each clip was
// synthesised from
const FingerprintFile = ".fingerprints.json"

// GeneratorOptions controls lesson audio generation
type GeneratorOptions struct {
	OutputDir   string        // Root output directory, clips go to <OutputDir>/audio/<id>/
	Locale      string        // Locale sent with every request
	Rate        float64       // Speaking rate sent with every request
	Voice       string        // Voice sent with every request
	Workers     int           // Concurrent synthesis calls per lesson
	Timeout     time.Duration // Per-sentence timeout, 0 uses the provider default
	Fingerprint bool          // Regenerate clips whose source settings changed
}

// Stats counts the outcome of each sentence
type Stats struct {
	Synthesized int
	Skipped     int
	Failed      int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Synthesized += other.Synthesized
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Generator writes one MP3 clip per lesson sentence
type Generator struct {
	synth Synthesizer
	opts  GeneratorOptions
	log   *logger.Logger
}

// NewGenerator creates a lesson audio generator
func NewGenerator(synth Synthesizer, opts GeneratorOptions, log *logger.Logger) *Generator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Generator{synth: synth, opts: opts, log: log}
}

// GenerateLesson synthesises every sentence of l that has no clip yet.
// Failures are logged and counted; they never abort the lesson.
func (g *Generator) GenerateLesson(ctx context.Context, l *lesson.Lesson) Stats {
	log := g.log.With("lesson", l.ID)
	dir := filepath.Join(g.opts.OutputDir, "audio", l.ID)

	var fps *fingerprints
	if g.opts.Fingerprint {
		fps = loadFingerprints(filepath.Join(dir, FingerprintFile), log)
	}

	var (
		mu    sync.Mutex
		stats Stats
	)
	count := func(f func(*Stats)) {
		mu.Lock()
		f(&stats)
		mu.Unlock()
	}

	var eg errgroup.Group
	eg.SetLimit(g.opts.Workers)

	for _, s := range l.Sentences {
		s := s
		eg.Go(func() error {
			switch g.generateSentence(ctx, l.ID, s, fps, log) {
			case outcomeSynthesized:
				count(func(st *Stats) { st.Synthesized++ })
			case outcomeSkipped:
				count(func(st *Stats) { st.Skipped++ })
			default:
				count(func(st *Stats) { st.Failed++ })
			}
			return nil
		})
	}
	_ = eg.Wait()

	if fps != nil {
		if err := fps.save(); err != nil {
			log.Warn("failed to write audio fingerprints", "error", err)
		}
	}

	return stats
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSkipped
	outcomeSynthesized
)

func (g *Generator) generateSentence(ctx context.Context, lessonID string, s lesson.Sentence, fps *fingerprints, log *logger.Logger) outcome {
	path := filepath.Join(g.opts.OutputDir, filepath.FromSlash(s.AudioPath(lessonID)))
	name := filepath.Base(path)
	req := Request{Text: s.French, Locale: g.opts.Locale, Rate: g.opts.Rate, Voice: g.opts.Voice}
	fp := Fingerprint(req)

	if fileutil.Exists(path) {
		if fps == nil {
			log.Info("audio exists, skipping", "ordinal", s.Number(), "file", path)
			return outcomeSkipped
		}
		recorded, ok := fps.get(name)
		if !ok {
			fps.set(name, fp)
		}
		if !ok || recorded == fp {
			log.Info("audio up to date, skipping", "ordinal", s.Number(), "file", path)
			return outcomeSkipped
		}
		log.Info("audio source changed, regenerating", "ordinal", s.Number(), "file", path)
	}

	if err := ctx.Err(); err != nil {
		log.Error("audio synthesis cancelled", "ordinal", s.Number(), "error", err)
		return outcomeFailed
	}

	callCtx := ctx
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	data, err := g.synth.Synthesize(callCtx, req)
	if err != nil {
		log.Error("audio synthesis failed", "ordinal", s.Number(), "provider", g.synth.Name(), "error", err)
		return outcomeFailed
	}
	if len(data) == 0 {
		log.Error("audio synthesis returned no data", "ordinal", s.Number(), "provider", g.synth.Name())
		return outcomeFailed
	}

	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		log.Error("failed to write audio", "ordinal", s.Number(), "file", path, "error", err)
		return outcomeFailed
	}

	if fps != nil {
		fps.set(name, fp)
	}
	log.Info("audio generated", "ordinal", s.Number(), "file", path, "bytes", len(data))
	return outcomeSynthesized
}

// Fingerprint hashes every request setting that affects the produced audio
func Fingerprint(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%.2f|%s", req.Text, req.Locale, req.Rate, req.Voice)
	return hex.EncodeToString(h.Sum(nil))
}

// fingerprints is the sidecar content, keyed by clip file name
type fingerprints struct {
	path    string
	mu      sync.Mutex
	entries map[string]string
	dirty   bool
}

func loadFingerprints(path string, log *logger.Logger) *fingerprints {
	fps := &fingerprints{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read audio fingerprints", "file", path, "error", err)
		}
		return fps
	}
	if err := json.Unmarshal(data, &fps.entries); err != nil {
		log.Warn("ignoring corrupt audio fingerprints", "file", path, "error", err)
		fps.entries = make(map[string]string)
	}
	return fps
}

func (f *fingerprints) get(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[name]
	return v, ok
}

func (f *fingerprints) set(name, fp string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries[name] != fp {
		f.entries[name] = fp
		f.dirty = true
	}
}

func (f *fingerprints) save() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return nil
	}
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(f.path, append(data, '\n'))
}
