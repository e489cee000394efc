package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/awtza/phrasebook/internal"
	"codeberg.org/awtza/phrasebook/internal/archive"
	"codeberg.org/awtza/phrasebook/internal/audio"
	"codeberg.org/awtza/phrasebook/internal/config"
	"codeberg.org/awtza/phrasebook/internal/dialogue"
	"codeberg.org/awtza/phrasebook/internal/logger"
	"codeberg.org/awtza/phrasebook/internal/processor"
	"codeberg.org/awtza/phrasebook/internal/voices"
)

func newBuildCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build pages, tables and audio for every lesson",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			_, err = processor.NewProcessor(cfg, log).
				WithOutput(cmd.OutOrStdout()).
				Run(cmd.Context())
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.LessonsDir, "lessons", "l", flags.LessonsDir, "Directory holding the lesson files")
	f.StringVar(&flags.IndexPath, "index", flags.IndexPath, "Path of the root index page")
	f.StringSliceVarP(&flags.Formats, "formats", "f", flags.Formats, "Output formats: html, md, csv, xlsx, apkg")
	f.BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio generation")
	f.IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Concurrent synthesis calls per lesson")
	f.BoolVar(&flags.Fingerprint, "fingerprint", false, "Regenerate clips whose text or voice settings changed")

	viper.BindPFlag("lessons.directory", f.Lookup("lessons"))
	viper.BindPFlag("output.index", f.Lookup("index"))
	viper.BindPFlag("output.formats", f.Lookup("formats"))
	viper.BindPFlag("audio.skip", f.Lookup("skip-audio"))
	viper.BindPFlag("audio.workers", f.Lookup("workers"))
	viper.BindPFlag("audio.fingerprint", f.Lookup("fingerprint"))

	return cmd
}

func newDialogueCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialogue",
		Short: "Generate per-line, per-section, per-role and full dialogue audio",
		Long: `dialogue reads the span.fr-phrase elements of an annotated HTML page
(or a YAML script, or the built-in restaurant dialogue when --html is empty)
and writes one MP3 per line plus aggregate tracks per section, per role and
for the whole document.

The text strategy synthesises each aggregate from its joined text; the clips
strategy concatenates the line clips with ffmpeg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			return runDialogue(cmd.Context(), cfg, log, cmd.OutOrStdout(), nil, nil)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.DialogueHTML, "html", "", "Annotated HTML page or YAML script (built-in script when empty)")
	f.StringVar(&flags.DialogueOutput, "dir", flags.DialogueOutput, "Directory the dialogue audio is written to")
	f.StringVar(&flags.Prefix, "prefix", flags.Prefix, "File name prefix of every clip")
	f.StringVar(&flags.Strategy, "strategy", flags.Strategy, "Aggregation strategy: text or clips")
	f.BoolVar(&flags.Force, "force", false, "Re-synthesise line clips that already exist")

	viper.BindPFlag("dialogue.html", f.Lookup("html"))
	viper.BindPFlag("dialogue.output", f.Lookup("dir"))
	viper.BindPFlag("dialogue.prefix", f.Lookup("prefix"))
	viper.BindPFlag("dialogue.strategy", f.Lookup("strategy"))
	viper.BindPFlag("dialogue.force", f.Lookup("force"))

	return cmd
}

// runDialogue builds the synthesizer and concatenator from cfg unless they
// are given
func runDialogue(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer, synth audio.Synthesizer, concat audio.Concatenator) error {
	lines, err := dialogue.LoadLines(cfg.Dialogue.HTML)
	if err != nil {
		return err
	}

	if synth == nil {
		if synth, err = audio.NewSynthesizer(ctx, cfg.SynthesizerConfig(), log); err != nil {
			return fmt.Errorf("failed to create audio provider: %w", err)
		}
		defer audio.Close(synth)
	}
	if err := synth.IsAvailable(); err != nil {
		return fmt.Errorf("audio provider %s unavailable: %w", synth.Name(), err)
	}

	strategy := dialogue.Strategy(cfg.Dialogue.Strategy)
	if strategy == dialogue.StrategyClips && concat == nil {
		ffmpeg, err := audio.NewFFmpegConcatenator()
		if err != nil {
			return err
		}
		concat = ffmpeg
	}

	runner, err := dialogue.NewRunner(synth, concat, dialogue.Options{
		OutputDir: cfg.Dialogue.Output,
		Prefix:    cfg.Dialogue.Prefix,
		Strategy:  strategy,
		Force:     cfg.Dialogue.Force,
		Locale:    cfg.Audio.Locale,
		Rate:      cfg.Audio.Rate,
		Voice:     cfg.Audio.Voice,
		Voices:    dialogue.NewVoiceMap(cfg.Dialogue.Voices, ""),
		Timeout:   cfg.Audio.Timeout,
	}, log)
	if err != nil {
		return err
	}

	stats, err := runner.Run(ctx, lines)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, internal.RenderTable(
		[]string{"Lines", "Skipped", "Aggregates", "Failed"},
		[][]string{{
			strconv.Itoa(stats.Lines),
			strconv.Itoa(stats.Skipped),
			strconv.Itoa(stats.Aggregates),
			strconv.Itoa(stats.Failed),
		}},
		0, 1, 2, 3,
	))
	return nil
}

func newVoicesCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the voices of the configured provider for the locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			lister, closeFn, err := newVoiceLister(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			return listVoices(cmd.Context(), lister, cfg, cmd.OutOrStdout())
		},
	}
}

// newVoiceLister connects only the source the configured provider needs
func newVoiceLister(ctx context.Context, cfg *config.Config) (*voices.Lister, func(), error) {
	switch cfg.Audio.Provider {
	case "google":
		provider, err := audio.NewGoogleProvider(ctx, cfg.SynthesizerConfig())
		if err != nil {
			return nil, nil, err
		}
		return voices.NewLister(provider, nil), func() { provider.Close() }, nil
	case "openai":
		if cfg.Audio.OpenAIKey == "" {
			return voices.NewLister(nil, nil), func() {}, nil
		}
		return voices.NewLister(nil, openai.NewClient(cfg.Audio.OpenAIKey)), func() {}, nil
	default:
		return voices.NewLister(nil, nil), func() {}, nil
	}
}

func listVoices(ctx context.Context, lister *voices.Lister, cfg *config.Config, out io.Writer) error {
	list, err := lister.List(ctx, cfg.Audio.Provider, cfg.Audio.Locale)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Voices of %s for %s:\n", cfg.Audio.Provider, cfg.Audio.Locale)
	voices.Print(out, list)

	if cfg.Audio.Provider == "openai" && cfg.Audio.OpenAIKey != "" {
		models, err := lister.SpeechModels(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "\nText-to-Speech (TTS) Models:")
		if len(models) == 0 {
			fmt.Fprintln(out, "  No TTS models found")
		}
		for _, m := range models {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}
	return nil
}

func newArchiveCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move the output directory to archive/<name>-<timestamp>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			path, err := archive.ArchiveOutput(cfg.Output.Directory, time.Now)
			if err != nil {
				return fmt.Errorf("failed to archive output: %w", err)
			}
			log.Info("output archived", "from", cfg.Output.Directory, "to", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Output directory archived to: %s\n", path)
			return nil
		},
	}
}

func loadConfig(flags *Flags) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(flags.Verbose), nil
}
