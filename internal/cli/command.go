package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/awtza/phrasebook/internal"
)

// CreateRootCommand creates and configures the root cobra command with the
// build, dialogue, voices and archive subcommands
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phrasebook",
		Short: "French lesson pages, spreadsheets and audio from JSON phrase lists",
		Long: `phrasebook turns bilingual French lesson files into study material.

Each lesson becomes an HTML page with per-sentence audio, plus Markdown,
CSV and XLSX tables (and optionally an Anki package). A root index page
links every lesson.

Examples:
  phrasebook build                        # Build every lesson in ./lessons
  phrasebook build --skip-audio           # Rebuild pages without synthesis
  phrasebook dialogue --strategy clips    # Restaurant dialogue audio
  phrasebook voices                       # Voices available for fr-FR
  phrasebook archive                      # Move ./build aside`,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newBuildCommand(flags),
		newDialogueCommand(flags),
		newVoicesCommand(flags),
		newArchiveCommand(flags),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.phrasebook.yaml or ./.phrasebook.yaml)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory")

	// Audio flags
	pf.StringVar(&flags.Provider, "audio-provider", flags.Provider, "Speech provider: google, openai or espeak")
	pf.StringVar(&flags.Fallback, "fallback", "", "Provider used when the primary one fails")
	pf.StringVar(&flags.Locale, "locale", flags.Locale, "Synthesis locale")
	pf.StringVar(&flags.Voice, "voice", flags.Voice, "Provider voice name")
	pf.Float64Var(&flags.Rate, "rate", flags.Rate, "Speaking rate (0.25 to 4.0)")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("output.directory", pf.Lookup("output"))
	viper.BindPFlag("audio.provider", pf.Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback", pf.Lookup("fallback"))
	viper.BindPFlag("audio.locale", pf.Lookup("locale"))
	viper.BindPFlag("audio.voice", pf.Lookup("voice"))
	viper.BindPFlag("audio.rate", pf.Lookup("rate"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in the home and working directories with name
		// ".phrasebook" (without extension)
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".phrasebook")
	}

	// Environment variables, e.g. PHRASEBOOK_AUDIO_PROVIDER
	viper.SetEnvPrefix("PHRASEBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}
