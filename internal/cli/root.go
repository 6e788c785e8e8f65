// Package cli wires the bregman-segmenter commands.
package cli

import (
	"fmt"
	"os"

	"bregman-segmenter/internal/config"
	"bregman-segmenter/internal/logger"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree around a fresh viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "bregman-segmenter",
		Short: "Two-phase TV segmentation with Split Bregman",
		Long: `Segments grayscale images into foreground and background by minimising an
edge-weighted total variation energy with the Split Bregman method.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindCommandFlags(cmd); err != nil {
				return err
			}
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/"+config.ConfigName+".yaml)")
	flags.String("db", config.DefaultDB, "run history database")
	flags.String("log-level", config.DefaultLogLvl, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFmt, "log format (console or json)")
	a.bind("db", flags.Lookup("db"))
	a.bind("log.level", flags.Lookup("log-level"))
	a.bind("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		a.segmentCommand(),
		a.edgesCommand(),
		a.historyCommand(),
		a.migrateCommand(),
		a.algorithmsCommand(),
	)
	return rootCmd
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(config.ConfigName)
	}
	config.BindEnv(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || a.cfgFile != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Log.Format, cfg.LogLevel())

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("Config", "using config file", map[string]interface{}{"path": used})
	}
	return nil
}
