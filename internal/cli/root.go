package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/catalog"
	"github.com/shmod-labs/shmod/internal/config"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/userdata"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootFlag    string
	sourceFlags []string
	maxAgeFlag  string
	verbose     bool
)

// appFs is the filesystem every command works against.
var appFs afero.Fs = afero.NewOsFs()

// app holds what PersistentPreRunE assembled for the running command.
var app struct {
	state    string
	root     string
	settings config.Settings
	logger   *log.Logger
	catalog  *catalog.Catalog
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers shell modules (plugins, aliases, completions and functions),
indexes their header metadata for fast listing and search, and tracks which
ones are enabled. Add this to your shell rc file to load enabled modules:

  eval "$(` + branding.CLIName() + ` init)"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlag, "root", "", "Installation root holding builtin and custom modules (default $"+branding.EnvVar("ROOT")+" or ~/"+branding.HomeDir()+"/root)")
	pf.StringArrayVar(&sourceFlags, "source", nil, "Extra module source directory (repeatable, appended after configured sources)")
	pf.StringVar(&maxAgeFlag, "max-age", "", "Rebuild the index when it is older than this (e.g. 1h, 0 disables)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// setup resolves paths, loads configuration and builds the catalog.
func setup(cmd *cobra.Command, args []string) error {
	state, err := userdata.GetStateRoot()
	if err != nil {
		return err
	}
	app.state = state

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: branding.CLIName()})
	app.logger = logger

	cfgPath := userdata.ConfigPath(state)
	if err := config.Load(appFs, cfgPath); err != nil {
		logger.Warn("ignoring config file", "err", err)
	} else if res, err := config.ValidateFile(appFs, cfgPath); err != nil {
		logger.Warn("could not validate config file", "path", cfgPath, "err", err)
	} else {
		for _, issue := range res.Issues {
			logger.Warn("invalid config", "path", cfgPath, "issue", issue.String())
		}
	}

	settings := config.Current()
	for _, p := range settings.Problems {
		logger.Warn("using default", "problem", p)
	}
	if lvl, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if maxAgeFlag != "" {
		d, err := time.ParseDuration(maxAgeFlag)
		if err != nil {
			return fmt.Errorf("invalid --max-age %q: %w", maxAgeFlag, err)
		}
		settings.IndexMaxAge = d
	}
	app.settings = settings

	root := rootFlag
	if root == "" {
		root = settings.Root
	}
	if root == "" {
		if root, err = userdata.GetRoot(); err != nil {
			return err
		}
	}
	app.root = root

	extras := append(append([]string{}, settings.Sources...), sourceFlags...)
	app.catalog = catalog.New(catalog.Options{
		Fs:          appFs,
		Sources:     userdata.Sources(root, extras),
		IndexPath:   userdata.IndexPath(state),
		EnabledRoot: userdata.EnabledRoot(state),
		MaxAge:      settings.IndexMaxAge,
		KindOrder:   settings.KindOrder,
		Logger:      logger,
	})
	return nil
}

// optionalKind parses the optional leading kind argument of list-style
// commands. No argument means every kind.
func optionalKind(args []string) (*module.Kind, error) {
	if len(args) == 0 {
		return nil, nil
	}
	k, err := module.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func envLookup(key string) string { return os.Getenv(key) }
