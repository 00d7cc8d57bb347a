package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const fileType = "yaml"

// Config keys.
const (
	KeyRoot        = "root"
	KeySources     = "sources"
	KeyIndexMaxAge = "index_max_age"
	KeyKindOrder   = "kind_order"
	KeyLogLevel    = "log_level"
	KeyHost        = "host"
)

// DefaultIndexMaxAge is used when index_max_age is unset or unparsable.
const DefaultIndexMaxAge = 24 * time.Hour

var listKeys = map[string]bool{KeySources: true, KeyKindOrder: true}

var (
	configFs   afero.Fs = afero.NewOsFs()
	configPath string
)

// Keys returns every recognized config key, sorted.
func Keys() []string {
	keys := []string{KeyRoot, KeySources, KeyIndexMaxAge, KeyKindOrder, KeyLogLevel, KeyHost}
	sort.Strings(keys)
	return keys
}

func known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Load initializes Viper to read from the config file at path and the
// environment. A missing file is not an error.
func Load(fs afero.Fs, path string) error {
	configFs, configPath = fs, path

	viper.Reset()
	viper.SetFs(fs)
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRoot, "")
	viper.SetDefault(KeySources, []string{})
	viper.SetDefault(KeyIndexMaxAge, DefaultIndexMaxAge.String())
	viper.SetDefault(KeyKindOrder, kindNames(module.DefaultOrder()))
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHost, "")

	if ok, _ := afero.Exists(fs, path); !ok {
		return nil
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// FilePath returns the config file Load was pointed at.
func FilePath() string { return configPath }

// Get returns a config value by key. Lists are joined with commas.
// Returns empty string if not set.
func Get(key string) string {
	if listKeys[key] {
		return strings.Join(stringList(viper.Get(key), splitterFor(key)), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair to the config file. List keys take a
// comma-separated value; an empty value removes the key. The updated file
// must pass schema validation before it is written.
func Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if configPath == "" {
		return errors.New("config not loaded")
	}

	doc := map[string]interface{}{}
	data, err := afero.ReadFile(configFs, configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config %s: %w", configPath, err)
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("reading config %s: %w", configPath, err)
	}

	switch {
	case value == "":
		delete(doc, key)
	case listKeys[key]:
		doc[key] = splitList(value, ",")
	default:
		doc[key] = value
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	res, err := Validate(out)
	if err != nil {
		return err
	}
	if !res.Valid {
		msgs := make([]string, len(res.Issues))
		for i, issue := range res.Issues {
			msgs[i] = issue.String()
		}
		return fmt.Errorf("invalid value for %s: %s", key, strings.Join(msgs, "; "))
	}

	if err := platform.WriteFileAtomic(configFs, configPath, out, platform.FilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	return nil
}

// Settings is the typed view of the effective configuration.
type Settings struct {
	Root        string
	Sources     []string
	IndexMaxAge time.Duration
	KindOrder   module.Order
	LogLevel    string
	Host        string

	// Problems lists values that could not be used; defaults were
	// substituted for them.
	Problems []string
}

// Current returns the effective settings. Unusable values fall back to
// their defaults and are reported in Problems.
func Current() Settings {
	s := Settings{
		Root:     viper.GetString(KeyRoot),
		LogLevel: strings.ToLower(viper.GetString(KeyLogLevel)),
		Host:     viper.GetString(KeyHost),
	}

	for _, dir := range stringList(viper.Get(KeySources), splitterFor(KeySources)) {
		s.Sources = append(s.Sources, expandHome(dir))
	}
	if s.Root != "" {
		s.Root = expandHome(s.Root)
	}

	s.IndexMaxAge = DefaultIndexMaxAge
	if raw := viper.GetString(KeyIndexMaxAge); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			s.Problems = append(s.Problems, fmt.Sprintf("%s: %v", KeyIndexMaxAge, err))
		} else {
			s.IndexMaxAge = d
		}
	}

	s.KindOrder = module.DefaultOrder()
	if names := stringList(viper.Get(KeyKindOrder), splitterFor(KeyKindOrder)); len(names) > 0 {
		order, err := module.ParseOrder(names)
		if err != nil {
			s.Problems = append(s.Problems, fmt.Sprintf("%s: %v", KeyKindOrder, err))
		} else {
			s.KindOrder = order
		}
	}
	return s
}

// stringList normalizes a list setting. Values from the config file are
// YAML sequences; values from the environment are strings cut by split.
func stringList(v interface{}, split func(string) []string) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return split(val)
	default:
		return []string{fmt.Sprint(val)}
	}
}

// splitterFor returns how an environment string is cut for key: source
// directories are separated like PATH, kinds by commas or spaces.
func splitterFor(key string) func(string) []string {
	if key == KeySources {
		return func(s string) []string { return splitList(s, string(os.PathListSeparator)) }
	}
	return func(s string) []string {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func kindNames(order module.Order) []string {
	out := make([]string, len(order))
	for i, k := range order {
		out[i] = k.String()
	}
	return out
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
