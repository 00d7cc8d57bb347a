package host

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shmod-labs/shmod/internal/branding"
)

// ErrNativeHost is returned by operations that need a foreign host when
// none was detected.
var ErrNativeHost = errors.New("no foreign plugin host detected")

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(key string) string

// MapEnv returns an Env backed by m.
func MapEnv(m map[string]string) Env {
	return func(key string) string { return m[key] }
}

// Host is a process that loads module files into a shell session.
type Host interface {
	// Name identifies the host, e.g. "oh-my-bash".
	Name() string
	// Shell is the shell dialect the host runs ("bash" or "zsh").
	Shell() string
	// Detect reports whether the current process runs under this host.
	Detect(env Env) bool
	// Hooks lists the optional hook functions the host defines itself.
	Hooks() []string
	// PluginFile is where a plugin named after the CLI lives for this host.
	PluginFile(env Env) (string, error)
}

// Native is the fallback host: shmod's own init script owns startup.
type Native struct{}

func (Native) Name() string                   { return "native" }
func (Native) Shell() string                  { return "bash" }
func (Native) Detect(Env) bool                { return true }
func (Native) Hooks() []string                { return nil }
func (Native) PluginFile(Env) (string, error) { return "", ErrNativeHost }

// OhMyBash is the oh-my-bash framework, detected through $OSH.
type OhMyBash struct{}

func (OhMyBash) Name() string  { return "oh-my-bash" }
func (OhMyBash) Shell() string { return "bash" }

func (OhMyBash) Detect(env Env) bool { return env("OSH") != "" }

func (OhMyBash) Hooks() []string {
	return []string{"_omb_module_require", "_omb_util_alias"}
}

func (h OhMyBash) PluginFile(env Env) (string, error) {
	custom, err := customDir(env, "OSH_CUSTOM", "OSH")
	if err != nil {
		return "", err
	}
	name := branding.PluginName()
	return filepath.Join(custom, "plugins", name, name+".plugin.sh"), nil
}

// OhMyZsh is the oh-my-zsh framework, detected through $ZSH.
type OhMyZsh struct{}

func (OhMyZsh) Name() string  { return "oh-my-zsh" }
func (OhMyZsh) Shell() string { return "zsh" }

func (OhMyZsh) Detect(env Env) bool { return env("ZSH") != "" }

func (OhMyZsh) Hooks() []string { return []string{"compdef"} }

func (h OhMyZsh) PluginFile(env Env) (string, error) {
	custom, err := customDir(env, "ZSH_CUSTOM", "ZSH")
	if err != nil {
		return "", err
	}
	name := branding.PluginName()
	return filepath.Join(custom, "plugins", name, name+".plugin.zsh"), nil
}

func customDir(env Env, customVar, rootVar string) (string, error) {
	if v := env(customVar); v != "" {
		return v, nil
	}
	if v := env(rootVar); v != "" {
		return filepath.Join(v, "custom"), nil
	}
	return "", fmt.Errorf("neither $%s nor $%s is set", customVar, rootVar)
}

// Known returns the foreign hosts in detection order.
func Known() []Host {
	return []Host{OhMyBash{}, OhMyZsh{}}
}

// Lookup returns the host with the given name, including "native".
func Lookup(name string) (Host, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == (Native{}).Name() {
		return Native{}, true
	}
	for _, h := range Known() {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// Detect picks the host for this process. <PREFIX>_HOST forces a host by
// name; otherwise the first foreign host whose detection matches wins, and
// Native is the fallback.
func Detect(env Env) (Host, error) {
	if forced := env(branding.EnvVar("HOST")); forced != "" {
		h, ok := Lookup(forced)
		if !ok {
			return nil, fmt.Errorf("unknown host %q in $%s", forced, branding.EnvVar("HOST"))
		}
		return h, nil
	}
	for _, h := range Known() {
		if h.Detect(env) {
			return h, nil
		}
	}
	return Native{}, nil
}

// IsForeign reports whether h is a plugin framework other than shmod itself.
func IsForeign(h Host) bool {
	_, native := h.(Native)
	return !native
}
