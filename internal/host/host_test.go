package host

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"no framework", map[string]string{}, "native"},
		{"oh-my-bash", map[string]string{"OSH": "/home/u/.oh-my-bash"}, "oh-my-bash"},
		{"oh-my-zsh", map[string]string{"ZSH": "/home/u/.oh-my-zsh"}, "oh-my-zsh"},
		{"forced native", map[string]string{"OSH": "/x", "SHMOD_HOST": "native"}, "native"},
		{"forced zsh", map[string]string{"SHMOD_HOST": "OH-MY-ZSH"}, "oh-my-zsh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Detect(MapEnv(tt.env))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if h.Name() != tt.want {
				t.Errorf("Detect() = %s, want %s", h.Name(), tt.want)
			}
		})
	}
}

func TestDetectUnknownForcedHost(t *testing.T) {
	if _, err := Detect(MapEnv(map[string]string{"SHMOD_HOST": "prezto"})); err == nil {
		t.Error("expected error for unknown forced host")
	}
}

func TestPluginFile(t *testing.T) {
	tests := []struct {
		name string
		host Host
		env  map[string]string
		want string
	}{
		{"omb default custom", OhMyBash{}, map[string]string{"OSH": "/omb"}, "/omb/custom/plugins/shmod/shmod.plugin.sh"},
		{"omb explicit custom", OhMyBash{}, map[string]string{"OSH": "/omb", "OSH_CUSTOM": "/mine"}, "/mine/plugins/shmod/shmod.plugin.sh"},
		{"omz default custom", OhMyZsh{}, map[string]string{"ZSH": "/omz"}, "/omz/custom/plugins/shmod/shmod.plugin.zsh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.host.PluginFile(MapEnv(tt.env))
			if err != nil {
				t.Fatal(err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("PluginFile() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := (OhMyBash{}).PluginFile(MapEnv(nil)); err == nil {
		t.Error("expected error when no framework directory is known")
	}
	if _, err := (Native{}).PluginFile(MapEnv(nil)); !errors.Is(err, ErrNativeHost) {
		t.Errorf("native PluginFile err = %v, want ErrNativeHost", err)
	}
}

func TestStubsSkipHostProvidedHooks(t *testing.T) {
	native := Stubs(Native{})
	if len(native) != len(Capabilities()) {
		t.Errorf("native host should stub every hook, got %d of %d", len(native), len(Capabilities()))
	}

	for _, name := range Stubs(OhMyBash{}) {
		if name == "_omb_module_require" || name == "_omb_util_alias" {
			t.Errorf("oh-my-bash provides %s; it must not be stubbed", name)
		}
	}
	found := false
	for _, name := range Stubs(OhMyBash{}) {
		if name == "about-plugin" {
			found = true
		}
	}
	if !found {
		t.Error("composure hooks should still be stubbed under oh-my-bash")
	}
}

func TestIsForeign(t *testing.T) {
	if IsForeign(Native{}) {
		t.Error("native is not foreign")
	}
	if !IsForeign(OhMyZsh{}) {
		t.Error("oh-my-zsh is foreign")
	}
}
