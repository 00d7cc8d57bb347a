// Package host negotiates with the process that loads modules into a shell.
//
// shmod either owns shell startup itself (the native host) or runs inside a
// structurally similar plugin framework such as oh-my-bash or oh-my-zsh. In
// the latter case it registers as one plugin of that framework instead of
// bypassing it. Either way, module files may call optional convenience hooks
// (composure metadata functions, framework helpers); the init script defines
// a no-op for every hook the current host does not provide.
package host
