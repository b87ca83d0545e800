// Command oxwm is a dynamic, tiling X11 window manager: it owns the root
// window, arbitrates client placement, draws a per-monitor status bar, and
// dispatches input through a Lua-configured keybinding table.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xsoder/oxwm/internal/config"
	"github.com/xsoder/oxwm/internal/wm"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "oxwm",
		Short: "a dynamic, tiling X11 window manager",
		RunE:  run,
	}
	var initOnly bool
	root.Flags().BoolVar(&initOnly, "init", false, "write the default config template if absent, then exit")
	root.Flags().StringVar(&configPath, "config", "", "use PATH instead of the default config.lua")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		if initOnly {
			return runInit()
		}
		return run(cmd, args)
	}

	if err := root.Execute(); err != nil {
		log.WithField("component", "cli").Error(err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a fatal error to the process exit code. A config load
// failure at WM startup degrades to built-in defaults rather than
// aborting, so exit code 2 is reserved for the one config-related
// failure that has no running WM to degrade into: --init being unable to
// write the template.
func exitCodeFor(err error) int {
	if _, ok := err.(*configLoadError); ok {
		return 2
	}
	return 1
}

type configLoadError struct{ err error }

func (e *configLoadError) Error() string { return e.err.Error() }

func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "oxwm", "config.lua")
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".config", "oxwm", "config.lua")
}

const defaultConfigTemplate = `-- oxwm default configuration
oxwm.set_modkey("Mod4")
oxwm.set_terminal("xterm")
oxwm.set_tags({"1", "2", "3", "4", "5", "6", "7", "8", "9"})

oxwm.border.set_width(2)
oxwm.border.set_focused_color("#88c0d0")
oxwm.border.set_unfocused_color("#3b4252")

oxwm.gaps.set_enabled(false)
oxwm.gaps.set_inner(6, 6)
oxwm.gaps.set_outer(6, 6)

oxwm.bar.set_font("monospace:size=10")

oxwm.key.bind({"Mod", "Shift"}, "Return", oxwm.spawn({"xterm"}))
oxwm.key.bind({"Mod"}, "Q", oxwm.client.kill())
oxwm.key.bind({"Mod"}, "J", oxwm.client.focus_stack(1))
oxwm.key.bind({"Mod"}, "K", oxwm.client.focus_stack(-1))
oxwm.key.bind({"Mod"}, "Space", oxwm.layout.cycle())
oxwm.key.bind({"Mod", "Shift"}, "Q", oxwm.quit())
`

func runInit() error {
	path := configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &configLoadError{err: err}
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return &configLoadError{err: err}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if os.Getenv("DISPLAY") == "" {
		return fmt.Errorf("DISPLAY is not set")
	}

	path := configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.Default()
		if os.IsNotExist(err) {
			log.WithField("component", "config").Infof("%s not found, using built-in defaults", path)
		} else {
			log.WithField("component", "config").Warnf("%s: %v; falling back to defaults", path, err)
			cfg.Degraded = true
			cfg.DegradedMsg = err.Error()
		}
	}

	w, err := wm.New(cfg)
	if err != nil {
		return err
	}
	w.Scan()
	w.RunAutostart()
	w.Run()

	if w.Restarting() {
		return reexec()
	}
	return nil
}

// reexec implements the hot-reload path: release X resources by exiting
// the process, then re-exec argv[0] with the original arguments rather
// than reloading config in-process.
func reexec() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	env := os.Environ()
	if err := syscall.Exec(exe, os.Args, env); err != nil {
		fmt.Fprintf(os.Stderr, "oxwm: restart re-exec failed: %v\n", err)
		os.Exit(1)
	}
	return nil
}
