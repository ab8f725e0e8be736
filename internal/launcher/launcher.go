package launcher

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens trailer, IMDb and homepage links outside the terminal.
// It implements domain.URLOpener.
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	// start runs a command without waiting for it
	start    func(name string, args ...string) error
	lookPath func(file string) (string, error)
}

// New creates a Launcher. An empty command uses the system default handler.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     append([]string{}, args...),
		goos:     runtime.GOOS,
		logger:   logger,
		start:    startCommand,
		lookPath: exec.LookPath,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens an http(s) URL in the configured browser or system default
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not a web URL", rawURL)
	}

	if l.command != "" {
		return l.openConfigured(rawURL)
	}
	return l.openDefault(rawURL)
}

// openConfigured opens the URL with the configured browser
func (l *Launcher) openConfigured(rawURL string) error {
	args := append([]string{}, l.args...)

	// On macOS, GUI browsers are usually app bundles rather than PATH commands
	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, rawURL)
			l.logger.Info("using macOS 'open -a' to launch browser", "app", l.command, "args", cmdArgs)
			return l.start("open", cmdArgs...)
		}
	}

	args = append(args, rawURL)
	l.logger.Info("launching browser", "command", l.command, "args", args)
	return l.start(l.command, args...)
}

// openDefault opens the URL using the system default handler
func (l *Launcher) openDefault(rawURL string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", rawURL)

	switch l.goos {
	case "darwin":
		return l.start("open", rawURL)
	case "windows":
		return l.start("cmd", "/c", "start", "", rawURL)
	default:
		// Linux and other Unix-like systems
		return l.start("xdg-open", rawURL)
	}
}
