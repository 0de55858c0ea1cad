package commands

import (
	"strings"

	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// CommandLogger returns the logger a command module should hand to its
// handlers. Loggers are named "pagekit.commands.<module>" and always carry
// the component and command_module fields so every execution log entry has
// the same shape regardless of which module emitted it.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, "pagekit.commands."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
