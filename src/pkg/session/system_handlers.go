package session

import (
	"fmt"

	"treescape/local-app/src/pkg/config"
	"treescape/local-app/src/pkg/model"
)

// initSystemCommandHandlers returns the handlers for the system scope
func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"config": handleSystemConfig,
		"exit":   handleSystemExit,
		"quit":   handleSystemExit,
	}
}

// handleSystemConfig shows the current configuration
func handleSystemConfig(s *Session, cmd model.Command) (interface{}, error) {
	cfg := config.ConfigGet()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	return fmt.Sprintf(
		"database: %s\nlogs: %s\nexports: %s\ndefault tree: %s",
		cfg.DatabaseDir+"/"+cfg.DatabaseFile, cfg.LogFolder, cfg.ExportDir, cfg.DefaultTreeName,
	), nil
}

// handleSystemExit is a no-op; the CLI intercepts exit before dispatch and
// this handler only exists so validation accepts the operation
func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	return nil, nil
}
