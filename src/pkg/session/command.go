package session

import (
	"context"
	"errors"
	"fmt"

	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
)

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new session Command from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks if the command is valid
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating command", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	if c.command.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}
	if c.command.Operation == "" {
		c.logger.Error(ctx, "Command operation is empty", nil)
		return errors.New("command operation is required")
	}
	return c.validateScopeAndOperation()
}

// validateScopeAndOperation checks if the scope and operation are valid
func (c *Command) validateScopeAndOperation() error {
	ctx := context.Background()

	switch c.command.Scope {
	case "node":
		return c.validateNodeCommand()
	case "tree":
		return c.validateTreeCommand()
	case "system":
		return c.validateSystemCommand()
	default:
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}
}

func (c *Command) validateNodeCommand() error {
	ctx := context.Background()

	switch c.command.Operation {
	case "add", "delete", "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for node command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("node %s command does not accept any arguments", c.command.Operation)
		}
	case "select":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for node select command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node select command requires 1 argument: <id>|root|none")
		}
	case "rename":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for node rename command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("node rename command requires 1 argument: <label>")
		}
	default:
		c.logger.Error(ctx, "Invalid node operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid node operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateTreeCommand() error {
	ctx := context.Background()

	switch c.command.Operation {
	case "reset", "list":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for tree command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("tree %s command does not accept any arguments", c.command.Operation)
		}
	case "save":
		if len(c.command.Args) > 1 {
			c.logger.Error(ctx, "Invalid number of arguments for tree save command", log.Fields{"argCount": len(c.command.Args)})
			return errors.New("tree save command requires 0 or 1 argument: [tree_name]")
		}
	case "load", "delete":
		if len(c.command.Args) != 1 {
			c.logger.Error(ctx, "Invalid number of arguments for tree command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("tree %s command requires 1 argument: <tree_name>", c.command.Operation)
		}
	case "import", "export":
		if len(c.command.Args) < 1 || len(c.command.Args) > 2 {
			c.logger.Error(ctx, "Invalid number of arguments for tree import/export command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("tree %s command requires 1 or 2 arguments: <filename> [json|xml|yaml]", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid tree operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid tree operation: %s", c.command.Operation)
	}
	return nil
}

func (c *Command) validateSystemCommand() error {
	ctx := context.Background()

	switch c.command.Operation {
	case "exit", "quit", "config":
		if len(c.command.Args) != 0 {
			c.logger.Error(ctx, "Invalid number of arguments for system command", log.Fields{"operation": c.command.Operation, "argCount": len(c.command.Args)})
			return fmt.Errorf("system %s command does not accept any arguments", c.command.Operation)
		}
	default:
		c.logger.Error(ctx, "Invalid system operation", log.Fields{"operation": c.command.Operation})
		return fmt.Errorf("invalid system operation: %s", c.command.Operation)
	}
	return nil
}
