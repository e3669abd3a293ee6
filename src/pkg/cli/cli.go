// Package cli provides the interactive command-line interface of the
// Treescape application.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"treescape/local-app/src/pkg/log"
	"treescape/local-app/src/pkg/model"
	"treescape/local-app/src/pkg/session"
)

// CLI represents the command-line interface
type CLI struct {
	sessionManager *session.SessionManager
	sessionID      string
	rl             *readline.Instance
	logger         *log.Logger
}

// NewCLI creates a new CLI instance with its own session
func NewCLI(sessionManager *session.SessionManager, cfg *model.Config, logger *log.Logger) (*CLI, error) {
	sessionID, err := sessionManager.SessionAdd()
	if err != nil {
		return nil, fmt.Errorf("failed to create CLI session: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &CLI{
		sessionManager: sessionManager,
		sessionID:      sessionID,
		rl:             rl,
		logger:         logger,
	}, nil
}

// Run starts the CLI and handles user input
func (c *CLI) Run() error {
	fmt.Println("Welcome to Treescape CLI!")
	fmt.Println("Type 'help' for a list of commands or 'exit' to quit.")

	defer func() { _ = c.rl.Close() }()

	for {
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" {
			break
		}

		if strings.HasPrefix(line, "help") {
			args := strings.Fields(line)
			c.printHelp(args[1:])
			continue
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		result, err := c.sessionManager.CommandRun(c.sessionID, cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else if s, ok := result.(string); ok && s != "" {
			fmt.Println(strings.TrimRight(s, "\n"))
		} else if result != nil {
			fmt.Printf("%v\n", result)
		}
	}

	c.logger.Info(context.Background(), "CLI loop finished", nil)
	return nil
}

// Stop interrupts the CLI loop and cleans up its session
func (c *CLI) Stop() {
	c.sessionManager.SessionDelete(c.sessionID)
	if err := c.rl.Close(); err != nil {
		fmt.Printf("Error closing readline: %v\n", err)
	}
}

// parseCommand parses an input line into a model.Command
func parseCommand(input string) (model.Command, error) {
	args := parseArgs(input)
	if len(args) == 0 {
		return model.Command{}, fmt.Errorf("empty command")
	}

	// Bare exit/quit map to the system scope
	if args[0] == "exit" || args[0] == "quit" {
		return model.Command{Scope: "system", Operation: args[0]}, nil
	}

	if len(args) < 2 {
		return model.Command{}, fmt.Errorf("command requires a scope and an operation, e.g. 'node add'")
	}

	return model.Command{
		Scope:     args[0],
		Operation: args[1],
		Args:      args[2:],
	}, nil
}

// parseArgs splits an input line into arguments, keeping double-quoted
// sections together
func parseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}
