package cli

import "fmt"

// helpText maps a scope to its command descriptions
var helpText = map[string][]string{
	"node": {
		"node add                     add a child under the active node",
		"node delete                  delete the active node and its subtree",
		"node select <id>|root|none   change the active node",
		"node rename <label>          change the label of the active node",
		"node list                    show the tree grouped by level",
	},
	"tree": {
		"tree reset                   discard the tree and start over",
		"tree save [name]             save the tree as a named snapshot",
		"tree load <name>             load a saved snapshot",
		"tree list                    list saved snapshots",
		"tree delete <name>           delete a saved snapshot",
		"tree export <file> [format]  export the tree (json, xml or yaml)",
		"tree import <file> [format]  import a tree (json, xml or yaml)",
	},
	"system": {
		"system config                show the current configuration",
		"exit | quit                  leave the application",
	},
}

// printHelp shows help for all scopes, or for the scopes given as arguments
func (c *CLI) printHelp(scopes []string) {
	if len(scopes) == 0 {
		scopes = []string{"node", "tree", "system"}
	}
	for _, scope := range scopes {
		lines, ok := helpText[scope]
		if !ok {
			fmt.Printf("No help available for '%s'\n", scope)
			continue
		}
		fmt.Printf("%s commands:\n", scope)
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
	}
}
