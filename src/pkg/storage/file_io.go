package storage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"treescape/local-app/src/pkg/model"
)

// FileExport exports a tree to a file in the specified format (JSON, XML or YAML).
func FileExport(root *model.Node, filename string, format string) error {
	if root == nil {
		return fmt.Errorf("cannot export: no root node")
	}

	// Marshal the tree to the specified format
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write the data to the file
	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport imports a tree from a file in the specified format (JSON, XML or
// YAML). The returned root is raw: parent links and levels are not yet wired
// up, which is the job of tree.Restore.
func FileImport(filename string, format string) (*model.Node, error) {
	// Read the file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal the data into a node structure
	var root model.Node
	switch format {
	case "json":
		err = json.Unmarshal(data, &root)
	case "xml":
		err = xml.Unmarshal(data, &root)
	case "yaml":
		err = yaml.Unmarshal(data, &root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &root, nil
}
