package m3u8

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadHeaders loads custom HTTP headers from a YAML or JSON file mapping
// header names to values. An empty path yields no headers.
func LoadHeaders(headersFile string) (map[string]string, error) {
	if headersFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(headersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers file: %w", err)
	}

	var headers map[string]string
	if err := yaml.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("failed to parse headers file: %w", err)
	}

	return headers, nil
}
