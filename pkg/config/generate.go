package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# pubtree project settings
# Place this file as .pubtree.toml in the input directory.
`

// GenerateConfigContent renders s as a .pubtree.toml. With commented set,
// every value line is commented out so the file documents the values
// without overriding anything.
func GenerateConfigContent(s *Settings, commented bool) (string, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return "", err
	}
	content := generatedHeader + "\n" + string(data)
	if commented {
		content = commentOutConfigValues(content)
	}
	return content, nil
}

// commentOutConfigValues comments out every line holding a value, keeping
// blank lines, comments and section headers.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
