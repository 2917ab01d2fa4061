package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Field is one frontmatter entry. Header keeps fields in insertion order so
// exported documents read the same way every time.
type Field struct {
	Key   string
	Value any
}

type Header []Field

func (h Header) node() (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range h {
		value := &yaml.Node{}
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Key, err)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			value,
		)
	}
	return mapping, nil
}

// Compose writes header as a YAML frontmatter block followed by body.
// Fields with empty string values are left out.
func Compose(header Header, body string) (string, error) {
	kept := make(Header, 0, len(header))
	for _, f := range header {
		if s, ok := f.Value.(string); ok && s == "" {
			continue
		}
		kept = append(kept, f)
	}
	node, err := kept.node()
	if err != nil {
		return "", err
	}
	raw, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fence + "\n")
	if len(kept) > 0 {
		sb.Write(raw)
	}
	sb.WriteString(fence + "\n\n")
	sb.WriteString(strings.TrimLeft(body, "\n"))
	return sb.String(), nil
}

// SplitFrontmatter separates a leading frontmatter block from the body.
// Content without a block comes back unchanged with empty metadata.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, fence+"\n") {
		return map[string]any{}, content, nil
	}
	lines := strings.Split(normalized, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == fence {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, "", fmt.Errorf("frontmatter: missing closing %q", fence)
	}

	meta := map[string]any{}
	if raw := strings.Join(lines[1:end], "\n"); strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
			return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
		}
	}
	body := strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
	return meta, body, nil
}
