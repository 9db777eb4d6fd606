package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	mappingPairSeparator  = "|"
	mappingValueSeparator = "*"
)

// URLMapping one source -> target asset URL prefix rewrite
// URLMapping 资源 URL 前缀映射
type URLMapping struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// AssetURLMapping ordered list of prefix rewrites. In YAML it is either a
// list of {source, target} or the legacy "src*dst|src*dst" string.
// AssetURLMapping 有序的 URL 映射，YAML 中可以是列表或旧的字符串格式
type AssetURLMapping []URLMapping

// ParseAssetURLMapping parses the legacy pipe/asterisk form. Every pair must
// have exactly one source and one target.
// ParseAssetURLMapping 解析旧格式，每一对必须恰好包含源和目标
func ParseAssetURLMapping(s string) (AssetURLMapping, error) {
	var m AssetURLMapping
	for _, pair := range strings.Split(s, mappingPairSeparator) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tokens := strings.Split(pair, mappingValueSeparator)
		if len(tokens) != 2 || strings.TrimSpace(tokens[0]) == "" || strings.TrimSpace(tokens[1]) == "" {
			return nil, fmt.Errorf("asset url mapping %q: want source%starget", pair, mappingValueSeparator)
		}
		m = append(m, URLMapping{Source: strings.TrimSpace(tokens[0]), Target: strings.TrimSpace(tokens[1])})
	}
	return m, nil
}

// UnmarshalYAML accepts both encodings
func (m *AssetURLMapping) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseAssetURLMapping(node.Value)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case yaml.SequenceNode:
		var list []URLMapping
		if err := node.Decode(&list); err != nil {
			return err
		}
		for i, p := range list {
			if p.Source == "" || p.Target == "" {
				return fmt.Errorf("asset url mapping #%d: source and target are required", i+1)
			}
		}
		*m = list
		return nil
	}
	return fmt.Errorf("asset url mapping: unsupported yaml node at line %d", node.Line)
}

// Map returns the mapping as source -> target
func (m AssetURLMapping) Map() map[string]string {
	out := make(map[string]string, len(m))
	for _, p := range m {
		out[p.Source] = p.Target
	}
	return out
}

// String renders the legacy form
func (m AssetURLMapping) String() string {
	parts := make([]string, 0, len(m))
	for _, p := range m {
		parts = append(parts, p.Source+mappingValueSeparator+p.Target)
	}
	return strings.Join(parts, mappingPairSeparator)
}
