package history

import (
	"bufio"
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// encodeRecord renders one record in the on-disk format, forcing a
// double-quoted scalar for cmd so backslash and newline are always
// escaped the same way regardless of their content.
func encodeRecord(it Item) ([]byte, error) {
	cmdNode := yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: it.Content}
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	mapping.Content = append(mapping.Content,
		strNode("cmd"), cmdNode,
		strNode("when"), intNode(it.When),
	)
	if len(it.Paths) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range it.Paths {
			seq.Content = append(seq.Content, yaml.Node{Kind: yaml.ScalarNode, Value: p})
		}
		mapping.Content = append(mapping.Content, strNode("paths"), seq)
	}

	doc := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{mapping}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	enc.Close()
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func strNode(s string) yaml.Node { return yaml.Node{Kind: yaml.ScalarNode, Value: s} }
func intNode(n int64) yaml.Node {
	return yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: formatInt(n)}
}

func formatInt(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// decodeAll splits data into blank-line-separated blocks (records are
// separated by blank lines per §6) and unmarshals each as a one-element
// record sequence. Comment lines (starting with '#') are stripped
// before parsing. A block that fails to unmarshal is skipped and
// counted as corrupt, except the final block, which is silently
// dropped (truncated tail tolerance).
func decodeAll(data []byte) (items []Item, corrupt int) {
	blocks := splitBlocks(data)
	for i, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var recs []record
		if err := yaml.Unmarshal([]byte(block), &recs); err != nil {
			if i == len(blocks)-1 {
				continue // truncated final record: silently dropped
			}
			corrupt++
			continue
		}
		for _, r := range recs {
			items = append(items, itemFromRecord(r))
		}
	}
	return items, corrupt
}

func splitBlocks(data []byte) []string {
	var blocks []string
	var cur strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if cur.Len() > 0 {
				blocks = append(blocks, cur.String())
				cur.Reset()
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if cur.Len() > 0 {
		blocks = append(blocks, cur.String())
	}
	return blocks
}
