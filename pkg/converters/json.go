package converters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/lenient/pkg/core"
)

// JSON returns the converters between canonical JSON and lenient JSON.
//
// Lenient JSON is the block-style YAML rendering of the same value: no
// braces, brackets, commas or quotes where they are not needed. Key order
// is preserved in both directions.
func JSON() core.ConverterSet {
	return core.ConverterSet{
		Language:         core.LanguageJSON,
		ToLenient:        jsonToLenient,
		ToCanonical:      lenientToJSON,
		LenientToLenient: lenientJSONToLenient,
	}
}

func jsonToLenient(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return "", jsonParseError(text, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return "", yamlParseError(err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return "", &core.ParseError{Language: core.LanguageJSON, Message: err.Error(), Err: err}
	}
	if err := encoder.Close(); err != nil {
		return "", &core.ParseError{Language: core.LanguageJSON, Message: err.Error(), Err: err}
	}
	return buf.String(), nil
}

func lenientToJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return "", yamlParseError(err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, &doc, 0); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

func lenientJSONToLenient(text string) (string, error) {
	canonical, err := lenientToJSON(text)
	if err != nil {
		return "", err
	}
	return jsonToLenient(canonical)
}

// blockStyle drops flow and quoting styles so the encoder picks the
// plainest rendering that still resolves to the same value.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0], depth)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nodeError(n, "dangling alias")
		}
		return writeJSON(buf, n.Alias, depth)

	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nodeError(key, "object keys must be scalars")
			}
			indent(buf, depth+1)
			writeString(buf, key.Value)
			buf.WriteString(": ")
			if err := writeJSON(buf, value, depth+1); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			indent(buf, depth+1)
			if err := writeJSON(buf, item, depth+1); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeScalar(buf, n)
	}
	return nodeError(n, fmt.Sprintf("unexpected node kind %d", n.Kind))
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nodeError(n, err.Error())
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nodeError(n, err.Error())
		}
		buf.WriteString(strconv.FormatInt(i, 10))
	case "!!float":
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nodeError(n, err.Error())
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nodeError(n, fmt.Sprintf("%s has no JSON representation", n.Value))
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		writeString(buf, n.Value)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	encoder := json.NewEncoder(&tmp)
	encoder.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = encoder.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func nodeError(n *yaml.Node, msg string) error {
	return &core.ParseError{Language: core.LanguageJSON, Message: msg, Line: n.Line, Column: n.Column}
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func yamlParseError(err error) error {
	pe := &core.ParseError{Language: core.LanguageJSON, Message: strings.TrimPrefix(err.Error(), "yaml: "), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

func jsonParseError(text string, err error) error {
	pe := &core.ParseError{Language: core.LanguageJSON, Message: err.Error(), Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line, pe.Column = lineColumn(text, int(syntaxErr.Offset))
	}
	return pe
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")
	return line, column
}
