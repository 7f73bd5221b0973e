package ast

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

var (
	yamlPositionType = reflect.TypeOf(Position{})
	yamlPathType     = reflect.TypeOf(SymbolPath{})
	yamlBigIntType   = reflect.TypeOf((*big.Int)(nil))
	yamlStringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// ToYAML converts a syntax tree into a YAML document node. Nodes held by
// pointer become mappings whose first key names their type. Symbol paths,
// operators and positions collapse to scalars. Nil fields are omitted.
func ToYAML(tree any) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{yamlValue(reflect.ValueOf(tree))},
	}
}

// DumpYAML renders a syntax tree with ToYAML.
func DumpYAML(tree any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToYAML(tree)); err != nil {
		return nil, fmt.Errorf("encoding syntax tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding syntax tree: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlValue(v reflect.Value) *yaml.Node {
	if !v.IsValid() {
		return yamlScalar("!!null", "~")
	}

	switch v.Type() {
	case yamlBigIntType:
		if v.IsNil() {
			return yamlScalar("!!null", "~")
		}
		return yamlScalar("!!int", v.Interface().(*big.Int).String())
	case yamlPositionType, yamlPathType:
		return yamlScalar("!!str", v.Interface().(fmt.Stringer).String())
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return yamlScalar("!!null", "~")
		}
		return yamlValue(v.Elem())
	case reflect.Ptr:
		if v.IsNil() {
			return yamlScalar("!!null", "~")
		}
		node := yamlValue(v.Elem())
		if node.Kind == yaml.MappingNode {
			tag := []*yaml.Node{yamlScalar("!!str", "node"), yamlScalar("!!str", v.Elem().Type().Name())}
			node.Content = append(tag, node.Content...)
		}
		return node
	case reflect.Struct:
		return yamlStruct(v)
	case reflect.Slice, reflect.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v.Len() == 0 {
			seq.Style = yaml.FlowStyle
		}
		for i := 0; i < v.Len(); i++ {
			seq.Content = append(seq.Content, yamlValue(v.Index(i)))
		}
		return seq
	case reflect.String:
		return yamlScalar("!!str", v.String())
	case reflect.Bool:
		return yamlScalar("!!bool", strconv.FormatBool(v.Bool()))
	}

	if v.Type().Implements(yamlStringerType) {
		return yamlScalar("!!str", v.Interface().(fmt.Stringer).String())
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return yamlScalar("!!int", strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return yamlScalar("!!int", strconv.FormatUint(v.Uint(), 10))
	}
	return yamlScalar("!!str", fmt.Sprint(v.Interface()))
}

func yamlStruct(v reflect.Value) *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if isNilField(fv) || (field.Type == yamlPositionType && fv.IsZero()) {
			continue
		}
		mapping.Content = append(mapping.Content, yamlScalar("!!str", strcase.ToSnake(field.Name)), yamlValue(fv))
	}
	if len(mapping.Content) == 0 {
		mapping.Style = yaml.FlowStyle
	}
	return mapping
}

func isNilField(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
