package ast

import (
	"fmt"
	"strings"
)

// MachineArgument is a typed machine parameter
// Example: "mem: Memory"
type MachineArgument struct {
	Name string
	Type SymbolPath
}

// MachineArguments are the validated parameters of a machine.
type MachineArguments struct {
	Args []MachineArgument
}

// NewMachineArguments validates a parsed parameter list. Every argument
// needs a type, may not be indexed, and names must be unique.
func NewMachineArguments(params []Param) (MachineArguments, error) {
	var args MachineArguments
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p.Index != nil {
			return MachineArguments{}, fmt.Errorf("machine argument `%s` cannot have an index", p.Name)
		}
		if p.Type == nil {
			return MachineArguments{}, fmt.Errorf("machine argument `%s` needs a type", p.Name)
		}
		if seen[p.Name] {
			return MachineArguments{}, fmt.Errorf("duplicate machine argument `%s`", p.Name)
		}
		seen[p.Name] = true
		args.Args = append(args.Args, MachineArgument{Name: p.Name, Type: *p.Type})
	}
	return args, nil
}

// MachineProperty is a raw "key: value" entry before validation.
type MachineProperty struct {
	Key   string
	Value Expr
}

// Recognized machine property keys.
const (
	PropertyDegree        = "degree"
	PropertyMinDegree     = "min_degree"
	PropertyMaxDegree     = "max_degree"
	PropertyLatch         = "latch"
	PropertyOperationID   = "operation_id"
	PropertyCallSelectors = "call_selectors"
)

// MachineProperties are the validated "with" properties of a machine.
// Name-valued properties are empty strings when absent.
type MachineProperties struct {
	Degree        Expr
	MinDegree     Expr
	MaxDegree     Expr
	Latch         string
	OperationID   string
	CallSelectors string
}

// NewMachineProperties validates a property list, rejecting unknown and
// duplicate keys. Latch, operation id and call selectors must be plain
// identifiers.
func NewMachineProperties(props []MachineProperty) (MachineProperties, error) {
	var mp MachineProperties
	seen := make(map[string]bool, len(props))
	for _, prop := range props {
		if seen[prop.Key] {
			return MachineProperties{}, fmt.Errorf("`%s` already defined", prop.Key)
		}
		seen[prop.Key] = true

		switch prop.Key {
		case PropertyDegree:
			mp.Degree = prop.Value
		case PropertyMinDegree:
			mp.MinDegree = prop.Value
		case PropertyMaxDegree:
			mp.MaxDegree = prop.Value
		case PropertyLatch, PropertyOperationID, PropertyCallSelectors:
			name, ok := propertyIdentifier(prop.Value)
			if !ok {
				return MachineProperties{}, fmt.Errorf("`%s` must be an identifier, got `%s`", prop.Key, prop.Value)
			}
			switch prop.Key {
			case PropertyLatch:
				mp.Latch = name
			case PropertyOperationID:
				mp.OperationID = name
			default:
				mp.CallSelectors = name
			}
		default:
			return MachineProperties{}, fmt.Errorf("unknown machine property `%s`", prop.Key)
		}
	}
	return mp, nil
}

func propertyIdentifier(e Expr) (string, bool) {
	ref, ok := e.(*ReferenceExpr)
	if !ok || ref.TypeArgs != nil {
		return "", false
	}
	return ref.Path.TryToIdentifier()
}

// IsEmpty reports whether no property was set.
func (mp MachineProperties) IsEmpty() bool {
	return mp.Degree == nil && mp.MinDegree == nil && mp.MaxDegree == nil &&
		mp.Latch == "" && mp.OperationID == "" && mp.CallSelectors == ""
}

func (mp MachineProperties) String() string {
	var entries []string
	add := func(key string, value string) {
		entries = append(entries, fmt.Sprintf("%s: %s", key, value))
	}
	if mp.Degree != nil {
		add(PropertyDegree, mp.Degree.String())
	}
	if mp.MinDegree != nil {
		add(PropertyMinDegree, mp.MinDegree.String())
	}
	if mp.MaxDegree != nil {
		add(PropertyMaxDegree, mp.MaxDegree.String())
	}
	if mp.Latch != "" {
		add(PropertyLatch, mp.Latch)
	}
	if mp.OperationID != "" {
		add(PropertyOperationID, mp.OperationID)
	}
	if mp.CallSelectors != "" {
		add(PropertyCallSelectors, mp.CallSelectors)
	}
	return strings.Join(entries, ", ")
}
