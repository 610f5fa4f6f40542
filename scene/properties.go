package scene

import "sort"

// Properties is an unordered set of property names to values, carried on Nodes. Properties round-trip through
// glTF node extras.
type Properties struct {
	props map[string]any
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]any{}}
}

// Clone returns a copy of the Properties object.
func (props *Properties) Clone() *Properties {
	newProps := NewProperties()
	for k, v := range props.props {
		newProps.props[k] = v
	}
	return newProps
}

// Clear clears the Properties object of all properties.
func (props *Properties) Clear() {
	props.props = map[string]any{}
}

// Remove removes the property specified from the Properties object.
func (props *Properties) Remove(propName string) {
	delete(props.props, propName)
}

// Get returns the value associated with the specified property name, and whether it was set at all.
func (props *Properties) Get(propName string) (any, bool) {
	value, ok := props.props[propName]
	return value, ok
}

// Set sets the property by the given name to the given value.
func (props *Properties) Set(propName string, value any) {
	props.props[propName] = value
}

// Names returns the names of all set properties, sorted.
func (props *Properties) Names() []string {
	names := make([]string, 0, len(props.props))
	for k := range props.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns how many properties are set.
func (props *Properties) Len() int {
	return len(props.props)
}
