// internal/attribute/list.go
package attribute

// Attribute is one named int32 value attached to an output frame.
type Attribute struct {
	Name        string
	Description string
	Value       int32
}

// List is an ordered attribute list.
// Adding a name that already exists replaces its value in place.
type List struct {
	attrs []Attribute
	index map[string]int
}

func NewList() *List {
	return &List{index: make(map[string]int)}
}

func (l *List) Add(name, description string, value int32) {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[name]; ok {
		l.attrs[i] = Attribute{Name: name, Description: description, Value: value}
		return
	}
	l.index[name] = len(l.attrs)
	l.attrs = append(l.attrs, Attribute{Name: name, Description: description, Value: value})
}

// Get returns the attribute stored under name.
func (l *List) Get(name string) (Attribute, bool) {
	i, ok := l.index[name]
	if !ok {
		return Attribute{}, false
	}
	return l.attrs[i], true
}

func (l *List) Len() int {
	return len(l.attrs)
}

// All returns a copy of the attributes in insertion order.
func (l *List) All() []Attribute {
	out := make([]Attribute, len(l.attrs))
	copy(out, l.attrs)
	return out
}
