package vals

// List is a mutable list. Lists are shared by reference.
type List struct {
	Elems []Value
}

// NewList creates a List holding the given values.
func NewList(elems ...Value) *List {
	return &List{Elems: elems}
}

func (*List) Kind() Kind { return ListKind }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elems) }

// Index returns the element at i, or Null when i is out of range.
func (l *List) Index(i int) Value {
	if i < 0 || i >= len(l.Elems) {
		return Null{}
	}
	return l.Elems[i]
}

// Object is a mutable mapping from string keys to values that remembers the
// order in which keys were first set. Objects are shared by reference.
type Object struct {
	keys []string
	m    map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{m: make(map[string]Value)}
}

// ObjectOf builds an Object from alternating keys and values.
func ObjectOf(kvs ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kvs); i += 2 {
		o.Set(kvs[i].(string), kvs[i+1].(Value))
	}
	return o
}

func (*Object) Kind() Kind { return ObjectKind }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value for key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Set sets the value for key.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.m[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
}

// Delete removes key.
func (o *Object) Delete(key string) {
	if _, ok := o.m[key]; !ok {
		return
	}
	delete(o.m, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}
