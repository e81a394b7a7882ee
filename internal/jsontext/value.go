package jsontext

// Value is a sealed interface over the JSON data model.
// Only Null, Bool, Number, String, Array, and Object implement it.
type Value interface {
	jsonValue()
}

// Null is the JSON null literal.
type Null struct{}

func (Null) jsonValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Number is a JSON number kept as its literal text.
type Number string

func (Number) jsonValue() {}

// String is a JSON string.
type String string

func (String) jsonValue() {}

// Array is an ordered JSON array.
type Array []Value

func (Array) jsonValue() {}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with members in document order.
// Parse never produces two members with the same key.
type Object []Member

func (Object) jsonValue() {}

// Get returns the value of the last member named key.
func (o Object) Get(key string) (Value, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns member keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}
