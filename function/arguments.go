package function

import "fmt"

// Arguments are the decoded, schema-validated arguments of a call
type Arguments map[string]any

// String returns the string argument name, or "" when absent
func (a Arguments) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns the integer argument name. JSON numbers decode as float64.
func (a Arguments) Int(name string) (int, error) {
	switch v := a[name].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("argument %q is not an integer", name)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("argument %q is missing", name)
	default:
		return 0, fmt.Errorf("argument %q has type %T", name, v)
	}
}
