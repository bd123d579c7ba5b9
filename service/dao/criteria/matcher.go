package criteria

import (
	"github.com/viant/correlations/service/dao"
)

// Field returns the entity value for the named filter, and false when the
// entity has no such field.
type Field func(name string) (string, bool)

// Match reports whether the entity satisfies every parameter. Parameters
// naming an unknown field are ignored.
func Match(field Field, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		value, ok := field(parameter.Name)
		if !ok {
			continue
		}
		if !matchValue(value, parameter.Value) {
			return false
		}
	}
	return true
}

func matchValue(value string, expected interface{}) bool {
	switch actual := expected.(type) {
	case string:
		return value == actual
	case []string:
		for _, candidate := range actual {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return true
}
