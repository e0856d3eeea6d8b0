package dao

// Parameter narrows a List call, e.g. NewParameter("State", "running", "waiting")
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Matches reports whether actual satisfies the parameter value
func (p *Parameter) Matches(actual string) bool {
	switch expect := p.Value.(type) {
	case string:
		return actual == expect
	case []string:
		for _, candidate := range expect {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
