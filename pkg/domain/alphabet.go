package domain

// Alphabet maps every terminal construct to its arity.
type Alphabet map[Label]int

// Check verifies that every node of t carries a known label with the expected
// number of children. It walks iteratively.
func (a Alphabet) Check(t *Tree) error {
	stack := []*Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		arity, ok := a[n.Label]
		if !ok {
			return &LabelError{Label: n.Label, Evaluator: "alphabet"}
		}
		if arity != len(n.Children) {
			return &ArityError{Label: n.Label, Want: arity, Got: len(n.Children)}
		}
		stack = append(stack, n.Children...)
	}
	return nil
}
