package ast

// Walk visits every node of the tree rooted at root in post-order: children
// left to right, then the node itself.
func Walk(root Node, f func(Node)) {
	switch n := root.(type) {
	case *Integer, *Boolean, *Variable, *TyName:
	case *Abstraction:
		Walk(n.Parameter, f)
		Walk(n.Body, f)
	case *Application:
		Walk(n.Function, f)
		Walk(n.Argument, f)
	case *If:
		Walk(n.Condition, f)
		Walk(n.Consequent, f)
		Walk(n.Alternative, f)
	case *Ascription:
		Walk(n.Expression, f)
		Walk(n.Type, f)
	case *TyFn:
		Walk(n.Parameter, f)
		Walk(n.Result, f)
	}
	f(root)
}
