package symbol

import "github.com/vito/sysf/pkg/ast"

// Fresh returns base, primed with trailing underscores until it is contained
// in none of the avoid sets.
func Fresh(base ast.Identifier, avoid ...VarSet) ast.Identifier {
	name := base
	for taken(name, avoid) {
		name += "_"
	}
	return name
}

func taken(name ast.Identifier, sets []VarSet) bool {
	for _, set := range sets {
		if set.Contains(name) {
			return true
		}
	}
	return false
}
