package symbol

import "github.com/vito/sysf/pkg/ast"

// AlphaEquivTypes reports whether a and b are equal up to renaming of bound
// type variables.
func AlphaEquivTypes(a, b ast.Type) bool {
	return DeBruijnType(a) == DeBruijnType(b)
}

// AlphaEquivTerms reports whether a and b are equal up to renaming of bound
// term and type variables.
func AlphaEquivTerms(a, b ast.Term) bool {
	return DeBruijnTerm(a) == DeBruijnTerm(b)
}
