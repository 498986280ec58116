package syntax

const OtherOperator = "other_operator"

var knownOperators = map[string]bool{
	"+":  true,
	"-":  true,
	"*":  true,
	"/":  true,
	"==": true,
	"<":  true,
	"<=": true,
	"!=": true,
	">=": true,
	">":  true,
}

// NormalizeOperator maps a binary operator to its rendered symbol. Operators
// outside the arithmetic and comparison set render as OtherOperator.
func NormalizeOperator(op string) string {
	if knownOperators[op] {
		return op
	}
	return OtherOperator
}
