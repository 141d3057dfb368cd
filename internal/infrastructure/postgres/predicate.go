package postgres

import (
	"fmt"
	"strings"
)

// predicates arma cláusulas WHERE con placeholders posicionales.
// Cada condición lleva exactamente un "?" que se reemplaza por $n; los valores nunca se concatenan al SQL.
type predicates struct {
	clauses []string
	args    []any
}

// add agrega la condición si arg no es el valor cero ("" / 0 / nil).
func (p *predicates) add(cond string, arg any) {
	if isZero(arg) {
		return
	}
	p.addAlways(cond, arg)
}

// addAlways agrega la condición sin mirar el valor.
func (p *predicates) addAlways(cond string, arg any) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(p.args)), 1))
}

// raw agrega una condición sin parámetros.
func (p *predicates) raw(cond string) {
	p.clauses = append(p.clauses, cond)
}

// where devuelve " WHERE a AND b" o "" si no hay condiciones.
func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// page agrega LIMIT/OFFSET como parámetros. limit <= 0 no limita.
func (p *predicates) page(limit, offset int) string {
	var sb strings.Builder
	if limit > 0 {
		p.args = append(p.args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(p.args))
	}
	if offset > 0 {
		p.args = append(p.args, offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(p.args))
	}
	return sb.String()
}

func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int:
		return x == 0
	case int64:
		return x == 0
	default:
		return false
	}
}
