package database

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Condition construye un WHERE dinámico a partir de filtros opcionales.
// Parte de "1=1" y cada filtro presente agrega un predicado con AND.
type Condition struct {
	clauses []string
	args    []interface{}
}

// NewCondition crea una condición que no restringe nada
func NewCondition() *Condition {
	return &Condition{clauses: []string{"1=1"}}
}

// ContainsIgnoreCase agrega "column ILIKE %value%" si value no está vacío.
// Los comodines de value se escapan.
func (c *Condition) ContainsIgnoreCase(column, value string) *Condition {
	if value == "" {
		return c
	}
	return c.add(column+" ILIKE %s", "%"+likeEscaper.Replace(value)+"%")
}

// Equal agrega "column = value" si value no está vacío
func (c *Condition) Equal(column, value string) *Condition {
	if value == "" {
		return c
	}
	return c.add(column+" = %s", value)
}

// EqualBool agrega "column = value" si value no es nil
func (c *Condition) EqualBool(column string, value *bool) *Condition {
	if value == nil {
		return c
	}
	return c.add(column+" = %s", *value)
}

// Where retorna la expresión y sus argumentos posicionales
func (c *Condition) Where() (string, []interface{}) {
	return strings.Join(c.clauses, " AND "), c.args
}

func (c *Condition) add(format string, arg interface{}) *Condition {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(format, fmt.Sprintf("$%d", len(c.args))))
	return c
}
