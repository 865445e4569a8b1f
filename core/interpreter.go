package core

import (
	"fmt"
	"io"
)

// Interpreter executes statements directly against a chain of
// environments. An Interpreter is not safe for concurrent use, and two
// interpreters never share environments.
type Interpreter struct {
	globals *Environment
	env     *Environment

	stdout   io.Writer
	reporter *Reporter
}

func NewInterpreter(stdout io.Writer, r *Reporter) *Interpreter {
	globals := NewEnvironment()
	return &Interpreter{
		globals:  globals,
		env:      globals,
		stdout:   stdout,
		reporter: r,
	}
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Interpret executes stmts in order, skipping nil entries left by parse
// errors. The first runtime error stops execution; it is reported and
// returned.
func (in *Interpreter) Interpret(stmts []Stmt) error {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}

		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok && in.reporter != nil {
				in.reporter.RuntimeError(rerr)
			}
			return err
		}
	}

	return nil
}

// Evaluate computes a single expression in the global scope.
func (in *Interpreter) Evaluate(expr Expr) (Value, error) {
	return in.evaluate(expr)
}

func (in *Interpreter) execute(stmt Stmt) error {
	switch stmt := stmt.(type) {
	case printNode:
		value, err := in.evaluate(stmt.expression)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(in.stdout, value.String())
		return err
	case expressionNode:
		_, err := in.evaluate(stmt.expression)
		return err
	case varNode:
		var value Value = null
		if stmt.initializer != nil {
			var err error
			if value, err = in.evaluate(stmt.initializer); err != nil {
				return err
			}
		}
		in.env.Define(stmt.name.Lexeme, value)
		return nil
	case blockNode:
		return in.executeBlock(stmt.statements, NewEnclosedEnvironment(in.env))
	}

	panic(fmt.Sprintf("Unreachable: unknown statement %T", stmt))
}

// executeBlock runs stmts in env and restores the previous scope on every
// exit path.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(expr Expr) (Value, error) {
	switch expr := expr.(type) {
	case literalNode:
		return expr.value, nil
	case groupingNode:
		return in.evaluate(expr.inner)
	case unaryNode:
		return in.evaluateUnary(expr)
	case binaryNode:
		return in.evaluateBinary(expr)
	case variableNode:
		return in.env.Get(expr.name)
	case assignmentNode:
		value, err := in.evaluate(expr.value)
		if err != nil {
			return nil, err
		}
		return in.env.Assign(expr.name, value)
	}

	panic(fmt.Sprintf("Unreachable: unknown expression %T", expr))
}

func (in *Interpreter) evaluateUnary(node unaryNode) (Value, error) {
	right, err := in.evaluate(node.right)
	if err != nil {
		return nil, err
	}

	switch node.op.Kind {
	case MINUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, &RuntimeError{
				Kind:   TypeError,
				Token:  node.op,
				Reason: fmt.Sprintf("Operator '%s' not supported for %s.", node.op.Lexeme, right.Type()),
			}
		}
		return -n, nil
	case BANG:
		return BoolValue(!right.Truthy()), nil
	}

	panic(fmt.Sprintf("Unreachable: unknown unary operator %s", node.op.Kind))
}

func operandError(op Token, left, right Value) *RuntimeError {
	return &RuntimeError{
		Kind:   TypeError,
		Token:  op,
		Reason: fmt.Sprintf("Operator '%s' not supported between %s and %s.", op.Lexeme, left.Type(), right.Type()),
	}
}

func (in *Interpreter) evaluateBinary(node binaryNode) (Value, error) {
	// both sides are always evaluated, left first
	left, err := in.evaluate(node.left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(node.right)
	if err != nil {
		return nil, err
	}

	switch node.op.Kind {
	case EQUAL_EQUAL:
		return BoolValue(left.Eq(right)), nil
	case BANG_EQUAL:
		return BoolValue(!left.Eq(right)), nil
	case PLUS:
		switch l := left.(type) {
		case NumberValue:
			if r, ok := right.(NumberValue); ok {
				return l + r, nil
			}
		case StringValue:
			if r, ok := right.(StringValue); ok {
				return l + r, nil
			}
		}
		return nil, operandError(node.op, left, right)
	}

	l, lok := left.(NumberValue)
	r, rok := right.(NumberValue)
	if !lok || !rok {
		return nil, operandError(node.op, left, right)
	}

	switch node.op.Kind {
	case MINUS:
		return l - r, nil
	case STAR:
		return l * r, nil
	case SLASH:
		if r == 0 {
			return nil, &RuntimeError{Kind: TypeError, Token: node.op, Reason: "Division by zero."}
		}
		return l / r, nil
	case GREATER:
		return BoolValue(l > r), nil
	case GREATER_EQUAL:
		return BoolValue(l >= r), nil
	case LESS:
		return BoolValue(l < r), nil
	case LESS_EQUAL:
		return BoolValue(l <= r), nil
	}

	panic(fmt.Sprintf("Unreachable: unknown binary operator %s", node.op.Kind))
}
