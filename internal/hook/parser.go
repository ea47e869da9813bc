package hook

import (
	"errors"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrUnparseable is returned when a command cannot be parsed as shell.
var ErrUnparseable = errors.New("unparseable command")

// SplitCommandChain splits a command into its simple commands, breaking on
// &&, ||, ;, | and & and descending into subshells, blocks, and control-flow
// bodies. Quoted strings and redirections are handled by the shell parser,
// so separators inside quotes never split.
func SplitCommandChain(cmd string) ([]string, error) {
	if strings.TrimSpace(cmd) == "" {
		return nil, nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, ErrUnparseable
	}

	w := segmentWalker{printer: syntax.NewPrinter()}
	for _, stmt := range prog.Stmts {
		w.walk(stmt.Cmd)
	}
	return w.segments, nil
}

type segmentWalker struct {
	printer  *syntax.Printer
	segments []string
}

func (w *segmentWalker) walk(node syntax.Command) {
	if node == nil {
		return
	}

	switch cmd := node.(type) {
	case *syntax.BinaryCmd:
		w.walk(cmd.X.Cmd)
		w.walk(cmd.Y.Cmd)

	case *syntax.Subshell:
		w.walkStmts(cmd.Stmts)

	case *syntax.Block:
		w.walkStmts(cmd.Stmts)

	case *syntax.IfClause:
		for clause := cmd; clause != nil; clause = clause.Else {
			w.walkStmts(clause.Cond)
			w.walkStmts(clause.Then)
		}

	case *syntax.WhileClause:
		w.walkStmts(cmd.Cond)
		w.walkStmts(cmd.Do)

	case *syntax.ForClause:
		w.walkStmts(cmd.Do)

	case *syntax.CaseClause:
		for _, item := range cmd.Items {
			w.walkStmts(item.Stmts)
		}

	case *syntax.TimeClause:
		if cmd.Stmt != nil {
			w.walk(cmd.Stmt.Cmd)
		}

	case *syntax.CoprocClause:
		if cmd.Stmt != nil {
			w.walk(cmd.Stmt.Cmd)
		}

	case *syntax.FuncDecl:
		if cmd.Body != nil {
			w.walk(cmd.Body.Cmd)
		}

	default:
		// CallExpr, DeclClause, LetClause, ArithmCmd, TestClause, and
		// anything new the parser grows: print the node as one segment.
		w.print(node)
	}
}

func (w *segmentWalker) walkStmts(stmts []*syntax.Stmt) {
	for _, stmt := range stmts {
		w.walk(stmt.Cmd)
	}
}

func (w *segmentWalker) print(node syntax.Node) {
	var buf strings.Builder
	_ = w.printer.Print(&buf, node)
	if s := strings.TrimSpace(buf.String()); s != "" {
		w.segments = append(w.segments, s)
	}
}
