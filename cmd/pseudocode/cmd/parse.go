package cmd

import (
	"fmt"
	"os"

	"github.com/aclevel/pseudocode/internal/ast"
	"github.com/aclevel/pseudocode/internal/interp"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a pseudocode program and print its statement tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseProgram,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseProgram(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	prog, err := interp.ParseSource(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, interp.FormatError(source, err, true))
		return fmt.Errorf("parsing failed")
	}

	for _, stmt := range prog.Statements {
		dumpNode(stmt, 0)
	}
	return nil
}

func dumpNode(node ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	switch n := node.(type) {
	case *ast.DeclareStatement:
		fmt.Printf("%sDECLARE %s\n", indent, n.Name)
	case *ast.ConstantStatement:
		fmt.Printf("%sCONSTANT %s\n", indent, n.Name)
	case *ast.TypeDefStatement:
		fmt.Printf("%sTYPE %s (%d field(s))\n", indent, n.Name, len(n.Fields))
	case *ast.AssignStatement:
		fmt.Printf("%sASSIGN\n", indent)
	case *ast.IfStatement:
		fmt.Printf("%sIF (%d then, %d else)\n", indent, len(n.Then), len(n.Else))
		for _, s := range n.Then {
			dumpNode(s, depth+1)
		}
		for _, s := range n.Else {
			dumpNode(s, depth+1)
		}
	case *ast.ForStatement:
		fmt.Printf("%sFOR %s (%d statement(s))\n", indent, n.Variable, len(n.Body))
		for _, s := range n.Body {
			dumpNode(s, depth+1)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWHILE (%d statement(s))\n", indent, len(n.Body))
		for _, s := range n.Body {
			dumpNode(s, depth+1)
		}
	case *ast.RepeatStatement:
		fmt.Printf("%sREPEAT (%d statement(s))\n", indent, len(n.Body))
		for _, s := range n.Body {
			dumpNode(s, depth+1)
		}
	case *ast.CaseStatement:
		fmt.Printf("%sCASE OF (%d branch(es))\n", indent, len(n.Branches))
	case *ast.ProcedureStatement:
		fmt.Printf("%sPROCEDURE %s (%d param(s))\n", indent, n.Name, len(n.Parameters))
		for _, s := range n.Body {
			dumpNode(s, depth+1)
		}
	case *ast.FunctionStatement:
		fmt.Printf("%sFUNCTION %s (%d param(s))\n", indent, n.Name, len(n.Parameters))
		for _, s := range n.Body {
			dumpNode(s, depth+1)
		}
	case *ast.OutputStatement:
		fmt.Printf("%sOUTPUT (%d value(s))\n", indent, len(n.Values))
	case *ast.InputStatement:
		fmt.Printf("%sINPUT\n", indent)
	case *ast.ReturnStatement:
		fmt.Printf("%sRETURN\n", indent)
	case *ast.CallStatement:
		fmt.Printf("%sCALL %s\n", indent, n.Call.Name)
	default:
		fmt.Printf("%s%T\n", indent, node)
	}
}
