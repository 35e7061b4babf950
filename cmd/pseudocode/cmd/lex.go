package cmd

import (
	"fmt"
	"os"

	"github.com/aclevel/pseudocode/internal/interp"
	"github.com/aclevel/pseudocode/internal/lexer"
	"github.com/spf13/cobra"
)

var lexShowPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a pseudocode program and print its token stream",
	Long: `Tokenize (lex) a pseudocode program and print the resulting tokens,
including the synthetic INDENT/DEDENT/NEWLINE markers.

Useful for debugging the indentation-sensitive scanner.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
}

func lexProgram(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, err := interp.Lex(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, interp.FormatError(source, err, true))
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range tokens {
		printToken(tok)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var line string
	if tok.Literal == "" {
		line = fmt.Sprintf("[%-10s]", tok.Type)
	} else {
		line = fmt.Sprintf("[%-10s] %q", tok.Type, tok.Literal)
	}
	if lexShowPos {
		line += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(line)
}
