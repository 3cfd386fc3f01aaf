package asm

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	asmLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `;[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "EOL", Pattern: `\n`},
		{Name: "Base", Pattern: `\brb\b`},
		{Name: "Mnemonic", Pattern: `\b(add|mul|in|out|jnz|jz|lt|eq|arb|hlt|data)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Punct", Pattern: `[#:,]`},
	})

	parser = participle.MustBuild[File](
		participle.Lexer(asmLexer),
		participle.Elide("Comment", "Whitespace"),
	)
)

type File struct {
	Lines []*Line `@@*`
}

type Line struct {
	Pos   lexer.Position
	Label *string      `( @Ident ":" )?`
	Instr *Instruction `@@? EOL`
}

type Instruction struct {
	Pos      lexer.Position
	Mnemonic string     `@Mnemonic`
	Operands []*Operand `( @@ ( "," @@ )* )?`
}

type Operand struct {
	Pos       lexer.Position
	Immediate *Value    `  "#" @@`
	Relative  *Relative `| @@`
	Position  *Value    `| @@`
}

type Relative struct {
	Offset *string `"rb" @Int?`
}

type Value struct {
	Pos    lexer.Position
	Number *string `  @Int`
	Label  *string `| @Ident`
}

// Parse parses assembly source. The filename is only used in error
// positions.
func Parse(filename, source string) (*File, error) {
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	f, err := parser.ParseString(filename, source)
	if err != nil {
		if perr, ok := err.(participle.Error); ok {
			return nil, NewSyntaxError(perr.Position(), source, perr.Message(), "each line holds [label:] [mnemonic operand, ...] [; comment]")
		}
		return nil, err
	}
	return f, nil
}
