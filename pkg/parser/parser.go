package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

var (
	// declLexer tokenizes column and index declarations
	declLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "QuotedIdent", Pattern: `"([^"]|"")+"`},
		{Name: "BacktickIdent", Pattern: "`([^`]|``)+`"},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[(),.]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	columnParser = participle.MustBuild[Column](
		participle.Lexer(declLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)

	indexParser = participle.MustBuild[Index](
		participle.Lexer(declLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
	)
)

// ParseColumn parses a single column declaration.
//
// Example:
//
//	col, err := parser.ParseColumn("user_id BIGINT NOT NULL REFERENCES users(id)")
//	if err != nil {
//		return err
//	}
//
//	table, err := schema.NewTable(md, "orders", col.Schema())
func ParseColumn(decl string) (*Column, error) {
	col, err := columnParser.ParseString("", decl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse column: %q", decl)
	}

	return col, nil
}

// ParseIndex parses a declaration such as "UNIQUE INDEX ix_users_email (email)".
func ParseIndex(decl string) (*Index, error) {
	ix, err := indexParser.ParseString("", decl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse index: %q", decl)
	}

	return ix, nil
}

// Columns parses every declaration and returns the resulting schema columns
// in order. The first failure stops parsing.
func Columns(decls ...string) ([]*schema.Column, error) {
	cols := make([]*schema.Column, 0, len(decls))
	for _, decl := range decls {
		col, err := ParseColumn(decl)
		if err != nil {
			return nil, err
		}

		cols = append(cols, col.Schema())
	}

	return cols, nil
}

// Indexes is Columns for index declarations.
func Indexes(decls ...string) ([]*schema.Index, error) {
	ixs := make([]*schema.Index, 0, len(decls))
	for _, decl := range decls {
		ix, err := ParseIndex(decl)
		if err != nil {
			return nil, err
		}

		ixs = append(ixs, ix.Schema())
	}

	return ixs, nil
}
