// Package astscan provides the "parsed source tree" capability that C3 (the
// AST Dependency Extractor) consumes. Rather than a full ECMAScript grammar —
// out of scope for a chunk-graph builder — it tokenizes a file and emits a
// flat sequence of tagged Node variants for the handful of statement and
// call shapes C3 cares about: import/export declarations, `require(...)`,
// dynamic `import(...)`, `goog.require`/`goog.requireType`, and bare `goog.*`
// member access. This mirrors the teacher's js_ast visitor design (§9 Design
// Notes: "match over tagged variants of the parse tree, not via open
// polymorphism") without carrying a full expression/statement grammar.
package astscan

// Kind tags a Node variant.
type Kind uint8

const (
	// KindImportFrom covers `import ... from "X"` and the bare side-effect
	// form `import "X"`.
	KindImportFrom Kind = iota
	// KindExportFrom covers `export ... from "X"`.
	KindExportFrom
	// KindExportStar covers `export * from "X"`.
	KindExportStar
	// KindRequireCall covers a `require(...)` call.
	KindRequireCall
	// KindDynamicImport covers `import(...)`.
	KindDynamicImport
	// KindGoogRequire covers `goog.require(...)` / `goog.requireType(...)`.
	KindGoogRequire
	// KindGoogMemberUse covers any `goog.<member>` expression, including
	// the two kinds above.
	KindGoogMemberUse
)

// Node is one tagged reference found in a file. Specifier is only meaningful
// when IsLiteral is true; non-literal dynamic-import arguments are still
// recorded (IsLiteral=false) so callers can choose to diagnose them without
// treating the whole file as unparseable. A require call with a non-literal
// argument produces no Node.
type Node struct {
	Kind          Kind
	Specifier     string
	IsLiteral     bool
	IsRequireType bool // only set for KindGoogRequire
	Line          int
	Col           int
}

// Tree is the parsed-source-tree capability result: an ordered sequence of
// tagged Nodes in source order, which is exactly what C3 needs to preserve
// static-specifier ordering.
type Tree struct {
	Nodes []Node
}

// Parse scans src and returns the tagged reference list. Parse never fails
// on malformed syntax, in the FileParseFailure sense: the scanner has no
// grammar to reject, so the caller (C3/C4) is responsible for deciding a
// file is unparseable by some other means (e.g. empty/binary content). This
// keeps FileParseFailure as a policy decision in the walker,
// not a lexer concern.
func Parse(src string) *Tree {
	l := newLexer(src)
	var nodes []Node
	var prev, prev2 token

	for {
		tok := l.next()
		if tok.kind == tEOF {
			break
		}

		switch {
		case tok.kind == tIdent && tok.text == "import":
			if n, ok := scanImport(l); ok {
				nodes = append(nodes, n)
			}

		case tok.kind == tIdent && tok.text == "export":
			if n, ok := scanExport(l); ok {
				nodes = append(nodes, n)
			}

		case tok.kind == tIdent && tok.text == "require":
			if n, ok := scanCallWithStringArg(l, KindRequireCall); ok {
				nodes = append(nodes, n)
			}

		case tok.kind == tIdent && tok.text == "goog" :
			// Look ahead for `.require(`, `.requireType(`, or any other
			// `.member`.
			if n, isMember := scanGoogMember(l); isMember {
				nodes = append(nodes, n...)
			}
		}

		prev2 = prev
		prev = tok
		_ = prev2
	}
	return &Tree{Nodes: nodes}
}

// scanImport handles both `import "X"` and `import ... from "X"`, as well as
// dynamic `import(...)` which lexes as the identifier "import" immediately
// followed by '('.
func scanImport(l *lexer) (Node, bool) {
	save := *l
	tok := l.next()
	if tok.kind == tPunct && tok.text == "(" {
		return scanDynamicImportArgs(l)
	}
	*l = save

	// Consume tokens up to a terminating ';' at brace depth 0, EOF, or the
	// next "import"/"export" keyword (left unconsumed for Parse), looking
	// for a trailing `from "X"` or a bare string literal right after
	// `import`.
	if tok.kind == tString {
		return Node{Kind: KindImportFrom, Specifier: tok.text, IsLiteral: true, Line: tok.line, Col: tok.col}, true
	}

	var lastString token
	hasString := false
	depth := 0
	for {
		before := *l
		t := l.next()
		if t.kind == tEOF {
			break
		}
		if t.kind == tIdent && (t.text == "import" || t.text == "export") {
			*l = before
			break
		}
		if t.kind == tPunct {
			switch t.text {
			case "{":
				depth++
			case "}":
				depth--
			case ";":
				if depth <= 0 {
					goto done
				}
			}
		}
		if t.kind == tString {
			lastString = t
			hasString = true
		}
	}
done:
	if hasString {
		return Node{Kind: KindImportFrom, Specifier: lastString.text, IsLiteral: true, Line: lastString.line, Col: lastString.col}, true
	}
	return Node{}, false
}

func scanDynamicImportArgs(l *lexer) (Node, bool) {
	// We've already consumed the "(" belonging to import(...).
	first := l.next()
	if first.kind == tString {
		closeTok := l.next()
		if closeTok.kind == tPunct && closeTok.text == ")" {
			return Node{Kind: KindDynamicImport, Specifier: first.text, IsLiteral: true, Line: first.line, Col: first.col}, true
		}
		// Something like import("a" + x) - not a pure literal; drain to
		// matching paren.
		drainParens(l, 1)
		return Node{Kind: KindDynamicImport, IsLiteral: false, Line: first.line, Col: first.col}, true
	}
	// Non-literal argument: drain to the matching close paren and report a
	// non-literal dynamic import, which is ignored rather than fatal.
	depth := 1
	loc := first
	drainFrom(l, first, &depth)
	return Node{Kind: KindDynamicImport, IsLiteral: false, Line: loc.line, Col: loc.col}, true
}

func drainFrom(l *lexer, first token, depth *int) {
	t := first
	for *depth > 0 {
		if t.kind == tPunct {
			if t.text == "(" {
				*depth++
			} else if t.text == ")" {
				*depth--
				if *depth == 0 {
					return
				}
			}
		}
		if t.kind == tEOF {
			return
		}
		t = l.next()
	}
}

func drainParens(l *lexer, depth int) {
	for depth > 0 {
		t := l.next()
		if t.kind == tEOF {
			return
		}
		if t.kind == tPunct {
			if t.text == "(" {
				depth++
			} else if t.text == ")" {
				depth--
			}
		}
	}
}

// scanExport handles `export * from "X"` and `export ... from "X"`.
func scanExport(l *lexer) (Node, bool) {
	save := *l
	next := l.next()
	isStar := next.kind == tPunct && next.text == "*"
	if !isStar {
		*l = save
	}

	var lastString token
	hasString := false
	depth := 0
	for {
		t := l.next()
		if t.kind == tEOF {
			break
		}
		if t.kind == tPunct {
			switch t.text {
			case "{":
				depth++
			case "}":
				depth--
			case ";":
				if depth <= 0 {
					goto done
				}
			}
		}
		if t.kind == tString {
			lastString = t
			hasString = true
		}
	}
done:
	if !hasString {
		return Node{}, false
	}
	if isStar {
		return Node{Kind: KindExportStar, Specifier: lastString.text, IsLiteral: true, Line: lastString.line, Col: lastString.col}, true
	}
	return Node{Kind: KindExportFrom, Specifier: lastString.text, IsLiteral: true, Line: lastString.line, Col: lastString.col}, true
}

// scanCallWithStringArg handles `require("X")` style single-string-argument
// calls. Non-call or non-literal uses are ignored (return ok=false) so bare
// references to a `require` identifier that isn't being called don't
// contribute a spurious dependency.
func scanCallWithStringArg(l *lexer, kind Kind) (Node, bool) {
	save := *l
	open := l.next()
	if !(open.kind == tPunct && open.text == "(") {
		*l = save
		return Node{}, false
	}
	arg := l.next()
	if arg.kind != tString {
		depth := 1
		drainParens(l, depth)
		return Node{}, false
	}
	closeTok := l.next()
	if !(closeTok.kind == tPunct && closeTok.text == ")") {
		drainParens(l, 1)
		return Node{}, false
	}
	return Node{Kind: kind, Specifier: arg.text, IsLiteral: true, Line: arg.line, Col: arg.col}, true
}

// scanGoogMember handles the `goog` identifier once seen: `goog.require(X)`,
// `goog.requireType(X)`, and any other `goog.member` usage. It always
// reports at least one KindGoogMemberUse node (marking the file as using the
// legacy base), plus a KindGoogRequire node when the member is require or
// requireType with a literal string argument.
func scanGoogMember(l *lexer) ([]Node, bool) {
	save := *l
	dot := l.next()
	if !(dot.kind == tPunct && dot.text == ".") {
		*l = save
		return nil, false
	}
	member := l.next()
	if member.kind != tIdent {
		*l = save
		return nil, false
	}
	memberNode := Node{Kind: KindGoogMemberUse, Line: dot.line, Col: dot.col}
	if member.text != "require" && member.text != "requireType" {
		return []Node{memberNode}, true
	}
	callNode, ok := scanCallWithStringArg(l, KindGoogRequire)
	if !ok {
		return []Node{memberNode}, true
	}
	callNode.IsRequireType = member.text == "requireType"
	return []Node{memberNode, callNode}, true
}
