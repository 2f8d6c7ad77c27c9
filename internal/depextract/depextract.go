// Package depextract implements C3, the AST Dependency Extractor: given a
// parsed source tree (astscan.Tree) for one file, it separates static
// specifiers from dynamic-import specifiers and resolves legacy
// goog.require/requireType references against a namespace map.
package depextract

import (
	"fmt"
	"strings"

	"github.com/tain335/chunkgraph/internal/astscan"
)

// UnknownNamespace is returned when a goog.require/requireType references a
// namespace absent from the supplied map.
type UnknownNamespace struct {
	Namespace string
	File      string
}

func (e *UnknownNamespace) Error() string {
	return fmt.Sprintf("unknown namespace %q required from %s", e.Namespace, e.File)
}

// Result is the extractor's output for one file.
type Result struct {
	// StaticSpecifiers preserves source order; duplicates are removed,
	// first occurrence wins.
	StaticSpecifiers []string
	// DynamicSpecifiers lists literal dynamic-import arguments only;
	// non-literal dynamic imports are dropped silently.
	DynamicSpecifiers []string
	// UsesLegacyBase is true if any `goog.*` member expression occurs in
	// the file.
	UsesLegacyBase bool
}

// NamespaceResolver maps a legacy Closure namespace to the absolute file
// path that provides it (the output of C2, internal/nsdeps).
type NamespaceResolver interface {
	Resolve(namespace string) (absPath string, ok bool)
}

// Extract runs C3 over tree, the parse of the file at path file. googBasePath
// is the absolute path to the legacy runtime base file (may be empty if the
// build has no legacy namespace support); when UsesLegacyBase is true and
// file is not itself googBasePath, googBasePath is prepended to
// StaticSpecifiers.
func Extract(tree *astscan.Tree, file string, nsResolver NamespaceResolver, googBasePath string) (Result, error) {
	var res Result
	seenStatic := make(map[string]bool)
	seenDynamic := make(map[string]bool)

	addStatic := func(spec string) {
		if spec == "" || seenStatic[spec] {
			return
		}
		seenStatic[spec] = true
		res.StaticSpecifiers = append(res.StaticSpecifiers, spec)
	}
	addDynamic := func(spec string) {
		if spec == "" || seenDynamic[spec] {
			return
		}
		seenDynamic[spec] = true
		res.DynamicSpecifiers = append(res.DynamicSpecifiers, spec)
	}

	for _, node := range tree.Nodes {
		// A template literal with a ${...} substitution is lexed as a
		// literal but does not name a fixed specifier.
		literal := node.IsLiteral && !strings.Contains(node.Specifier, "${")
		switch node.Kind {
		case astscan.KindImportFrom, astscan.KindExportFrom, astscan.KindExportStar, astscan.KindRequireCall:
			if literal {
				addStatic(node.Specifier)
			}

		case astscan.KindDynamicImport:
			if literal {
				addDynamic(node.Specifier)
			}
			// Non-literal dynamic import arguments are ignored, not fatal.

		case astscan.KindGoogRequire:
			if !literal {
				continue
			}
			if nsResolver == nil {
				return Result{}, &UnknownNamespace{Namespace: node.Specifier, File: file}
			}
			resolved, ok := nsResolver.Resolve(node.Specifier)
			if !ok {
				return Result{}, &UnknownNamespace{Namespace: node.Specifier, File: file}
			}
			addStatic(resolved)

		case astscan.KindGoogMemberUse:
			res.UsesLegacyBase = true
		}
	}

	if res.UsesLegacyBase && googBasePath != "" && file != googBasePath {
		res.StaticSpecifiers = prepend(res.StaticSpecifiers, googBasePath)
	}

	return res, nil
}

func prepend(list []string, item string) []string {
	for _, s := range list {
		if s == item {
			return list
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	out = append(out, list...)
	return out
}
