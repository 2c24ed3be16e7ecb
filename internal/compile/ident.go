// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package compile

import (
	"regexp"
	"strings"

	"github.com/equinor/dsis-schemas/internal/jschema"
)

// Profile carries everything identifier handling needs to know about one
// target language: its reserved words, what a syntactically valid
// identifier looks like, the suffix used to step around reserved names, and
// whether emitted models need required fields ordered before defaulted
// ones. Swapping the emission target swaps only this.
type Profile struct {
	Name          string
	Reserved      map[string]struct{}
	Valid         func(string) bool
	Suffix        string
	RequiredFirst bool
}

// pythonReserved lists keywords, builtins, and the typing/pydantic names a
// generated module imports. A property with one of these names would shadow
// the import or break the class body.
var pythonReserved = []string{
	"and", "as", "assert", "break", "class", "continue", "def", "del", "elif", "else",
	"except", "exec", "finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "not", "or", "pass", "print", "raise", "return", "try", "while", "with",
	"yield", "None", "True", "False", "type", "object", "str", "int", "float", "bool",
	"list", "dict", "tuple", "set", "frozenset", "bytes", "bytearray", "memoryview",
	"range", "enumerate", "zip", "map", "filter", "sorted", "reversed", "sum", "min",
	"max", "abs", "round", "len", "hash", "id", "repr", "ascii", "ord", "chr", "bin",
	"oct", "hex", "divmod", "pow", "callable", "isinstance", "issubclass", "hasattr",
	"getattr", "setattr", "delattr", "dir", "vars", "locals", "globals", "eval",
	"compile", "open", "input", "format", "property", "staticmethod", "classmethod",
	"super", "iter", "next", "slice", "complex", "Optional", "Union", "List", "Dict",
	"Tuple", "Set", "FrozenSet", "Any", "Callable", "Type", "TypeVar", "Generic",
	"Field", "BaseModel",
}

// goReserved lists Go keywords and predeclared identifiers.
var goReserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface", "map",
	"package", "range", "return", "select", "struct", "switch", "type", "var",
	"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
	"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"true", "false", "iota", "nil",
	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag", "len",
	"make", "max", "min", "new", "panic", "print", "println", "real", "recover",
}

func reservedSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// isASCIIIdentifier reports whether s is a letter-or-underscore followed by
// letters, digits, or underscores. Both target languages accept this form.
func isASCIIIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// PythonProfile is the identifier profile of the pydantic target.
func PythonProfile() Profile {
	return Profile{
		Name:          "python",
		Reserved:      reservedSet(pythonReserved),
		Valid:         isASCIIIdentifier,
		Suffix:        "_field",
		RequiredFirst: true,
	}
}

// GoProfile is the identifier profile of the gomodels target. Go structs
// have no defaulted parameters, so schema field order is kept as-is.
func GoProfile() Profile {
	return Profile{
		Name:          "go",
		Reserved:      reservedSet(goReserved),
		Valid:         isASCIIIdentifier,
		Suffix:        "_field",
		RequiredFirst: false,
	}
}

// Sanitizer maps raw schema property names to identifiers valid under one
// target profile.
type Sanitizer struct {
	profile Profile
}

// NewSanitizer creates a Sanitizer for the given profile.
func NewSanitizer(profile Profile) *Sanitizer {
	return &Sanitizer{profile: profile}
}

// Sanitize returns a valid identifier for name and whether the emitted
// field needs an explicit wire-name alias because the identifier differs
// from the raw name.
func (s *Sanitizer) Sanitize(name string) (string, bool) {
	ident := name
	if !s.profile.Valid(ident) {
		ident = cleanIdentifier(ident)
	}
	if _, reserved := s.profile.Reserved[ident]; reserved {
		ident += s.profile.Suffix
	}
	return ident, ident != name
}

// cleanIdentifier replaces disallowed runes with underscores and shields a
// leading digit.
func cleanIdentifier(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	cleaned := sb.String()
	if cleaned == "" {
		return "_"
	}
	if cleaned[0] >= '0' && cleaned[0] <= '9' {
		cleaned = "_" + cleaned
	}
	return cleaned
}

// ClassName converts a schema name to the generated class name. Dotted
// names ("SYSADMIN.SESSIONS", "OW5000.EmWell") keep their last segment;
// undotted names have their family export prefix stripped. Snake_case
// segments become PascalCase; an already-Pascal segment passes through with
// just its first letter uppercased.
func ClassName(family jschema.Family, schemaName string) string {
	entity := schemaName
	if strings.Contains(schemaName, ".") {
		parts := strings.Split(schemaName, ".")
		entity = parts[len(parts)-1]
	} else {
		switch family {
		case jschema.FamilyCommon:
			entity = strings.ReplaceAll(entity, "OpenWorksCommonModel_", "")
		case jschema.FamilyNative:
			entity = strings.ReplaceAll(entity, "NativeModel_", "")
			entity = strings.ReplaceAll(entity, "Native_", "")
		}
	}

	if strings.Contains(entity, "_") {
		parts := strings.Split(entity, "_")
		for i, p := range parts {
			parts[i] = capitalize(p)
		}
		entity = strings.Join(parts, "")
	}

	if entity != "" && entity[0] >= 'a' && entity[0] <= 'z' {
		entity = strings.ToUpper(entity[:1]) + entity[1:]
	}
	return entity
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var (
	camelBoundaryWord = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	camelBoundaryEdge = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	dimensionInfix    = regexp.MustCompile(`(\d)_?d_`)
	dimensionPrefix   = regexp.MustCompile(`^(\d)_?d_`)
)

// ModuleName converts a class name to its snake_case module (file) name.
// Dimensional markers keep the digit attached to the "d": "Seismic2DListDetail"
// becomes "seismic_2d_list_detail", while a trailing "2D" stays split
// ("HorizonAttributeHeader2D" → "horizon_attribute_header2_d").
func ModuleName(className string) string {
	s := camelBoundaryWord.ReplaceAllString(className, "${1}_${2}")
	s = strings.ToLower(camelBoundaryEdge.ReplaceAllString(s, "${1}_${2}"))
	s = dimensionInfix.ReplaceAllString(s, "_${1}d_")
	s = dimensionPrefix.ReplaceAllString(s, "${1}d_")
	return s
}
