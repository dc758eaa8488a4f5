package version

import (
	"regexp"

	"github.com/ellemenno/loomtasks/internal/errors"
)

var declarationPattern = regexp.MustCompile(
	`(?m)^([ \t]*)(public static const version:String = ')(\d+\.\d+\.\d+)(';)`)

// Declaration is one version declaration found in a document.
// Start and End are the byte offsets of Value.
type Declaration struct {
	Indent string
	Prefix string
	Value  string
	Suffix string

	Start int
	End   int
}

// Line renders the declaration as it appears in the source.
func (d Declaration) Line() string {
	return d.Indent + d.Prefix + d.Value + d.Suffix
}

// Find returns the first declaration in text.
func Find(text string) (Declaration, bool) {
	m := declarationPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return Declaration{}, false
	}
	return Declaration{
		Indent: text[m[2]:m[3]],
		Prefix: text[m[4]:m[5]],
		Value:  text[m[6]:m[7]],
		Suffix: text[m[8]:m[9]],
		Start:  m[6],
		End:    m[7],
	}, true
}

// Extract returns the version of the first declaration in text.
func Extract(text string) (SemanticVersion, error) {
	d, ok := Find(text)
	if !ok {
		return SemanticVersion{}, errors.ErrVersionNotFound
	}
	return Parse(d.Value)
}

// Update replaces the value of the first declaration in text with v.
// Later declarations and all surrounding bytes are left alone.
func Update(text string, v SemanticVersion) (string, error) {
	d, ok := Find(text)
	if !ok {
		return "", errors.ErrVersionNotFound
	}
	return text[:d.Start] + v.String() + text[d.End:], nil
}
