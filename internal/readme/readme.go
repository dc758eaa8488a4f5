package readme

import (
	"regexp"
	"strings"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/version"
	"github.com/ellemenno/loomtasks/pkg/fileutil"
)

// Characters that end a path or URL inside Markdown.
const stop = `\s()<>"'` + "`"

var (
	// download/v<version>/<lib>-<sdk>.loomlib
	downloadPattern = regexp.MustCompile(
		`(download/v)(\d+\.\d+\.\d+)(/[^` + stop + `]*-)([^` + stop + `/-]*)(\.loomlib)`)

	// .loom/sdks/<sdk>/libs/<lib>.loomlib
	installPattern = regexp.MustCompile(
		`(\.loom/sdks/)([^` + stop + `/]*)(/libs/[^` + stop + `]*\.loomlib)`)
)

// Kind identifies which reference a Drift was found in.
type Kind string

const (
	// KindDownload is a release download URL.
	KindDownload Kind = "download"
	// KindInstall is an installation path under ~/.loom/sdks.
	KindInstall Kind = "install"
)

// Drift is a reference that does not match the expected version or SDK.
type Drift struct {
	Kind Kind
	// Line is 1-based.
	Line  int
	Found string
	Want  string
}

// Sync returns text with every download URL pointing at v and sdk, and every
// installation path pointing at sdk. Text without references is returned
// unchanged.
func Sync(text string, v version.SemanticVersion, sdk string) string {
	text = replace(downloadPattern, text, func(g []string) string {
		return g[1] + v.String() + g[3] + sdk + g[5]
	})
	return replace(installPattern, text, func(g []string) string {
		return g[1] + sdk + g[3]
	})
}

// Check reports every reference in text that Sync would change.
func Check(text string, v version.SemanticVersion, sdk string) []Drift {
	var drifts []Drift
	collect := func(kind Kind, re *regexp.Regexp, want func(g []string) string) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			g := groups(text, m)
			if w := want(g); w != g[0] {
				drifts = append(drifts, Drift{
					Kind:  kind,
					Line:  strings.Count(text[:m[0]], "\n") + 1,
					Found: g[0],
					Want:  w,
				})
			}
		}
	}
	collect(KindDownload, downloadPattern, func(g []string) string {
		return g[1] + v.String() + g[3] + sdk + g[5]
	})
	collect(KindInstall, installPattern, func(g []string) string {
		return g[1] + sdk + g[3]
	})
	return drifts
}

// SyncFile applies Sync to the file at path and reports whether it changed.
func SyncFile(path string, v version.SemanticVersion, sdk string) (bool, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}
	text := string(data)
	synced := Sync(text, v, sdk)
	if synced == text {
		return false, nil
	}
	if err := fileutil.RewriteFile(path, []byte(synced)); err != nil {
		return false, errors.Wrapf(err, "writing %s", path)
	}
	return true, nil
}

// CheckFile applies Check to the file at path.
func CheckFile(path string, v version.SemanticVersion, sdk string) ([]Drift, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Check(string(data), v, sdk), nil
}

// replace rewrites every match of re using the submatch groups. Unlike
// Regexp.ReplaceAllString, "$" in the new text is literal.
func replace(re *regexp.Regexp, text string, fn func(g []string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(fn(groups(text, m)))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func groups(text string, m []int) []string {
	g := make([]string, len(m)/2)
	for i := range g {
		if m[2*i] >= 0 {
			g[i] = text[m[2*i]:m[2*i+1]]
		}
	}
	return g
}
