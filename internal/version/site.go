package version

import (
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/pkg/fileutil"
)

// Site is a source file that carries the library version.
type Site struct {
	Path string
}

func (s Site) read() (string, error) {
	data, err := fileutil.ReadFileWithLimit(s.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Read returns the declared version.
func (s Site) Read() (SemanticVersion, error) {
	text, err := s.read()
	if err != nil {
		return SemanticVersion{}, err
	}
	v, err := Extract(text)
	if err != nil {
		return SemanticVersion{}, errors.Wrapf(err, "%s", s.Path)
	}
	return v, nil
}

// Write sets the declared version to v and reports whether the file changed.
// The file keeps its permissions and is not touched when already current.
func (s Site) Write(v SemanticVersion) (bool, error) {
	text, err := s.read()
	if err != nil {
		return false, err
	}
	updated, err := Update(text, v)
	if err != nil {
		return false, errors.Wrapf(err, "%s", s.Path)
	}
	if updated == text {
		return false, nil
	}
	if err := fileutil.RewriteFile(s.Path, []byte(updated)); err != nil {
		return false, errors.Wrapf(err, "writing %s", s.Path)
	}
	return true, nil
}
