package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// Validation errors for settings fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidLibName indicates lib_name is not a valid identifier.
	ErrInvalidLibName = errors.New("invalid library name")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidSDKVersion indicates sdk_version cannot name a directory.
	ErrInvalidSDKVersion = errors.New("invalid sdk version")
)

var libNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	if s.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if s.LibName != "" && !libNamePattern.MatchString(s.LibName) {
		errs = append(errs, &FieldError{Field: KeyLibName, Value: s.LibName, Err: ErrInvalidLibName})
	}

	if s.SDKVersion != "" && strings.ContainsAny(s.SDKVersion, `/\`+"\x00") {
		errs = append(errs, &FieldError{Field: KeySDKVersion, Value: s.SDKVersion, Err: ErrInvalidSDKVersion})
	}

	for _, f := range []struct{ field, path string }{
		{KeyLibVersionFile, s.LibVersionFile},
		{KeyReadmeFile, s.ReadmeFile},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &FieldError{Field: f.field, Value: f.path, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError reports an invalid settings field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
