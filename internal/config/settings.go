package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/paths"
)

// EnvPrefix prefixes every environment variable read by the settings layer.
const EnvPrefix = "LOOMTASKS"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Setting keys.
const (
	KeyVersion        = "version"
	KeyLibName        = "lib_name"
	KeyLibVersionFile = "lib_version_file"
	KeyReadmeFile     = "readme_file"
	KeySDKVersion     = "sdk_version"
)

// DefaultReadmeFile is used when readme_file is unset.
const DefaultReadmeFile = "README.md"

// Settings holds the resolved tool and project settings.
type Settings struct {
	Version        int    `mapstructure:"version" yaml:"version"`
	LibName        string `mapstructure:"lib_name" yaml:"lib_name,omitempty"`
	LibVersionFile string `mapstructure:"lib_version_file" yaml:"lib_version_file,omitempty"`
	ReadmeFile     string `mapstructure:"readme_file" yaml:"readme_file,omitempty"`
	SDKVersion     string `mapstructure:"sdk_version" yaml:"sdk_version,omitempty"`
}

// VersionFile returns the source file carrying the library version. When
// lib_version_file is unset it is derived from lib_name as lib/src/<name>.ls.
// Relative paths are resolved against projectRoot.
func (s *Settings) VersionFile(projectRoot string) string {
	file := s.LibVersionFile
	if file == "" {
		if s.LibName == "" {
			return ""
		}
		file = filepath.Join("lib", "src", s.LibName+".ls")
	}
	return resolve(projectRoot, file)
}

// Readme returns the README path, resolved against projectRoot.
func (s *Settings) Readme(projectRoot string) string {
	file := s.ReadmeFile
	if file == "" {
		file = DefaultReadmeFile
	}
	return resolve(projectRoot, file)
}

func resolve(root, file string) string {
	if filepath.IsAbs(file) || root == "" {
		return file
	}
	return filepath.Join(root, file)
}

// Init resets Viper and registers search paths, environment binding and
// defaults. Call it once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.AppConfigDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeyReadmeFile, DefaultReadmeFile)
	// Registered so that AutomaticEnv picks them up during Unmarshal.
	viper.SetDefault(KeyLibName, "")
	viper.SetDefault(KeyLibVersionFile, "")
	viper.SetDefault(KeySDKVersion, "")
}

// Load reads the settings file. With an explicit path a missing file is an
// error; otherwise the default search paths are tried and defaults are used
// when nothing is found.
func Load(path string) (*Settings, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "" && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)):
			return nil, errors.Wrapf(errors.ErrConfigMissing, "%s", path)
		case errors.As(err, &notFound):
			// Implicit load without a file uses defaults.
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrConfigParse)
		}
	}

	return current()
}

// MergeProject layers the project's .loomtasks.yml over the loaded settings.
// A missing file leaves the settings unchanged.
func MergeProject(projectRoot string) (*Settings, error) {
	doc, err := ReadYAMLOrDefault(paths.ProjectSettingsPath(projectRoot))
	if err != nil {
		return nil, err
	}
	if len(doc) > 0 {
		if err := viper.MergeConfigMap(doc); err != nil {
			return nil, errors.Wrap(err, "merging project settings")
		}
	}
	return current()
}

func current() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}
	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating settings"), errors.ErrConfigParse)
	}
	return &s, nil
}

// ConfigFileUsed returns the settings file Viper read, if any.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
