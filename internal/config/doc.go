// Package config manages loomtasks settings and the Loom JSON and YAML
// configuration documents.
//
// # Tool Settings
//
// Settings are layered with Viper, highest precedence first:
//
//  1. LOOMTASKS_* environment variables (e.g. LOOMTASKS_SDK_VERSION)
//  2. the project's .loomtasks.yml, merged by [MergeProject]
//  3. config.yaml in the current directory, or in
//     $LOOMTASKS_CONFIG_DIR or <xdg config home>/loomtasks
//  4. built-in defaults
//
// A settings file looks like:
//
//	version: 1
//	lib_name: Foo
//	lib_version_file: lib/src/Foo.ls
//	readme_file: README.md
//	sdk_version: sprint34
//
// # Documents
//
// [Document] is a generic, order-insensitive view of a configuration file
// such as loom.config. [ReadJSON] and [WriteJSON] handle the Loom JSON
// format; [ReadYAMLOrDefault] and [WriteYAML] handle YAML files that may not
// exist yet. Nested values are addressed with dotted keys:
//
//	doc, err := config.ReadJSON(paths.ProjectConfigFile(root))
//	sdk, _ := doc.GetString("sdk_version")
//	doc.Set("display.width", 640)
package config
