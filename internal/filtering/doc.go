// Package filtering provides the allow list stage of the dependency update pipeline.
//
// An allow list is an ordered list of shell-style glob patterns taken from
// project configuration. Applying it to a list of candidate updates keeps only
// the updates whose package name matches at least one pattern.
//
// # Architecture
//
// The package consists of three components:
//
//   - NameFilter: Decides whether a single package name matches a pattern list
//   - AllowList: Applies a NameFilter to a list of items, preserving order
//   - Logger: Receives a message for every named item that is removed
//
// # Pattern Syntax
//
// Patterns follow fnmatch(3) without flags and are matched against the whole
// name, case-sensitively:
//
//   - "drupal/core" matches only "drupal/core"
//   - "drupal/*" matches "drupal/core" and "drupal/token"
//   - "sy*/y*ml" matches "symfony/yaml"
//   - "package?" matches "package1" but not "package10"
//   - "vendor/[a-c]*" matches "vendor/acme" but not "vendor/zeta"
//
// Unlike filepath.Match, '*' and '?' also match '/', since package names
// are opaque strings rather than paths.
//
// # Filtering Logic
//
//  1. If the allow list is empty, every item passes, including items without a name
//  2. Items without a name are removed without a log message
//  3. Items whose name matches any pattern are kept
//  4. Items whose name matches no pattern are removed and logged
//
// # Usage Example
//
//	manifest, err := config.LoadManifest("composer.json")
//	if err != nil {
//		return err
//	}
//	allowList := NewAllowListFromConfig(manifest)
//	allowList.SetLogger(NewSlogLogger(slog.Default()))
//
//	permitted := Apply(allowList, updates)
package filtering
