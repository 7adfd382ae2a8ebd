package artifacts

import "strings"

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// ScenePattern returns the doublestar pattern matching any file below the
// root whose name contains scene and ends with ext.
func ScenePattern(scene, ext string) string {
	return "**/*" + globEscaper.Replace(scene) + "*" + globEscaper.Replace(ext)
}

// VideoPattern returns the doublestar pattern matching every file with ext below the root.
func VideoPattern(ext string) string {
	return "**/*" + globEscaper.Replace(ext)
}
