package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads translations from the YAML files of fsys.
//
//	en.yaml              -> language en
//	cy/validation.yml    -> language cy
//	cy/fields.yaml       -> language cy, merged with the file above
//
// Files deeper than one directory use the name of their parent directory.
func WithYAMLDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			ext := strings.ToLower(path.Ext(filePath))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			lang := path.Base(path.Dir(filePath))
			if dir := path.Dir(filePath); dir == "." || dir == "" {
				lang = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
			}

			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("reading %q: %w", filePath, err)
			}

			var messages map[string]any
			if err := yaml.Unmarshal(data, &messages); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
			}

			b.add(lang, flatten(messages, ""))
			return nil
		})
	}
}
