package render

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"fstyle/config"
	"fstyle/forms"
	"fstyle/state"
)

const outputExt = ".css"

// Values is data available to output name template.
type Values struct {
	Context  string
	Form     string
	Source   string
	Elements int
	Kinds    []string
}

func newValues(f *forms.Form, src string) Values {
	v := Values{
		Context:  string(config.OutputNameTemplateFieldName),
		Form:     f.Name,
		Source:   strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Elements: len(f.Elements),
	}
	for _, el := range f.Elements {
		if k := string(el.Kind); !slices.Contains(v.Kinds, k) {
			v.Kinds = append(v.Kinds, k)
		}
	}
	return v
}

// buildOutputPath returns output file path for the form rendered into
// directory dst. It uses either form name or user-defined template, cleans
// up result and if requested transliterates it.
func buildOutputPath(f *forms.Form, src, dst string, env *state.LocalEnv, log *zap.Logger) string {
	defaultFile := cleanPathSegment(f.Name, env) + outputExt

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName, err := expandTemplate(env.Cfg.Document.OutputNameTemplate, newValues(f, src))
	if err != nil {
		log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dst, defaultFile)
	}
	if strings.TrimSpace(expandedName) == "" {
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, filepath.FromSlash(expandedName), env)
}

func expandTemplate(field string, values Values) (string, error) {
	tmpl, err := config.ParseNameTemplate(field)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// assemblePathWithSubdirs takes expanded name (which may contain path
// separators for subdirectories) and turns it into full output path, every
// segment cleaned separately.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	segments := splitPath(expandedName)
	if len(segments) == 0 {
		return outDir
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	name := cleanPathSegment(segments[len(segments)-1], env)
	if !strings.EqualFold(filepath.Ext(name), outputExt) {
		name += outputExt
	}
	return filepath.Join(append(parts, name)...)
}

func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(path, string(os.PathSeparator)) {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
