package layout

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var templateFuncs = sprig.TxtFuncMap()

// ExpandTitle expands a title template with data. Titles without template
// markers are returned unchanged.
func ExpandTitle(title string, data any) (string, error) {
	if !strings.Contains(title, "{{") {
		return title, nil
	}

	tmpl, err := template.New("title").Funcs(templateFuncs).Option("missingkey=error").Parse(title)
	if err != nil {
		return "", fmt.Errorf("parsing title: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing title: %w", err)
	}

	return buf.String(), nil
}
