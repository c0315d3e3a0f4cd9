package storage

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope of every stored record.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version" yaml:"version"`
	Identifier string `json:"id" yaml:"id"`
	Spec       T      `json:"spec" yaml:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	if v := reflect.ValueOf(a.Spec); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

// ValidId reports whether id can name an asset.
func ValidId(id string) bool {
	return id != "" && identifierPattern.MatchString(id)
}
