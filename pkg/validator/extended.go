package validator

import (
	"fmt"

	"github.com/asaskevich/govalidator"
)

var extended = map[string]Func{
	"alpha":      stringCheck(govalidator.IsAlpha),
	"ascii":      stringCheck(govalidator.IsASCII),
	"uuid":       stringCheck(govalidator.IsUUID),
	"ip":         stringCheck(govalidator.IsIP),
	"creditcard": stringCheck(govalidator.IsCreditCard),
	"json":       stringCheck(govalidator.IsJSON),
	"hexcolor":   stringCheck(govalidator.IsHexcolor),
	"int":        stringCheck(govalidator.IsInt),
}

func stringCheck(fn func(string) bool) Func {
	return func(value any, _ ...any) bool {
		s, ok := value.(string)
		return ok && (s == "" || fn(s))
	}
}

func undefined(name string) error {
	return fmt.Errorf("%w: %s", ErrUndefinedValidator, name)
}
