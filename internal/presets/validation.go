package presets

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rmitchellscott/monodither/internal/dither"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the dithermethod tag
// registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// RegisterValidations adds the dithermethod tag and the Preset fit rules to
// v. The tag accepts the name of any registered dither method.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("dithermethod", func(fl validator.FieldLevel) bool {
		_, ok := dither.Lookup(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	v.RegisterStructValidation(presetStructLevel, Preset{})
	return nil
}

// presetStructLevel requires fit width and height to be set together.
func presetStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(Preset)
	if (p.FitWidth > 0) != (p.FitHeight > 0) {
		sl.ReportError(p.FitWidth, "FitWidth", "fit_width", "fitpair", "")
		sl.ReportError(p.FitHeight, "FitHeight", "fit_height", "fitpair", "")
	}
}
