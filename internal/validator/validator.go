// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// companyURLRegex matches a PSX Data Portal company page URL. Symbols are
// strictly alphanumeric, which also keeps anything URL-shaped but hostile
// out of the scraper.
var companyURLRegex = regexp.MustCompile(`^https://dps\.psx\.com\.pk/company/[A-Za-z0-9]+$`)

// validIndices are the PSX index lists the stock endpoint can serve.
var validIndices = map[string]bool{
	"ALL":    true,
	"KSE100": true,
	"KSE30":  true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("psx_company_url", validateCompanyURL)
		_ = v.RegisterValidation("psx_index", validateIndex)
	}
}

func validateCompanyURL(fl validator.FieldLevel) bool {
	return companyURLRegex.MatchString(fl.Field().String())
}

func validateIndex(fl validator.FieldLevel) bool {
	return validIndices[fl.Field().String()]
}

// IsValidIndex reports whether name is a recognized PSX index identifier.
// Used by handlers that read the index from a query parameter rather than a
// bound body.
func IsValidIndex(name string) bool {
	return validIndices[name]
}
