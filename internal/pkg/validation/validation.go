package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"rentdesk-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	siteCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,10}$`)
	panRe      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstRe      = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

// Legacy rows record an unregistered owner with one of these.
var placeholders = map[string]bool{"NA": true, "N/A": true, "NIL": true, "-": true}

func IsValidSiteCode(code string) bool {
	return siteCodeRe.MatchString(code)
}

// IsValidPAN accepts a 10 character PAN in either case, or a placeholder.
func IsValidPAN(pan string) bool {
	pan = strings.ToUpper(strings.TrimSpace(pan))
	return placeholders[pan] || panRe.MatchString(pan)
}

// IsValidGST accepts a 15 character GSTIN in either case, or a placeholder.
func IsValidGST(gst string) bool {
	gst = strings.ToUpper(strings.TrimSpace(gst))
	return placeholders[gst] || gstRe.MatchString(gst)
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the sitecode, pan and gst
// tags registered. Field names in errors come from the query or json tag.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)
		_ = v.RegisterValidation("sitecode", stringRule(IsValidSiteCode))
		_ = v.RegisterValidation("pan", stringRule(IsValidPAN))
		_ = v.RegisterValidation("gst", stringRule(IsValidGST))
		validate = v
	})
	return validate
}

func stringRule(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, isString := fl.Field().Interface().(string)
		return isString && ok(s)
	}
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"query", "json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v and converts the first failure into a domain
// validation error naming the field.
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return domain.MissingField(fe.Field())
	}
	return domain.InvalidField(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "sitecode":
		return "must be 1-10 letters, digits, '-' or '_'"
	case "pan":
		return "not a valid PAN"
	case "gst":
		return "not a valid GST number"
	case "numeric", "number":
		return "must be a number"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}

// Identifiers are the formatted codes carried by a new lease record.
type Identifiers struct {
	SiteCode string `json:"site_id" validate:"required,sitecode"`
	PAN      string `json:"pan_number" validate:"omitempty,pan"`
	GST      string `json:"gst_number" validate:"omitempty,gst"`
}

// CheckIdentifiers validates the site code and, when given, PAN and GST.
func CheckIdentifiers(siteCode, pan, gst string) error {
	return Struct(Identifiers{
		SiteCode: strings.TrimSpace(siteCode),
		PAN:      strings.TrimSpace(pan),
		GST:      strings.TrimSpace(gst),
	})
}
