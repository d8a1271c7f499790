package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)
)

// New returns a validator with the custom tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("job_stage", JobStage)
	_ = v.RegisterValidation("internship_stage", InternshipStage)
}

// Struct trims every string field of s (a pointer to a struct), validates it and
// returns a 400 AppError listing every failed field, or nil.
func Struct(v *validator.Validate, s interface{}) error {
	Sanitize(s)
	if err := v.Struct(s); err != nil {
		return apperror.Validation(FormatValidationErrors(err))
	}
	return nil
}

// Sanitize trims surrounding whitespace of all string fields and string slice elements,
// recursing into nested structs. Empty slice elements are dropped.
func Sanitize(s interface{}) {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	sanitizeValue(rv.Elem())
}

func sanitizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.CanSet() {
				sanitizeValue(f)
			}
		}
	case reflect.String:
		v.SetString(strings.TrimSpace(v.String()))
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String || v.IsNil() {
			return
		}
		kept := reflect.MakeSlice(v.Type(), 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := strings.TrimSpace(v.Index(i).String())
			if item != "" {
				kept = reflect.Append(kept, reflect.ValueOf(item).Convert(v.Type().Elem()))
			}
		}
		v.Set(kept)
	case reflect.Ptr:
		if !v.IsNil() {
			sanitizeValue(v.Elem())
		}
	}
}

// ValidName validates that a string contains only valid name characters
// Rejects most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false // Supplementary characters (mostly emoji/symbols)
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}

// JobStage accepts only stages of the job application pipeline
func JobStage(fl validator.FieldLevel) bool {
	return domain.JobVocabulary.Contains(domain.Stage(fl.Field().String()))
}

// InternshipStage accepts only stages of the internship application pipeline
func InternshipStage(fl validator.FieldLevel) bool {
	return domain.InternshipVocabulary.Contains(domain.Stage(fl.Field().String()))
}
