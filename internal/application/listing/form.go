package listing

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/erp/ausyexpo/internal/domain/shared"
)

// Binding is the editable state of one entity form. Implementations are
// pointers to structs of string and bool fields tagged with `form` names and
// `validate` rules.
type Binding[T any] interface {
	Fill(record T)
	Payload(mode shared.FormMode) (any, error)
}

// Checker adds rules that depend on the form mode or on several fields.
type Checker interface {
	Check(mode shared.FormMode) []shared.FieldError
}

// Enumerator supplies option lists for fields whose values cannot be
// written as a oneof rule, such as values containing spaces.
type Enumerator interface {
	Enums() map[string][]string
}

// Deriver recomputes derived fields after values are bound.
type Deriver interface {
	Derive()
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() { validate = NewValidator() })
	return validate
}

// Form drives one entity form in create or edit mode.
type Form[T shared.Entity, B Binding[T]] struct {
	blank  func() B
	values B
	mode   shared.FormMode
	editID int64
	errs   []shared.FieldError
}

// NewForm returns a form opened in create mode with blank() defaults.
func NewForm[T shared.Entity, B Binding[T]](blank func() B) *Form[T, B] {
	f := &Form[T, B]{blank: blank}
	f.OpenCreate()
	return f
}

// OpenCreate resets the form to its create-mode defaults.
func (f *Form[T, B]) OpenCreate() {
	f.values = f.blank()
	f.mode = shared.ModeCreate
	f.editID = 0
	f.errs = nil
}

// OpenEdit pre-populates the form from record and remembers its id.
func (f *Form[T, B]) OpenEdit(record T) {
	f.values = f.blank()
	f.values.Fill(record)
	f.mode = shared.ModeEdit
	f.editID = record.GetID()
	f.errs = nil
}

// Mode returns the mode the form is open in.
func (f *Form[T, B]) Mode() shared.FormMode { return f.mode }

// EditingID returns the id of the record being edited, or 0 in create mode.
func (f *Form[T, B]) EditingID() int64 { return f.editID }

// Values returns the bound form state.
func (f *Form[T, B]) Values() B { return f.values }

// Errors returns the field errors of the last validation.
func (f *Form[T, B]) Errors() []shared.FieldError { return f.errs }

// Set binds field=value pairs onto the form. Strings are converted to the
// field types ("true"/"false" for switches). Unknown fields are rejected and
// leave the form unchanged.
func (f *Form[T, B]) Set(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	known := FieldNames[T, B]()
	var unknown []shared.FieldError
	for name := range values {
		if !slices.Contains(known, name) {
			unknown = append(unknown, shared.FieldError{Field: name, Message: "Unknown field"})
		}
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i].Field < unknown[j].Field })
		return shared.NewValidationError(unknown...)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           f.values,
	})
	if err != nil {
		return fmt.Errorf("form decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if d, ok := any(f.values).(Deriver); ok {
		d.Derive()
	}
	return nil
}

// Validate runs the field rules and the binding's own checks. It returns a
// *shared.ValidationError listing every failing field, or nil.
func (f *Form[T, B]) Validate() error {
	var errs []shared.FieldError
	if err := formValidator().Struct(f.values); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}
	if c, ok := any(f.values).(Checker); ok {
		errs = append(errs, c.Check(f.mode)...)
	}
	f.errs = errs
	return shared.NewValidationError(errs...)
}

// Submit validates the form and sends it: POST in create mode, PUT to the
// edited record otherwise. Validation failures never reach the network. On
// success the form is reset to create mode; on failure it keeps its values
// and mode so the user can correct and resubmit.
func (f *Form[T, B]) Submit(ctx context.Context, c *Controller[T]) (*T, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if d, ok := any(f.values).(Deriver); ok {
		d.Derive()
	}
	payload, err := f.values.Payload(f.mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var rec *T
	if f.mode == shared.ModeEdit {
		rec, err = c.Update(ctx, f.editID, payload)
	} else {
		rec, err = c.Create(ctx, payload)
	}
	if err != nil {
		return nil, err
	}
	f.OpenCreate()
	return rec, nil
}

// Field describes one form input for introspection.
type Field struct {
	Name     string
	Type     string // text, number, date, datetime, bool
	Required bool
	Options  []string
}

// Fields lists the inputs of binding B in declaration order.
func Fields[T any, B Binding[T]]() []Field {
	rt := bindingType[T, B]()
	var enums map[string][]string
	if e, ok := reflect.New(rt).Interface().(Enumerator); ok {
		enums = e.Enums()
	}
	out := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := strings.SplitN(sf.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		rules := strings.Split(sf.Tag.Get("validate"), ",")
		field := Field{Name: name, Type: "text"}
		if sf.Type.Kind() == reflect.Bool {
			field.Type = "bool"
		}
		for _, rule := range rules {
			switch {
			case rule == "required":
				field.Required = true
			case rule == "date":
				field.Type = "date"
			case rule == "localdatetime":
				field.Type = "datetime"
			case rule == "number" || rule == "integer" || rule == "refid" || rule == "positive" || rule == "nonnegative":
				field.Type = "number"
			case strings.HasPrefix(rule, "oneof="):
				field.Options = strings.Fields(strings.TrimPrefix(rule, "oneof="))
			}
		}
		if opts, ok := enums[name]; ok {
			field.Options = opts
		}
		out = append(out, field)
	}
	return out
}

// FieldNames lists the form names accepted by Set for binding B.
func FieldNames[T any, B Binding[T]]() []string {
	fields := Fields[T, B]()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func bindingType[T any, B Binding[T]]() reflect.Type {
	rt := reflect.TypeFor[B]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}
