package binder

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
)

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

// Form binds application/x-www-form-urlencoded and multipart/form-data.
//
//	type request struct {
//		Email      string                `form:"email"`
//		RememberMe bool                  `form:"remember_me"` // "on" from checkboxes
//		Name       *string               `form:"name"`        // nil when absent
//		Avatar     *multipart.FileHeader `file:"avatar"`
//	}
func Form() Func {
	return func(r *http.Request, v any) error {
		var (
			values url.Values
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File
		default:
			return ErrNotApplicable
		}

		if err := bindValues(v, "form", values); err != nil {
			return errors.Join(ErrInvalidForm, err)
		}
		if files != nil {
			if err := bindFiles(v, files); err != nil {
				return errors.Join(ErrInvalidForm, err)
			}
		}
		return nil
	}
}

// Query binds URL query parameters. It applies to every request.
func Query() Func {
	return func(r *http.Request, v any) error {
		if err := bindValues(v, "query", r.URL.Query()); err != nil {
			return errors.Join(ErrInvalidQuery, err)
		}
		return nil
	}
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		name := sf.Tag.Get("file")
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		headers := files[name]
		if len(headers) == 0 {
			continue
		}

		field := rv.Field(i)
		switch {
		case sf.Type == fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case sf.Type == reflect.SliceOf(fileHeaderType):
			field.Set(reflect.ValueOf(headers))
		default:
			return errors.New("file field " + sf.Name + " must be *multipart.FileHeader or a slice of them")
		}
	}
	return nil
}
