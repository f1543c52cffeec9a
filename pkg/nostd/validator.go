package nostd

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
)

// CustomValidator echo 的请求校验器，错误信息翻译为中文，字段名取 json tag
type CustomValidator struct {
	Validator *validator.Validate
	trans     ut.Translator
}

// TransInit 注册翻译器，必须在使用前调用
func (cv *CustomValidator) TransInit() error {
	uni := ut.New(en.New(), zh.New())
	trans, found := uni.GetTranslator("zh")
	if !found {
		return errors.New("zh translator not found")
	}

	cv.Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if err := zhTranslations.RegisterDefaultTranslations(cv.Validator, trans); err != nil {
		return err
	}
	cv.trans = trans
	return nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.Validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || cv.trans == nil {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(cv.trans))
	}
	return errors.New(strings.Join(messages, "; "))
}
