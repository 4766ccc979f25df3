package handler

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// registerScheduleValidations 注册 notblank、day 和 preference 校验规则以及对应的中文翻译
func registerScheduleValidations(validate *validator.Validate, trans ut.Translator) error {
	if err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDay(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidation("preference", func(fl validator.FieldLevel) bool {
		_, _, err := domain.ParsePreference(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	// notblank 的提示使用字段名，day 和 preference 的提示使用出错的值
	translations := []struct {
		tag   string
		text  string
		param func(fe validator.FieldError) string
	}{
		{"notblank", "{0}不能为空白", func(fe validator.FieldError) string { return fe.Field() }},
		{"day", "{0} 必须是 Monday 到 Sunday 中的一天", func(fe validator.FieldError) string { return fmt.Sprintf("%v", fe.Value()) }},
		{"preference", "{0} 必须是 morning、afternoon、evening 或 none", func(fe validator.FieldError) string { return fmt.Sprintf("%v", fe.Value()) }},
	}
	for _, tr := range translations {
		if err := validate.RegisterTranslation(tr.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(tr.tag, tr.text, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(fe.Tag(), tr.param(fe))
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		); err != nil {
			return err
		}
	}

	return nil
}

// mergePreferences 将请求中的偏好合并到 preferences 中，值为 none 或空字符串时删除当天的偏好
// 调用前请求必须已经通过校验，同一天以不同大小写出现多次时返回错误
func mergePreferences(preferences map[domain.Day]domain.ShiftKind, raw map[string]string) error {
	seen := make(map[domain.Day]struct{}, len(raw))
	for dayName, value := range raw {
		day, err := domain.ParseDay(dayName)
		if err != nil {
			return err
		}
		if _, exists := seen[day]; exists {
			return fmt.Errorf("%s 的偏好重复出现", day)
		}
		seen[day] = struct{}{}
		kind, ok, err := domain.ParsePreference(value)
		if err != nil {
			return err
		}
		if ok {
			preferences[day] = kind
		} else {
			delete(preferences, day)
		}
	}
	return nil
}
