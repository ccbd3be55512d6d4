package controllers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var registerOnce sync.Once

// RegisterValidators adds the isodate (2006-01-02) and clock (15:04) tags
// to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logrus.Warn("gin validator is not go-playground; custom tags not registered")
			return
		}
		_ = v.RegisterValidation("isodate", layoutValidator("2006-01-02"))
		_ = v.RegisterValidation("clock", clockValidator)
	})
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

// clockValidator accepts HH:MM and HH:MM:SS.
func clockValidator(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}
