// Package validators holds custom go-playground validator functions shared by domain entities and request DTOs.
package validators

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// KeySizeValidation validates the key size based on the sibling Algorithm field (AES or RSA).
func KeySizeValidation(fl validator.FieldLevel) bool {
	algorithm := fl.Parent().FieldByName("Algorithm").String()

	var keySize uint64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fl.Field().Int() < 0 {
			return false
		}
		keySize = uint64(fl.Field().Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		keySize = fl.Field().Uint()
	default:
		return false
	}

	switch algorithm {
	case "AES":
		return keySize == 128 || keySize == 192 || keySize == 256
	case "RSA":
		return keySize == 1024 || keySize == 2048 || keySize == 3072 || keySize == 4096
	default:
		return false
	}
}
