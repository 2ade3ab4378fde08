package validator

import (
	"log"
	"strings"

	"chatroom_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-message-type': клиент может отправить только message или private_message
	mustRegister("is-message-type", validateMessageType)

	// 'not-reserved-name': Todos и System занять нельзя
	mustRegister("not-reserved-name", validateNotReservedName)
}

func validateMessageType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	return models.IsUserMessageType(models.MessageType(value))
}

func validateNotReservedName(fl validator.FieldLevel) bool {
	return !models.IsReservedName(strings.TrimSpace(fl.Field().String()))
}
