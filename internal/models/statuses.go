package models

// MessageType - тип сообщения в чате
type MessageType string

const (
	MessageTypeMessage        MessageType = "message"         // сообщение для всех или адресное, но публичное
	MessageTypePrivateMessage MessageType = "private_message" // видно только отправителю и получателю
	MessageTypeStatus         MessageType = "status"          // системное: вход/выход участника
)

const (
	// BroadcastTarget - адрес "для всех"
	BroadcastTarget = "Todos"
	// SystemSender - зарезервированное имя системного отправителя
	SystemSender = "System"
)

// Тексты статусных сообщений
const (
	StatusTextJoined = "joined"
	StatusTextLeft   = "left"
)

// TimeLayout - формат поля time (HH:mm:ss)
const TimeLayout = "15:04:05"

// IsReservedName сообщает, что имя нельзя зарегистрировать
func IsReservedName(name string) bool {
	return name == BroadcastTarget || name == SystemSender
}

// IsUserMessageType - типы, которые клиент может указать сам
func IsUserMessageType(t MessageType) bool {
	return t == MessageTypeMessage || t == MessageTypePrivateMessage
}
