package models

import "time"

type Message struct {
	Seq  uint64      `gorm:"primaryKey;autoIncrement" json:"-"`
	ID   string      `gorm:"uniqueIndex;size:36;not null" json:"id"`
	From string      `gorm:"column:from_name;index;not null" json:"from"`
	To   string      `gorm:"column:to_name;index;not null" json:"to"`
	Text string      `gorm:"type:text;not null" json:"text"`
	Type MessageType `gorm:"size:32;not null" json:"type"`
	Time string      `gorm:"size:8" json:"time"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageUpdate - изменяемые поля сообщения
type MessageUpdate struct {
	To   string
	Text string
	Type MessageType
	Time string
}

// NewStatusMessage создает системное сообщение о входе/выходе участника
func NewStatusMessage(name, text string, at time.Time) *Message {
	return &Message{
		From: name,
		To:   BroadcastTarget,
		Text: text,
		Type: MessageTypeStatus,
		Time: at.Format(TimeLayout),
	}
}

// IsStatus - системное сообщение, его нельзя изменять или удалять
func (m *Message) IsStatus() bool {
	return m.Type == MessageTypeStatus
}

// Apply переносит изменяемые поля, id и from не трогаются
func (m *Message) Apply(u MessageUpdate) {
	m.To = u.To
	m.Text = u.Text
	m.Type = u.Type
	m.Time = u.Time
}
