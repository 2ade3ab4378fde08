package apperrors

import (
	"net/http"
)

// --- Participants ---

// ErrParticipantExists - имя уже занято активным участником.
var ErrParticipantExists = New(
	CodeAlreadyExists,
	"participants",
	"Participant name is already in use",
	http.StatusConflict, // 409
)

// ErrParticipantNotFound - участник не активен (не зарегистрирован или выселен).
var ErrParticipantNotFound = New(
	CodeNotFound,
	"participants",
	"Participant not found",
	http.StatusNotFound, // 404
)

// ErrReservedName - имя зарезервировано (адрес рассылки или системный отправитель).
var ErrReservedName = New(
	CodeValidationFailed,
	"validation",
	"Participant name is reserved",
	http.StatusUnprocessableEntity, // 422
)

// --- Messages ---

// ErrMessageNotFound - сообщение не найдено.
var ErrMessageNotFound = New(
	CodeNotFound,
	"messages",
	"Message not found",
	http.StatusNotFound, // 404
)

// ErrInactiveSender - отправитель не является активным участником.
// По контракту API это 422, а не 401.
var ErrInactiveSender = New(
	CodeUnauthorized,
	"messages",
	"Sender is not an active participant",
	http.StatusUnprocessableEntity, // 422
)

// ErrNotMessageOwner - изменять и удалять сообщение может только его автор.
// По контракту API это 401.
var ErrNotMessageOwner = New(
	CodeForbidden,
	"messages",
	"Only the sender may modify this message",
	http.StatusUnauthorized, // 401
)

// ErrInvalidLimit - параметр limit не является целым числом.
var ErrInvalidLimit = New(
	CodeValidationFailed,
	"validation",
	"Query parameter 'limit' must be an integer",
	http.StatusUnprocessableEntity, // 422
)
