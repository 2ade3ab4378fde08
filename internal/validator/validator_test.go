package validator

import (
	"testing"

	"chatroom_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MessageRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       dto.MessageRequest
		wantField string
	}{
		{name: "valid broadcast", req: dto.MessageRequest{To: "Todos", Text: "hi", Type: "message"}},
		{name: "valid private", req: dto.MessageRequest{To: "Bob", Text: "hi", Type: "private_message"}},
		{name: "missing to", req: dto.MessageRequest{Text: "hi", Type: "message"}, wantField: "to"},
		{name: "missing text", req: dto.MessageRequest{To: "Todos", Type: "message"}, wantField: "text"},
		{name: "status type rejected", req: dto.MessageRequest{To: "Todos", Text: "hi", Type: "status"}, wantField: "type"},
		{name: "unknown type rejected", req: dto.MessageRequest{To: "Todos", Text: "hi", Type: "shout"}, wantField: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Errors, tt.wantField)
		})
	}
}

func TestValidate_ReservedNames(t *testing.T) {
	v := New()

	for _, name := range []string{"Todos", "System", " Todos "} {
		err := v.Validate(&dto.RegisterParticipantRequest{Name: name})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, name)
		assert.Equal(t, "This name is reserved", vErr.Errors["name"])
	}

	require.NoError(t, v.Validate(&dto.RegisterParticipantRequest{Name: "Alice"}))
}

func TestValidate_EmptyName(t *testing.T) {
	err := New().Validate(&dto.RegisterParticipantRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
}
