package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/telecom/internal/entities"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		role    entities.Role
		cmd     Command
		allowed bool
	}{
		{entities.RoleGuest, CommandLogin, true},
		{entities.RoleGuest, CommandHealth, true},
		{entities.RoleGuest, CommandListSubscribers, false},
		{entities.RoleGuest, CommandPayInvoice, false},
		{entities.RoleUser, CommandLogout, true},
		{entities.RoleUser, CommandListSubscribers, true},
		{entities.RoleUser, CommandListServices, true},
		{entities.RoleUser, CommandSubscriberDetails, true},
		{entities.RoleUser, CommandBlockSubscriber, false},
		{entities.RoleUser, CommandListUnpaid, false},
		{entities.RoleUser, CommandInitData, false},
		{entities.RoleAdmin, CommandInitData, true},
		{entities.RoleAdmin, CommandPayInvoice, true},
		{entities.RoleAdmin, Command("unknown"), true},
		{entities.RoleUser, Command("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cmd), func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsAllowed(tt.role, tt.cmd))
		})
	}
}
