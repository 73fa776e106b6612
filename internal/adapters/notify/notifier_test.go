package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bnema/foodcook-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWritesOneLinePerNotification(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(&out)

	terminal.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Dish created"})
	terminal.Notify(domain.Notification{Level: domain.NotificationError, Message: "permission denied"})

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Dish created")
	assert.Contains(t, lines[1], "error: permission denied")
}

func TestTerminalQuietKeepsErrors(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(&out)
	terminal.SetQuiet(true)

	terminal.Notify(domain.Notification{Level: domain.NotificationSuccess, Message: "Logged in"})
	terminal.Notify(domain.Notification{Level: domain.NotificationError, Message: "network connection failed"})

	assert.NotContains(t, out.String(), "Logged in")
	assert.Contains(t, out.String(), "error: network connection failed")
}
