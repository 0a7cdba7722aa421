package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageID(t *testing.T) {
	headers := map[string][]string{
		"X-Message-Id": {"msg-123", "msg-456"},
	}
	assert.Equal(t, "msg-123", messageID(headers))
}

func TestMessageIDMissingHeader(t *testing.T) {
	assert.Equal(t, "", messageID(map[string][]string{}))
	assert.Equal(t, "", messageID(map[string][]string{"X-Message-Id": {}}))
	assert.Equal(t, "", messageID(nil))
}
