package proxy

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Direct(t *testing.T) {
	c, err := NewClient("", 5*time.Second)
	require.NoError(t, err)

	assert.Nil(t, c.Transport)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestNewClient_Socks(t *testing.T) {
	c, err := NewClient("127.0.0.1:8888", 30*time.Second)
	require.NoError(t, err)

	assert.IsType(t, &http.Transport{}, c.Transport)
	assert.Equal(t, 30*time.Second, c.Timeout)
}
