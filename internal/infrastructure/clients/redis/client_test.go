package redis

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/athul0622-dotcom/local-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	host, port, _ := strings.Cut(mr.Addr(), ":")
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	client, err := NewClient(context.Background(), &config.RedisConfig{Host: host, Port: portNum})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Client().Ping(context.Background()).Err())
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	portNum, _ := strconv.Atoi(port)
	mr.Close()

	_, err := NewClient(context.Background(), &config.RedisConfig{Host: host, Port: portNum})
	assert.Error(t, err)
}
