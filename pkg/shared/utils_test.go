package shared

import (
	"net"
	"net/rpc"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("provider", "", "")
	assert.False(t, HasFlags(flags))

	require.NoError(t, flags.Parse([]string{"--provider", "openai"}))
	assert.True(t, HasFlags(flags))
}

func TestIsInList(t *testing.T) {
	list := []string{"text", "json", "sarif", "html"}
	assert.True(t, IsInList("JSON", list))
	assert.False(t, IsInList("xml", list))
	assert.False(t, IsInList("", nil))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"macro-placement", "token-thresholds"}, SplitList(" macro-placement, ,token-thresholds "))
	assert.Nil(t, SplitList(""))
}

type constTokenizer int

func (c constTokenizer) CountTokens(string) (int, error) { return int(c), nil }

func TestTokenizerRPCRoundTrip(t *testing.T) {
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &TokenizerRPCServer{Impl: constTokenizer(11)}))

	clientConn, serverConn := net.Pipe()
	go server.ServeConn(serverConn)

	client := &TokenizerRPCClient{client: rpc.NewClient(clientConn)}
	defer client.client.Close()

	n, err := client.CountTokens("some text")
	require.NoError(t, err)
	assert.Equal(t, 11, n)
}
