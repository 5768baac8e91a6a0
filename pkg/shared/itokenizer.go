package shared

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// Tokenizer is implemented by out-of-process token counters.
type Tokenizer interface {
	CountTokens(text string) (int, error)
}

// TokenizerCountRequest carries the text to count over RPC.
type TokenizerCountRequest struct {
	Text string
}

// TokenizerCountResponse carries the count back to the host.
type TokenizerCountResponse struct {
	Tokens int
}

type TokenizerRPCClient struct{ client *rpc.Client }

func (g *TokenizerRPCClient) CountTokens(text string) (int, error) {
	var resp TokenizerCountResponse
	if err := g.client.Call("Plugin.CountTokens", TokenizerCountRequest{Text: text}, &resp); err != nil {
		return 0, err
	}
	return resp.Tokens, nil
}

type TokenizerRPCServer struct {
	Impl Tokenizer
}

func (s *TokenizerRPCServer) CountTokens(req TokenizerCountRequest, resp *TokenizerCountResponse) error {
	n, err := s.Impl.CountTokens(req.Text)
	if err != nil {
		return err
	}
	resp.Tokens = n
	return nil
}

// TokenizerPlugin wires a Tokenizer into go-plugin's net/rpc transport.
type TokenizerPlugin struct {
	Impl Tokenizer
}

func (p *TokenizerPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &TokenizerRPCServer{Impl: p.Impl}, nil
}

func (TokenizerPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &TokenizerRPCClient{client: c}, nil
}
