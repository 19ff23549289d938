package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

const baseURL = "http://%s/v1"

// ErrInvalidPeerChain is returned when a peer's chain response is malformed.
var ErrInvalidPeerChain = errors.New("peer chain response is malformed")

// =============================================================================

// NetRequestPeerChain asks the specified peer for its full chain.
func (s *State) NetRequestPeerChain(ctx context.Context, pr peer.Peer) (peer.ChainResponse, error) {
	s.evHandler("state: NetRequestPeerChain: started: %s", pr)
	defer s.evHandler("state: NetRequestPeerChain: completed: %s", pr)

	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	var resp peer.ChainResponse
	if err := send(ctx, s.client, http.MethodGet, url, nil, &resp); err != nil {
		return peer.ChainResponse{}, err
	}

	// The reported length must describe the chain that was sent.
	if resp.Length != len(resp.Chain) {
		return peer.ChainResponse{}, fmt.Errorf("%w: length[%d] blocks[%d]", ErrInvalidPeerChain, resp.Length, len(resp.Chain))
	}

	s.evHandler("state: NetRequestPeerChain: peer-node[%s]: length[%d]", pr, resp.Length)

	return resp, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, client *http.Client, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader

	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPeerChain, err)
		}
	}

	return nil
}
