// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	id, ch := h.Evts.Acquire()
	defer h.Evts.Release(id)

	h.Log.Infow("websocket open", "traceid", web.GetTraceID(ctx), "subscriber", id)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Mine runs the proof of work for the next block, rewards this node and
// appends the block to the chain.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.State.MineNewBlock(ctx)
	if err != nil {
		if errors.Is(err, state.ErrChainChanged) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return err
	}

	resp := minedBlock{
		Message:      "New Block Forged",
		Index:        blk.Index,
		Transactions: blk.Transactions,
		Proof:        blk.Proof,
		PreviousHash: blk.PreviousHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	index, err := h.State.AddTransaction(ntx.toTx())
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := message{
		Message: "Transaction will be added to Block " + strconv.FormatUint(index, 10),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mempool returns the set of transactions waiting for the next block.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Chain returns the full chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	resp := peer.ChainResponse{
		Chain:  chain,
		Length: len(chain),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Block returns the block at the specified index along with its hash.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.NewTrustedf(http.StatusBadRequest, "invalid block index %q", web.Param(r, "index"))
	}

	blk, exists := h.State.RetrieveBlock(index)
	if !exists {
		return errs.NewTrustedf(http.StatusNotFound, "block %d not found", index)
	}

	return web.Respond(ctx, w, block{Hash: blk.Hash(), Block: blk}, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// RegisterNodes adds the specified peers to the set of known peers.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nn newNodes
	if err := web.Decode(r, &nn); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	// Every address must parse before any of them is registered.
	hosts := make([]string, len(nn.Nodes))
	for i, address := range nn.Nodes {
		pr, err := peer.Parse(address)
		if err != nil {
			return errs.NewTrustedf(http.StatusBadRequest, "invalid node address %q: %s", address, err)
		}
		hosts[i] = pr.Host
	}

	for _, host := range hosts {
		if _, err := h.State.RegisterPeer(host); err != nil {
			return err
		}
	}

	resp := registered{
		Message:    "New nodes have been added",
		TotalNodes: h.knownHosts(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Nodes returns the set of known peers.
func (h Handlers) Nodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.knownHosts(), http.StatusOK)
}

// ResolveNodes runs the consensus algorithm against the known peers.
func (h Handlers) ResolveNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, err := h.State.Resolve(ctx)
	if err != nil {
		return err
	}

	resp := resolved{
		Message: "Our chain is authoritative",
		Chain:   h.State.RetrieveChain(),
	}
	if replaced {
		resp.Message = "Our chain was replaced"
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

func (h Handlers) knownHosts() []string {
	peers := h.State.RetrieveKnownPeers()

	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}

	return hosts
}
