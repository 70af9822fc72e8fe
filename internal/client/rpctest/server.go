// Package rpctest serves a minimal in-memory Solana JSON-RPC endpoint for tests.
package rpctest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

type account struct {
	owner    solana.PublicKey
	data     []byte
	lamports uint64
}

type tokenAccount struct {
	address solana.PublicKey
	data    []byte
}

type Server struct {
	*httptest.Server
	t testing.TB

	mu            sync.Mutex
	accounts      map[solana.PublicKey]account
	failing       map[solana.PublicKey]bool
	tokenAccounts map[solana.PublicKey][]tokenAccount
	sent          []*solana.Transaction
	simulated     []*solana.Transaction
	calls         map[string]int

	Blockhash            solana.Hash
	LastValidBlockHeight uint64
	BlockHeight          uint64
	SimulationErr        interface{}
	SimulationLogs       []string
	SendErr              string
	StatusErr            interface{}
	Pending              bool
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func NewServer(t testing.TB) *Server {
	s := &Server{
		t:                    t,
		accounts:             map[solana.PublicKey]account{},
		failing:              map[solana.PublicKey]bool{},
		tokenAccounts:        map[solana.PublicKey][]tokenAccount{},
		calls:                map[string]int{},
		Blockhash:            solana.Hash{7, 7, 7},
		LastValidBlockHeight: 1000,
		BlockHeight:          10,
		SimulationLogs:       []string{"Program log: ok"},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) SetAccount(address, owner solana.PublicKey, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[address] = account{owner: owner, data: data, lamports: 2_039_280}
	delete(s.failing, address)
}

// FailAccount makes getAccountInfo for address answer with a JSON-RPC error.
func (s *Server) FailAccount(address solana.PublicKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[address] = true
}

func (s *Server) SetMint(mint, tokenProgram solana.PublicKey, decimals uint8, supply uint64) {
	s.SetAccount(mint, tokenProgram, encode(s.t, token.Mint{
		Supply:        supply,
		Decimals:      decimals,
		IsInitialized: true,
	}))
}

func (s *Server) AddTokenAccount(address solana.PublicKey, acc token.Account) {
	data := encode(s.t, acc)
	s.mu.Lock()
	s.tokenAccounts[acc.Owner] = append(s.tokenAccounts[acc.Owner], tokenAccount{address: address, data: data})
	s.mu.Unlock()
	s.SetAccount(address, solana.TokenProgramID, data)
}

func (s *Server) Sent() []*solana.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*solana.Transaction(nil), s.sent...)
}

func (s *Server) Simulated() []*solana.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*solana.Transaction(nil), s.simulated...)
}

func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func encode(t testing.TB, v interface{}) []byte {
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode %T: %v", v, err)
	}
	return buf.Bytes()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode request: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	result, rpcErr := s.dispatch(req)
	s.mu.Unlock()

	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	if rpcErr != "" {
		resp["error"] = map[string]interface{}{"code": -32000, "message": rpcErr}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func withContext(value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"context": map[string]interface{}{"slot": 1},
		"value":   value,
	}
}

func accountJSON(acc account) map[string]interface{} {
	return map[string]interface{}{
		"lamports":   acc.lamports,
		"owner":      acc.owner.String(),
		"data":       []string{base64.StdEncoding.EncodeToString(acc.data), "base64"},
		"executable": false,
		"rentEpoch":  0,
		"space":      len(acc.data),
	}
}

func (s *Server) param(req rpcRequest, i int) string {
	if i >= len(req.Params) {
		return ""
	}
	var out string
	json.Unmarshal(req.Params[i], &out)
	return out
}

func (s *Server) dispatch(req rpcRequest) (interface{}, string) {
	switch req.Method {
	case "getAccountInfo":
		key := solana.MustPublicKeyFromBase58(s.param(req, 0))
		if s.failing[key] {
			return nil, "node is behind"
		}
		acc, ok := s.accounts[key]
		if !ok {
			return withContext(nil), ""
		}
		return withContext(accountJSON(acc)), ""

	case "getTokenAccountsByOwner":
		owner := solana.MustPublicKeyFromBase58(s.param(req, 0))
		list := []map[string]interface{}{}
		for _, ta := range s.tokenAccounts[owner] {
			list = append(list, map[string]interface{}{
				"pubkey":  ta.address.String(),
				"account": accountJSON(account{owner: solana.TokenProgramID, data: ta.data, lamports: 2_039_280}),
			})
		}
		return withContext(list), ""

	case "getLatestBlockhash":
		return withContext(map[string]interface{}{
			"blockhash":            s.Blockhash.String(),
			"lastValidBlockHeight": s.LastValidBlockHeight,
		}), ""

	case "simulateTransaction":
		tx, err := solana.TransactionFromBase64(s.param(req, 0))
		if err != nil {
			return nil, err.Error()
		}
		s.simulated = append(s.simulated, tx)
		return withContext(map[string]interface{}{
			"err":           s.SimulationErr,
			"logs":          s.SimulationLogs,
			"accounts":      nil,
			"unitsConsumed": 4242,
		}), ""

	case "sendTransaction":
		if s.SendErr != "" {
			return nil, s.SendErr
		}
		tx, err := solana.TransactionFromBase64(s.param(req, 0))
		if err != nil {
			return nil, err.Error()
		}
		if len(tx.Signatures) == 0 || tx.Signatures[0].IsZero() {
			return nil, "transaction is not signed"
		}
		s.sent = append(s.sent, tx)
		return tx.Signatures[0].String(), ""

	case "getSignatureStatuses":
		if s.Pending {
			return withContext([]interface{}{nil}), ""
		}
		return withContext([]interface{}{map[string]interface{}{
			"slot":               1,
			"confirmations":      nil,
			"err":                s.StatusErr,
			"confirmationStatus": "finalized",
		}}), ""

	case "getBlockHeight":
		return s.BlockHeight, ""
	}
	return nil, "method not found: " + req.Method
}
