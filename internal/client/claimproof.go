package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/valyala/fasthttp"
)

// ErrNoAllocation means the proof worker answered 200 with an empty body.
var ErrNoAllocation = errors.New("no allocation")

// ClaimProof is the eligibility record for one wallet and mint. Amounts are
// raw token units.
type ClaimProof struct {
	MerkleTree   solana.PublicKey `json:"merkle_tree"`
	Amount       uint64           `json:"amount"`
	LockedAmount uint64           `json:"locked_amount"`
	Proof        [][32]byte       `json:"-"`
	RawProof     [][]int          `json:"proof"`
}

func (p *ClaimProof) decodeProof() error {
	p.Proof = make([][32]byte, len(p.RawProof))
	for i, node := range p.RawProof {
		if len(node) != 32 {
			return fmt.Errorf("proof node %d has %d bytes", i, len(node))
		}
		for j, v := range node {
			if v < 0 || v > 255 {
				return fmt.Errorf("proof node %d byte %d out of range", i, j)
			}
			p.Proof[i][j] = byte(v)
		}
	}
	return nil
}

type ProofClient struct {
	baseURL string
	http    *httpDoer
}

func NewProofClient(baseURL string, timeout time.Duration, attempts uint) *ProofClient {
	return &ProofClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPDoer(timeout, attempts),
	}
}

// GetProof fetches the claim proof of wallet for mint.
func (c *ProofClient) GetProof(ctx context.Context, mint, wallet solana.PublicKey) (*ClaimProof, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, mint, wallet)
	status, body, err := c.http.do(ctx, fasthttp.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get claim proof: %w", err)
	}
	if status != fasthttp.StatusOK {
		return nil, fmt.Errorf("get claim proof: %w", &StatusError{URL: url, Code: status, Body: truncate(body)})
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrNoAllocation
	}
	var proof ClaimProof
	if err := json.Unmarshal(body, &proof); err != nil {
		return nil, fmt.Errorf("decode claim proof: %w", err)
	}
	// null or {} carry no distributor
	if proof.MerkleTree.IsZero() {
		return nil, ErrNoAllocation
	}
	if err := proof.decodeProof(); err != nil {
		return nil, fmt.Errorf("decode claim proof: %w", err)
	}
	return &proof, nil
}
