package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/valyala/fasthttp"
)

var ErrQuoteBelowMinimum = errors.New("quote below minimum output")

type RoutePlan struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  int      `json:"percent"`
}

type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`
	FeeAmount  string `json:"feeAmount"`
	FeeMint    string `json:"feeMint"`
}

// QuoteResponse keeps the body it was decoded from so the swap request can
// post the quote back untouched.
type QuoteResponse struct {
	InputMint            string      `json:"inputMint"`
	OutputMint           string      `json:"outputMint"`
	InAmount             string      `json:"inAmount"`
	OutAmount            string      `json:"outAmount"`
	OtherAmountThreshold string      `json:"otherAmountThreshold"`
	SwapMode             string      `json:"swapMode"`
	SlippageBps          int         `json:"slippageBps"`
	PriceImpactPct       string      `json:"priceImpactPct"`
	RoutePlan            []RoutePlan `json:"routePlan"`

	Raw json.RawMessage `json:"-"`
}

func (q *QuoteResponse) OutAmountUint() (uint64, error) {
	return strconv.ParseUint(q.OutAmount, 10, 64)
}

func (q *QuoteResponse) MinOutAmount() (uint64, error) {
	return strconv.ParseUint(q.OtherAmountThreshold, 10, 64)
}

// Labels lists the AMMs along the route.
func (q *QuoteResponse) Labels() string {
	labels := make([]string, 0, len(q.RoutePlan))
	for _, r := range q.RoutePlan {
		labels = append(labels, r.SwapInfo.Label)
	}
	return strings.Join(labels, " -> ")
}

type QuoteRequest struct {
	InputMint   solana.PublicKey
	OutputMint  solana.PublicKey
	Amount      uint64
	SlippageBps uint16
}

type SwapRequest struct {
	QuoteResponse             json.RawMessage `json:"quoteResponse"`
	UserPublicKey             string          `json:"userPublicKey"`
	WrapAndUnwrapSol          bool            `json:"wrapAndUnwrapSol"`
	DynamicComputeUnitLimit   bool            `json:"dynamicComputeUnitLimit"`
	PrioritizationFeeLamports interface{}     `json:"prioritizationFeeLamports,omitempty"`
}

type SwapResponse struct {
	SwapTransaction           string `json:"swapTransaction"`
	LastValidBlockHeight      uint64 `json:"lastValidBlockHeight"`
	PrioritizationFeeLamports uint64 `json:"prioritizationFeeLamports"`
	Error                     string `json:"error"`
}

// Transaction decodes the base64 versioned transaction.
func (s *SwapResponse) Transaction() (*solana.Transaction, error) {
	tx, err := solana.TransactionFromBase64(s.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("decode swap transaction: %w", err)
	}
	return tx, nil
}

type JupiterClient struct {
	baseURL string
	http    *httpDoer
}

func NewJupiterClient(baseURL string, timeout time.Duration, attempts uint) *JupiterClient {
	return &JupiterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPDoer(timeout, attempts),
	}
}

func (c *JupiterClient) Quote(ctx context.Context, in QuoteRequest) (*QuoteResponse, error) {
	if in.Amount == 0 {
		return nil, errors.New("quote: amount is zero")
	}
	q := url.Values{}
	q.Set("inputMint", in.InputMint.String())
	q.Set("outputMint", in.OutputMint.String())
	q.Set("amount", strconv.FormatUint(in.Amount, 10))
	q.Set("slippageBps", strconv.FormatUint(uint64(in.SlippageBps), 10))
	apiURL := c.baseURL + "/quote?" + q.Encode()

	_, body, err := c.http.do(ctx, fasthttp.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	if quote.OutAmount == "" {
		return nil, fmt.Errorf("quote: empty route for %s -> %s", in.InputMint, in.OutputMint)
	}
	quote.Raw = append(json.RawMessage(nil), body...)
	return &quote, nil
}

// Swap asks for a serialized swap transaction paid and signed by user.
func (c *JupiterClient) Swap(ctx context.Context, quote *QuoteResponse, user solana.PublicKey) (*SwapResponse, error) {
	raw := quote.Raw
	if len(raw) == 0 {
		var err error
		if raw, err = json.Marshal(quote); err != nil {
			return nil, err
		}
	}
	reqBody, err := json.Marshal(SwapRequest{
		QuoteResponse:             raw,
		UserPublicKey:             user.String(),
		WrapAndUnwrapSol:          true,
		DynamicComputeUnitLimit:   true,
		PrioritizationFeeLamports: "auto",
	})
	if err != nil {
		return nil, err
	}

	_, body, err := c.http.do(ctx, fasthttp.MethodPost, c.baseURL+"/swap", reqBody)
	if err != nil {
		return nil, fmt.Errorf("swap: %w", err)
	}
	var resp SwapResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode swap: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("swap: %s", resp.Error)
	}
	if resp.SwapTransaction == "" {
		return nil, errors.New("swap: empty transaction")
	}
	return &resp, nil
}

// CheckMinOut rejects a quote whose worst-case output is under minOut.
// A zero minOut accepts any quote.
func CheckMinOut(quote *QuoteResponse, minOut uint64) error {
	if minOut == 0 {
		return nil
	}
	got, err := quote.MinOutAmount()
	if err != nil {
		return fmt.Errorf("parse otherAmountThreshold %q: %w", quote.OtherAmountThreshold, err)
	}
	if got < minOut {
		return fmt.Errorf("%w: %d < %d", ErrQuoteBelowMinimum, got, minOut)
	}
	return nil
}
