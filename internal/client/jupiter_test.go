package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{"inputMint":"JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN","outputMint":"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB","inAmount":"1000000","outAmount":"512345","otherAmountThreshold":"507221","swapMode":"ExactIn","slippageBps":100,"priceImpactPct":"0","routePlan":[{"swapInfo":{"label":"Meteora DLMM"},"percent":100}],"contextSlot":12345}`

func unsignedTx(t *testing.T, payer solana.PublicKey) string {
	t.Helper()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, payer, solana.NewWallet().PublicKey()).Build()},
		solana.Hash{1},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)
	b64, err := tx.ToBase64()
	require.NoError(t, err)
	return b64
}

func TestJupiterQuoteAndSwap(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	swapTx := unsignedTx(t, user)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			q := r.URL.Query()
			assert.Equal(t, "1000000", q.Get("amount"))
			assert.Equal(t, "100", q.Get("slippageBps"))
			w.Write([]byte(quoteBody))
		case "/swap":
			assert.Equal(t, http.MethodPost, r.Method)
			body, _ := io.ReadAll(r.Body)
			var req map[string]json.RawMessage
			assert.NoError(t, json.Unmarshal(body, &req))
			// unknown quote fields survive the round trip
			assert.Contains(t, string(req["quoteResponse"]), `"contextSlot":12345`)
			assert.Equal(t, `"auto"`, string(req["prioritizationFeeLamports"]))
			assert.Equal(t, `true`, string(req["wrapAndUnwrapSol"]))
			assert.Equal(t, `"`+user.String()+`"`, string(req["userPublicKey"]))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"swapTransaction":      swapTx,
				"lastValidBlockHeight": 999,
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewJupiterClient(srv.URL, time.Second, 1)
	quote, err := c.Quote(context.Background(), QuoteRequest{
		InputMint:   solana.MustPublicKeyFromBase58("JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"),
		OutputMint:  solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"),
		Amount:      1_000_000,
		SlippageBps: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "512345", quote.OutAmount)
	assert.Equal(t, "Meteora DLMM", quote.Labels())

	resp, err := c.Swap(context.Background(), quote, user)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), resp.LastValidBlockHeight)

	tx, err := resp.Transaction()
	require.NoError(t, err)
	assert.Equal(t, user, tx.Message.AccountKeys[0])
}

func TestQuoteZeroAmount(t *testing.T) {
	_, err := NewJupiterClient("http://127.0.0.1:0", time.Second, 1).Quote(context.Background(), QuoteRequest{})
	assert.Error(t, err)
}

func TestSwapErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"route expired"}`))
	}))
	defer srv.Close()

	_, err := NewJupiterClient(srv.URL, time.Second, 1).Swap(context.Background(), &QuoteResponse{Raw: []byte(quoteBody)}, solana.NewWallet().PublicKey())
	assert.ErrorContains(t, err, "route expired")
}

func TestCheckMinOut(t *testing.T) {
	var quote QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(quoteBody), &quote))

	assert.NoError(t, CheckMinOut(&quote, 0))
	assert.NoError(t, CheckMinOut(&quote, 507_221))
	assert.ErrorIs(t, CheckMinOut(&quote, 507_222), ErrQuoteBelowMinimum)
}
