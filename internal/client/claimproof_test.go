package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proofJSON(tree solana.PublicKey) string {
	node := make([]string, 32)
	for i := range node {
		node[i] = fmt.Sprint(i)
	}
	n := "[" + strings.Join(node, ",") + "]"
	return fmt.Sprintf(`{"merkle_tree":%q,"amount":1500000,"locked_amount":0,"proof":[%s,%s]}`, tree, n, n)
}

func TestGetProof(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	wallet := solana.NewWallet().PublicKey()
	tree := solana.NewWallet().PublicKey()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+mint.String()+"/"+wallet.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(proofJSON(tree)))
	}))
	defer srv.Close()

	proof, err := NewProofClient(srv.URL+"/", time.Second, 1).GetProof(context.Background(), mint, wallet)
	require.NoError(t, err)
	assert.Equal(t, tree, proof.MerkleTree)
	assert.Equal(t, uint64(1_500_000), proof.Amount)
	require.Len(t, proof.Proof, 2)
	assert.Equal(t, byte(31), proof.Proof[1][31])
}

func TestGetProofEmptyBody(t *testing.T) {
	for _, body := range []string{"", " \n", "null", "{}"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(body))
		}))

		proof, err := NewProofClient(srv.URL, time.Second, 1).GetProof(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
		assert.ErrorIs(t, err, ErrNoAllocation, "body %q", body)
		assert.Nil(t, proof, "body %q", body)
		srv.Close()
	}
}

func TestGetProofNon200(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewProofClient(srv.URL, time.Second, 3).GetProof(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAllocation)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, int32(1), hits.Load(), "4xx is not retried")
}

func TestGetProofRetries5xx(t *testing.T) {
	var hits atomic.Int32
	tree := solana.NewWallet().PublicKey()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(proofJSON(tree)))
	}))
	defer srv.Close()

	proof, err := NewProofClient(srv.URL, time.Second, 3).GetProof(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, tree, proof.MerkleTree)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetProofBadNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"merkle_tree":"11111111111111111111111111111111","amount":1,"locked_amount":0,"proof":[[1,2]]}`))
	}))
	defer srv.Close()

	_, err := NewProofClient(srv.URL, time.Second, 1).GetProof(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	assert.ErrorContains(t, err, "proof node 0")
}
