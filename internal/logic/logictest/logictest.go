// Package logictest wires a ServiceContext against in-process fakes.
package logictest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"jupkit/internal/client"
	"jupkit/internal/client/rpctest"
	"jupkit/internal/config"
	"jupkit/internal/global"
	"jupkit/internal/journal/memory"
	"jupkit/internal/svc"
	"jupkit/internal/wallet"
)

type Env struct {
	Svc    *svc.ServiceContext
	RPC    *rpctest.Server
	Wallet *wallet.Wallet
}

// New returns a context with a fresh wallet, an in-memory journal and the
// mainnet program ids. HTTP backends are attached with WithProofs and
// WithJupiter.
func New(t *testing.T) *Env {
	t.Helper()
	srv := rpctest.NewServer(t)

	w, err := wallet.FromBase58(solana.NewWallet().PrivateKey.String())
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}

	var c config.Config
	c.Claim = config.ClaimConf{Program: global.DistributorProgram.String(), Mint: global.JUPMint.String(), UnitLimit: 150_000, MicroLamports: 56_000}
	c.Stake = config.StakeConf{Program: global.LockedVoterProgram.String(), Locker: global.JupLocker.String(), Mint: global.JUPMint.String(), UnitLimit: 400_000, MicroLamports: 100_000}
	c.Vote = config.VoteConf{Program: global.GovernProgram.String(), Governor: global.JupGovernor.String(), UnitLimit: 400_000, MicroLamports: 100_000}
	c.Swap = config.SwapConf{OutputMint: global.USDTMint.String(), SlippageBps: 100}
	accounts, err := c.ParseAccounts()
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}

	return &Env{
		RPC:    srv,
		Wallet: w,
		Svc: &svc.ServiceContext{
			Config:   c,
			Accounts: accounts,
			Sol:      client.NewSolClient(srv.URL, client.WithPollInterval(5*time.Millisecond), client.WithConfirmTimeout(2*time.Second)),
			Journal:  memory.NewStore(),
			Wallet:   w,
		},
	}
}

func (e *Env) WithProofs(t *testing.T, h http.HandlerFunc) *Env {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	e.Svc.Proofs = client.NewProofClient(srv.URL, time.Second, 1)
	return e
}

func (e *Env) WithJupiter(t *testing.T, h http.HandlerFunc) *Env {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	e.Svc.Jupiter = client.NewJupiterClient(srv.URL, time.Second, 1)
	return e
}

func (e *Env) Payer() solana.PublicKey {
	return e.Wallet.PublicKey()
}

// Instruction resolves the i-th compiled instruction of tx.
func Instruction(t *testing.T, tx *solana.Transaction, i int) (solana.PublicKey, []*solana.AccountMeta, []byte) {
	t.Helper()
	if i >= len(tx.Message.Instructions) {
		t.Fatalf("transaction has %d instructions, want index %d", len(tx.Message.Instructions), i)
	}
	ix := tx.Message.Instructions[i]
	program, err := tx.ResolveProgramIDIndex(ix.ProgramIDIndex)
	if err != nil {
		t.Fatalf("resolve program: %v", err)
	}
	accounts, err := ix.ResolveInstructionAccounts(&tx.Message)
	if err != nil {
		t.Fatalf("resolve accounts: %v", err)
	}
	return program, accounts, ix.Data
}

// Programs lists the program id of every instruction in tx.
func Programs(t *testing.T, tx *solana.Transaction) []solana.PublicKey {
	t.Helper()
	out := make([]solana.PublicKey, len(tx.Message.Instructions))
	for i := range tx.Message.Instructions {
		out[i], _, _ = Instruction(t, tx, i)
	}
	return out
}

// QuoteBody is a Jupiter quote for 1 JUP into USDT.
const QuoteBody = `{"inputMint":"JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN","outputMint":"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB","inAmount":"1000000","outAmount":"512345","otherAmountThreshold":"507221","swapMode":"ExactIn","slippageBps":100,"priceImpactPct":"0","routePlan":[{"swapInfo":{"label":"Meteora DLMM"},"percent":100}],"contextSlot":12345}`

// Jupiter fakes the quote and swap endpoints. The swap transaction is an
// unsigned transfer paid by user. Quote query strings are passed to onQuote.
func Jupiter(t *testing.T, user solana.PublicKey, onQuote func(url.Values)) http.HandlerFunc {
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, user, solana.NewWallet().PublicKey()).Build()},
		solana.Hash{1},
		solana.TransactionPayer(user),
	)
	if err != nil {
		t.Fatalf("swap tx: %v", err)
	}
	b64, err := tx.ToBase64()
	if err != nil {
		t.Fatalf("swap tx: %v", err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			if onQuote != nil {
				onQuote(r.URL.Query())
			}
			w.Write([]byte(QuoteBody))
		case "/swap":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"swapTransaction":      b64,
				"lastValidBlockHeight": 999,
			})
		default:
			http.NotFound(w, r)
		}
	}
}
