package config

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"jupkit/internal/global"
)

var C Config

type Config struct {
	Rest    RestConf
	Log     LogConf
	Banner  BannerConf
	Wallet  WalletConf
	Solana  SolanaConf
	Jupiter JupiterConf
	Claim   ClaimConf
	Stake   StakeConf
	Vote    VoteConf
	Swap    SwapConf
	Journal JournalConf
}

type RestConf struct {
	rest.RestConf
}

type LogConf struct {
	logx.LogConf
}

type BannerConf struct {
	Text     string `json:",default=JUPKIT"`
	Color    string `json:",default=green"`
	FontName string `json:",default=starwars,options=big|larry3d|starwars|standard"`
}

// WalletConf holds the signing key. PrivateKey takes a base58 secret or the
// content of a JSON key file; Mnemonic is used when PrivateKey is empty.
type WalletConf struct {
	PrivateKey     string `json:",optional"`
	Mnemonic       string `json:",optional"`
	Passphrase     string `json:",optional"`
	DerivationPath string `json:",default=m/44'/501'/0'/0'"`
}

type SolanaConf struct {
	Rpc            string        `json:",default=https://api.mainnet-beta.solana.com"`
	Ws             string        `json:",optional"`
	Commitment     string        `json:",default=confirmed,options=processed|confirmed|finalized"`
	ConfirmTimeout time.Duration `json:",default=90s"`
	PollInterval   time.Duration `json:",default=500ms"`
}

type JupiterConf struct {
	SwapURL  string        `json:",default=https://lite-api.jup.ag/swap/v1"`
	ProofURL string        `json:",default=https://worker.jup.ag/jup-claim-proof"`
	Timeout  time.Duration `json:",default=10s"`
	Retries  uint          `json:",default=3"`
}

type ClaimConf struct {
	Program       string `json:",default=DiSLRwcSFvtwvMWSs7ubBMvYRaYNYupa76ZSuYLe6D7j"`
	Mint          string `json:",default=JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"`
	UnitLimit     uint32 `json:",default=150000"`
	MicroLamports uint64 `json:",default=56000"`
}

type StakeConf struct {
	Program       string `json:",default=voTpe3tHQ7AjQHMapgSue2HJFAh2cGsdokqN3XqmVSj"`
	Locker        string `json:",default=CVMdMd79no569tjc5Sq7kzz8RSjxTgbQpbZo9aM1SWXU"`
	Mint          string `json:",default=JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"`
	UnitLimit     uint32 `json:",default=400000"`
	MicroLamports uint64 `json:",default=100000"`
}

type VoteConf struct {
	Program       string `json:",default=GovaE4iu227srtG2s3tZzB4RmWBzw8sTwrCLZz7kN7rY"`
	Governor      string `json:",default=EZjEbaSd1KrTUKHNGhyHj42PxnoK742aGaNNqb9Rcpgu"`
	UnitLimit     uint32 `json:",default=400000"`
	MicroLamports uint64 `json:",default=100000"`
}

type SwapConf struct {
	OutputMint  string `json:",default=Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"`
	SlippageBps uint16 `json:",default=100"`
	MinOut      uint64 `json:",optional"`
}

// JournalConf selects the journal backend. An empty DataSource keeps the
// journal in memory for the lifetime of the process.
type JournalConf struct {
	DataSource string `json:",optional"`
	MaxConns   int32  `json:",default=4"`
}

func (c ClaimConf) Budget() global.ComputeBudget {
	return global.ComputeBudget{UnitLimit: c.UnitLimit, MicroLamports: c.MicroLamports}
}

func (c StakeConf) Budget() global.ComputeBudget {
	return global.ComputeBudget{UnitLimit: c.UnitLimit, MicroLamports: c.MicroLamports}
}

func (c VoteConf) Budget() global.ComputeBudget {
	return global.ComputeBudget{UnitLimit: c.UnitLimit, MicroLamports: c.MicroLamports}
}

// Accounts is the parsed form of the program ids and well-known accounts.
type Accounts struct {
	Distributor solana.PublicKey
	ClaimMint   solana.PublicKey
	LockedVoter solana.PublicKey
	Locker      solana.PublicKey
	StakeMint   solana.PublicKey
	Govern      solana.PublicKey
	Governor    solana.PublicKey
	OutputMint  solana.PublicKey
}

// ParseAccounts validates every address in c.
func (c Config) ParseAccounts() (Accounts, error) {
	var (
		a   Accounts
		err error
	)
	fields := []struct {
		name string
		src  string
		dst  *solana.PublicKey
	}{
		{"Claim.Program", c.Claim.Program, &a.Distributor},
		{"Claim.Mint", c.Claim.Mint, &a.ClaimMint},
		{"Stake.Program", c.Stake.Program, &a.LockedVoter},
		{"Stake.Locker", c.Stake.Locker, &a.Locker},
		{"Stake.Mint", c.Stake.Mint, &a.StakeMint},
		{"Vote.Program", c.Vote.Program, &a.Govern},
		{"Vote.Governor", c.Vote.Governor, &a.Governor},
		{"Swap.OutputMint", c.Swap.OutputMint, &a.OutputMint},
	}
	for _, f := range fields {
		if *f.dst, err = solana.PublicKeyFromBase58(f.src); err != nil {
			return a, fmt.Errorf("config %s %q: %w", f.name, f.src, err)
		}
	}
	return a, nil
}
