package types

type GetVersionRequest struct{}

type GetVersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
	// Wallet and Commitment describe the running service, if any.
	Wallet     string `json:"wallet,omitempty"`
	Commitment string `json:"commitment,omitempty"`
	DryRun     bool   `json:"dryRun,omitempty"`
}

// TxResult is the part every write operation reports about its transaction.
type TxResult struct {
	Signature     string   `json:"signature,omitempty"`
	Link          string   `json:"link,omitempty"`
	Simulated     bool     `json:"simulated,omitempty"`
	UnitsConsumed uint64   `json:"unitsConsumed,omitempty"`
	MaxFee        uint64   `json:"maxFeeLamports,omitempty"`
	Logs          []string `json:"logs,omitempty"`
	Tree          string   `json:"tree,omitempty"`
}

type ClaimRequest struct {
	Mint string `json:"mint,optional"`
}

type ClaimResponse struct {
	Wallet      string `json:"wallet"`
	Mint        string `json:"mint"`
	ClaimStatus string `json:"claimStatus,omitempty"`
	Amount      uint64 `json:"amount"`
	UIAmount    string `json:"uiAmount"`
	TxResult
}

type StakeRequest struct {
	// Amount is in whole tokens, e.g. "12.5".
	Amount string `json:"amount"`
}

type StakeResponse struct {
	Wallet        string `json:"wallet"`
	Escrow        string `json:"escrow"`
	EscrowTokens  string `json:"escrowTokens"`
	Amount        uint64 `json:"amount"`
	UIAmount      string `json:"uiAmount"`
	CreatedEscrow bool   `json:"createdEscrow"`
	TxResult
}

type VoteRequest struct {
	Proposal string `json:"proposal"`
	Side     uint8  `json:"side"`
}

type VoteResponse struct {
	Wallet   string `json:"wallet"`
	Proposal string `json:"proposal"`
	Vote     string `json:"vote"`
	Side     uint8  `json:"side"`
	// Voted is set once a vote transaction confirms. AlreadyVoted means
	// the vote record existed and nothing was sent.
	Voted        bool `json:"voted"`
	AlreadyVoted bool `json:"alreadyVoted"`
	TxResult
}

type SwapRequest struct {
	InputMint   string `json:"inputMint"`
	OutputMint  string `json:"outputMint,optional"`
	Amount      uint64 `json:"amount"`
	SlippageBps uint16 `json:"slippageBps,optional"`
	MinOut      uint64 `json:"minOut,optional"`
}

type SwapResponse struct {
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   uint64 `json:"inAmount"`
	OutAmount  uint64 `json:"outAmount"`
	MinOut     uint64 `json:"minOut"`
	Route      string `json:"route"`
	TxResult
}

type ClaimSwapResponse struct {
	// ClaimOK is false when the claim itself failed.
	ClaimOK bool           `json:"claimOk"`
	Claim   *ClaimResponse `json:"claim"`
	Swap    *SwapResponse  `json:"swap,omitempty"`
}

type AllocationRequest struct {
	Wallet string `form:"wallet"`
	Mint   string `form:"mint,optional"`
}

type AllocationResponse struct {
	Wallet       string `json:"wallet"`
	Mint         string `json:"mint"`
	Eligible     bool   `json:"eligible"`
	Claimed      bool   `json:"claimed"`
	MerkleTree   string `json:"merkleTree,omitempty"`
	ClaimStatus  string `json:"claimStatus,omitempty"`
	Amount       uint64 `json:"amount"`
	LockedAmount uint64 `json:"lockedAmount"`
}

type AddressRequest struct {
	Wallet     string `form:"wallet"`
	Proposal   string `form:"proposal,optional"`
	MerkleTree string `form:"merkleTree,optional"`
}

type AddressResponse struct {
	Wallet       string `json:"wallet"`
	Escrow       string `json:"escrow"`
	EscrowTokens string `json:"escrowTokens"`
	ClaimStatus  string `json:"claimStatus,omitempty"`
	Vote         string `json:"vote,omitempty"`
}

type HistoryRequest struct {
	Wallet string `form:"wallet"`
	Limit  int    `form:"limit,default=20"`
}

type HistoryEntry struct {
	Kind      string `json:"kind"`
	Mint      string `json:"mint,omitempty"`
	Signature string `json:"signature,omitempty"`
	Amount    uint64 `json:"amount"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type HistoryResponse struct {
	Wallet  string          `json:"wallet"`
	Entries []*HistoryEntry `json:"entries"`
}
