package pda

import (
	"github.com/gagliardetto/solana-go"
)

var (
	ClaimStatusSeed = []byte("ClaimStatus")
	EscrowSeed      = []byte("Escrow")
	VoteSeed        = []byte("Vote")
)

// DeriveClaimStatusPDA derives the claim record a distributor keeps per claimant.
func DeriveClaimStatusPDA(programID, claimant, distributor solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			ClaimStatusSeed,
			claimant.Bytes(),
			distributor.Bytes(),
		},
		programID,
	)
}

// DeriveEscrowPDA derives the escrow holding the owner's locked tokens in a locker.
func DeriveEscrowPDA(programID, locker, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			EscrowSeed,
			locker.Bytes(),
			owner.Bytes(),
		},
		programID,
	)
}

// DeriveVotePDA derives the ballot of voter on proposal.
func DeriveVotePDA(programID, proposal, voter solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			VoteSeed,
			proposal.Bytes(),
			voter.Bytes(),
		},
		programID,
	)
}

// Addresses is every derived account relevant to one wallet.
type Addresses struct {
	Escrow      solana.PublicKey
	ClaimStatus solana.PublicKey
	Vote        solana.PublicKey
}

// Programs names the deployments and well-known accounts derivations run against.
type Programs struct {
	Distributor solana.PublicKey
	LockedVoter solana.PublicKey
	Locker      solana.PublicKey
	Govern      solana.PublicKey
}

// DeriveAll derives the escrow of wallet and, when set, the claim status for
// distributor and the vote for proposal. Unset inputs leave the output zero.
func DeriveAll(p Programs, wallet, distributor, proposal solana.PublicKey) (Addresses, error) {
	var (
		out Addresses
		err error
	)
	out.Escrow, _, err = DeriveEscrowPDA(p.LockedVoter, p.Locker, wallet)
	if err != nil {
		return out, err
	}
	if !distributor.IsZero() {
		out.ClaimStatus, _, err = DeriveClaimStatusPDA(p.Distributor, wallet, distributor)
		if err != nil {
			return out, err
		}
	}
	if !proposal.IsZero() {
		out.Vote, _, err = DeriveVotePDA(p.Govern, proposal, wallet)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
