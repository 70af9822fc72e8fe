package ata

import (
	"github.com/gagliardetto/solana-go"
)

// Find returns the associated token account of wallet for mint under
// tokenProgram. Off-curve wallets (PDAs) are allowed.
func Find(
	wallet solana.PublicKey,
	mint solana.PublicKey,
	tokenProgram solana.PublicKey,
) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		wallet[:],
		tokenProgram[:],
		mint[:],
	},
		solana.SPLAssociatedTokenAccountProgramID,
	)
}

// IsTokenProgram reports whether id is SPL Token or Token-2022.
func IsTokenProgram(id solana.PublicKey) bool {
	return id.Equals(solana.TokenProgramID) || id.Equals(solana.Token2022ProgramID)
}
