package global

import (
	"github.com/gagliardetto/solana-go"
)

var (
	// Solana chain explorer pages
	ChainExplorerAccount = "https://solscan.io/account/"
	ChainExplorerTxLink  = "https://solscan.io/tx/"

	WSOLMint = solana.SolMint
	USDCMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	USDTMint = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	JUPMint  = solana.MustPublicKeyFromBase58("JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN")

	// Jupiter governance deployment
	DistributorProgram = solana.MustPublicKeyFromBase58("DiSLRwcSFvtwvMWSs7ubBMvYRaYNYupa76ZSuYLe6D7j")
	LockedVoterProgram = solana.MustPublicKeyFromBase58("voTpe3tHQ7AjQHMapgSue2HJFAh2cGsdokqN3XqmVSj")
	GovernProgram      = solana.MustPublicKeyFromBase58("GovaE4iu227srtG2s3tZzB4RmWBzw8sTwrCLZz7kN7rY")
	JupLocker          = solana.MustPublicKeyFromBase58("CVMdMd79no569tjc5Sq7kzz8RSjxTgbQpbZo9aM1SWXU")
	JupGovernor        = solana.MustPublicKeyFromBase58("EZjEbaSd1KrTUKHNGhyHj42PxnoK742aGaNNqb9Rcpgu")
)

// MintSymbol names the well-known mints and falls back to the address.
func MintSymbol(mint solana.PublicKey) string {
	switch {
	case mint.Equals(WSOLMint):
		return "SOL"
	case mint.Equals(USDCMint):
		return "USDC"
	case mint.Equals(USDTMint):
		return "USDT"
	case mint.Equals(JUPMint):
		return "JUP"
	}
	return mint.String()
}

func TxLink(sig solana.Signature) string {
	return ChainExplorerTxLink + sig.String()
}

func AccountLink(account solana.PublicKey) string {
	return ChainExplorerAccount + account.String()
}
