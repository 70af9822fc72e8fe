package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"jupkit/internal/logic"
	"jupkit/internal/types"
)

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

// printTx prints the outcome line of a write operation. Dry runs also print
// the instruction tree and simulation logs.
func printTx(w io.Writer, r types.TxResult, err error) {
	switch {
	case r.Simulated:
		label := warnLabel("DRY RUN")
		if err != nil {
			label = failLabel("DRY RUN FAILED")
		}
		fmt.Fprintf(w, "%s simulated, %d compute units, max fee %d lamports\n", label, r.UnitsConsumed, r.MaxFee)
		fmt.Fprintln(w, r.Tree)
		for _, line := range r.Logs {
			fmt.Fprintln(w, "  "+line)
		}
	case r.Signature == "" && err != nil:
		fmt.Fprintf(w, "%s %v\n", failLabel("FAILED"), err)
	case r.Signature == "":
	case err != nil:
		fmt.Fprintf(w, "%s %s %v\n", failLabel("FAILED"), color.CyanString(r.Link), err)
	default:
		fmt.Fprintf(w, "%s %s\n", okLabel("CONFIRMED"), color.CyanString(r.Link))
	}
}

func printClaim(w io.Writer, resp *types.ClaimResponse, err error) {
	if errors.Is(err, logic.ErrAlreadyClaimed) {
		fmt.Fprintf(w, "%s %s already claimed\n", warnLabel("SKIP"), resp.Wallet)
		return
	}
	if err == nil && resp.Amount == 0 && !resp.Simulated {
		fmt.Fprintf(w, "%s %s has no allocation\n", warnLabel("SKIP"), resp.Wallet)
		return
	}
	if err == nil && !resp.Simulated {
		fmt.Fprintf(w, "claimed %s for %s\n", color.GreenString(resp.UIAmount), resp.Wallet)
	}
	printTx(w, resp.TxResult, err)
}

func printStake(w io.Writer, resp *types.StakeResponse, err error) {
	if err == nil {
		fmt.Fprintf(w, "staking %s into escrow %s\n", color.GreenString(resp.UIAmount), resp.Escrow)
		if resp.CreatedEscrow {
			fmt.Fprintln(w, "escrow created")
		}
	}
	printTx(w, resp.TxResult, err)
}

func printVote(w io.Writer, resp *types.VoteResponse, err error) {
	if resp.AlreadyVoted {
		fmt.Fprintf(w, "%s already voted on %s (side %d)\n", warnLabel("SKIP"), resp.Proposal, resp.Side)
		return
	}
	printTx(w, resp.TxResult, err)
}

func printSwap(w io.Writer, resp *types.SwapResponse, err error) {
	fmt.Fprintf(w, "swap %d -> %s (min %d) via %s\n", resp.InAmount, color.GreenString("%d", resp.OutAmount), resp.MinOut, resp.Route)
	printTx(w, resp.TxResult, err)
}
