package global

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

// ComputeBudget is the limit and price set at the head of a transaction.
type ComputeBudget struct {
	UnitLimit     uint32
	MicroLamports uint64
}

type TxBuilder struct {
	payer        solana.PublicKey
	budget       ComputeBudget
	instructions []solana.Instruction
}

func NewTxBuilder(payer solana.PublicKey) *TxBuilder {
	return &TxBuilder{
		payer:        payer,
		instructions: make([]solana.Instruction, 0),
	}
}

// SetComputeBudget makes the builder emit SetComputeUnitLimit and
// SetComputeUnitPrice ahead of every other instruction. Zero fields are skipped.
func (b *TxBuilder) SetComputeBudget(budget ComputeBudget) *TxBuilder {
	b.budget = budget
	return b
}

func (b *TxBuilder) AddInstruction(instrs ...solana.Instruction) *TxBuilder {
	b.instructions = append(b.instructions, instrs...)
	return b
}

func (b *TxBuilder) Budget() ComputeBudget {
	return b.budget
}

// Len counts the instructions added, without the compute budget ones.
func (b *TxBuilder) Len() int {
	return len(b.instructions)
}

func (b *TxBuilder) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, 0, len(b.instructions)+2)
	if b.budget.UnitLimit > 0 {
		out = append(out, computebudget.NewSetComputeUnitLimitInstruction(b.budget.UnitLimit).Build())
	}
	if b.budget.MicroLamports > 0 {
		out = append(out, computebudget.NewSetComputeUnitPriceInstruction(b.budget.MicroLamports).Build())
	}
	return append(out, b.instructions...)
}

func (b *TxBuilder) BuildTx(blockhash solana.Hash) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, errors.New("transaction has no instructions")
	}
	return solana.NewTransaction(
		b.Instructions(),
		blockhash,
		solana.TransactionPayer(b.payer),
	)
}
