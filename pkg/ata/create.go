// Copyright 2025 github.com/dwnfan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ata

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// ProgramName is the name of the Associated Token Account program
const ProgramName = "Associated Token Account Program"

// ProgramID is the ID of the Associated Token Account program
var ProgramID = solana.SPLAssociatedTokenAccountProgramID

const (
	instructionCreate           byte = 0
	instructionCreateIdempotent byte = 1
)

// Create opens the associated token account of Wallet for Mint. The token
// program is explicit so Token-2022 mints get the right address and owner.
type Create struct {
	Payer        solana.PublicKey `bin:"-" borsh_skip:"true"`
	Wallet       solana.PublicKey `bin:"-" borsh_skip:"true"`
	Mint         solana.PublicKey `bin:"-" borsh_skip:"true"`
	TokenProgram solana.PublicKey `bin:"-" borsh_skip:"true"`

	// Idempotent succeeds when the account already exists.
	Idempotent bool `bin:"-" borsh_skip:"true"`

	// [0] = [WRITE, SIGNER] Payer
	// ··········· Funding account
	//
	// [1] = [WRITE] AssociatedTokenAccount
	// ··········· Associated token account address to be created
	//
	// [2] = [] Wallet
	// ··········· Wallet address for the new associated token account
	//
	// [3] = [] TokenMint
	// ··········· The token mint for the new associated token account
	//
	// [4] = [] SystemProgram
	// ··········· System program ID
	//
	// [5] = [] TokenProgram
	// ··········· SPL Token or Token-2022 program ID
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewCreateInstructionBuilder creates a new `Create` instruction builder.
func NewCreateInstructionBuilder() *Create {
	nd := &Create{
		TokenProgram: solana.TokenProgramID,
	}
	return nd
}

func (inst *Create) SetPayer(payer solana.PublicKey) *Create {
	inst.Payer = payer
	return inst
}

func (inst *Create) SetWallet(wallet solana.PublicKey) *Create {
	inst.Wallet = wallet
	return inst
}

func (inst *Create) SetMint(mint solana.PublicKey) *Create {
	inst.Mint = mint
	return inst
}

func (inst *Create) SetTokenProgram(tokenProgram solana.PublicKey) *Create {
	inst.TokenProgram = tokenProgram
	return inst
}

func (inst *Create) SetIdempotent(idempotent bool) *Create {
	inst.Idempotent = idempotent
	return inst
}

func (inst Create) Build() *Instruction {

	associatedTokenAddress, _, _ := Find(
		inst.Wallet,
		inst.Mint,
		inst.TokenProgram,
	)

	keys := []*solana.AccountMeta{
		{
			PublicKey:  inst.Payer,
			IsSigner:   true,
			IsWritable: true,
		},
		{
			PublicKey:  associatedTokenAddress,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  inst.Wallet,
			IsSigner:   false,
			IsWritable: false,
		},
		{
			PublicKey:  inst.Mint,
			IsSigner:   false,
			IsWritable: false,
		},
		{
			PublicKey:  solana.SystemProgramID,
			IsSigner:   false,
			IsWritable: false,
		},
		{
			PublicKey:  inst.TokenProgram,
			IsSigner:   false,
			IsWritable: false,
		},
	}

	inst.AccountMetaSlice = keys

	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   &inst,
		TypeID: bin.NoTypeIDDefaultID,
	}}
}

// ValidateAndBuild validates the instruction accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst Create) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *Create) Validate() error {
	if inst.Payer.IsZero() {
		return errors.New("Payer not set")
	}
	if inst.Wallet.IsZero() {
		return errors.New("Wallet not set")
	}
	if inst.Mint.IsZero() {
		return errors.New("Mint not set")
	}
	if !IsTokenProgram(inst.TokenProgram) {
		return fmt.Errorf("unsupported token program %s", inst.TokenProgram)
	}
	return nil
}

func (inst *Create) name() string {
	if inst.Idempotent {
		return "CreateIdempotent"
	}
	return "Create"
}

func (inst *Create) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction(inst.name())).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=0]").ParentFunc(func(paramsBranch treeout.Branches) {})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=6]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("                 payer", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("associatedTokenAddress", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("                wallet", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("             tokenMint", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("         systemProgram", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("          tokenProgram", inst.AccountMetaSlice.Get(5)))
					})
				})
		})
}

func (inst Create) MarshalWithEncoder(encoder *bin.Encoder) error {
	if inst.Idempotent {
		return encoder.WriteUint8(instructionCreateIdempotent)
	}
	return encoder.WriteUint8(instructionCreate)
}

func (inst *Create) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if !decoder.HasRemaining() {
		return nil
	}
	kind, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	inst.Idempotent = kind == instructionCreateIdempotent
	return nil
}

// GetAccounts implements the AccountMetaGettable interface
func (inst Create) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewCreateInstruction creates an instruction opening the associated token
// account of walletAddress for mint under tokenProgram.
func NewCreateInstruction(
	payer solana.PublicKey,
	walletAddress solana.PublicKey,
	mint solana.PublicKey,
	tokenProgram solana.PublicKey,
) *Create {
	return NewCreateInstructionBuilder().
		SetPayer(payer).
		SetWallet(walletAddress).
		SetMint(mint).
		SetTokenProgram(tokenProgram)
}
