package client

import (
	"errors"
	"fmt"
	"math/bits"
)

var ErrOverflow = errors.New("overflow")

// LamportsPerSignature is the fixed base fee per transaction signature.
const LamportsPerSignature = 5000

type FeeEstimate struct {
	Signatures         uint64
	BaseFeeLamports    uint64
	ComputeUnitLimit   uint32
	MicroLamportsPerCU uint64
	PriorityLamports   uint64
	TotalLamports      uint64
}

func PriorityFeeLamports(computeUnitLimit uint32, microLamportsPerCU uint64) (uint64, error) {
	if computeUnitLimit == 0 || microLamportsPerCU == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul64(uint64(computeUnitLimit), microLamportsPerCU)
	if hi != 0 {
		return 0, ErrOverflow
	}
	const denom = uint64(1_000_000)
	q, r := lo/denom, lo%denom
	if r != 0 {
		q++
	}
	return q, nil
}

// EstimateFee prices a transaction with the given signature count and compute budget.
func EstimateFee(signatures uint64, computeUnitLimit uint32, microLamportsPerCU uint64) (FeeEstimate, error) {
	hi, base := bits.Mul64(LamportsPerSignature, signatures)
	if hi != 0 {
		return FeeEstimate{}, ErrOverflow
	}
	priority, err := PriorityFeeLamports(computeUnitLimit, microLamportsPerCU)
	if err != nil {
		return FeeEstimate{}, err
	}
	total, carry := bits.Add64(base, priority, 0)
	if carry != 0 {
		return FeeEstimate{}, ErrOverflow
	}
	return FeeEstimate{
		Signatures:         signatures,
		BaseFeeLamports:    base,
		ComputeUnitLimit:   computeUnitLimit,
		MicroLamportsPerCU: microLamportsPerCU,
		PriorityLamports:   priority,
		TotalLamports:      total,
	}, nil
}

func (e FeeEstimate) String() string {
	return fmt.Sprintf("total=%d lamports (base=%d, priority=%d @ %d microLamports/CU, limit=%d)",
		e.TotalLamports,
		e.BaseFeeLamports,
		e.PriorityLamports,
		e.MicroLamportsPerCU,
		e.ComputeUnitLimit,
	)
}
