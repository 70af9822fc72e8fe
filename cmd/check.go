package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"jupkit/internal/global"
	"jupkit/internal/logic/allocation"
	"jupkit/internal/types"
)

var checkConcurrency int

type walletsFile struct {
	Wallets []string `yaml:"wallets"`
}

// loadWallets reads either {wallets: [...]} or a bare yaml list.
func loadWallets(data []byte) ([]string, error) {
	var f walletsFile
	if err := yaml.Unmarshal(data, &f); err == nil && len(f.Wallets) > 0 {
		return dedupe(f.Wallets), nil
	}
	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("wallets file: expected a list or a wallets key: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("wallets file: no wallets")
	}
	return dedupe(list), nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

var checkCmd = &cobra.Command{
	Use:   "check <wallets.yaml>",
	Short: "Check airdrop eligibility of many wallets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// errgroup blocks every Go call under a zero limit
		if checkConcurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1, got %d", checkConcurrency)
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		wallets, err := loadWallets(data)
		if err != nil {
			return err
		}

		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		var decimals uint8
		if mint, err := svcCtx.Sol.GetMint(cmd.Context(), svcCtx.Accounts.ClaimMint); err == nil {
			decimals = mint.Decimals
		}

		bar := progressbar.NewOptions(len(wallets),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(50),
			progressbar.OptionSetDescription("[cyan]Checking wallets...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)

		results := make([]*types.AllocationResponse, len(wallets))
		failures := make([]error, len(wallets))
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(checkConcurrency)
		for i, w := range wallets {
			i, w := i, w
			g.Go(func() error {
				resp, err := allocation.NewAllocation(ctx, svcCtx).Allocation(&types.AllocationRequest{Wallet: w})
				mu.Lock()
				results[i], failures[i] = resp, err
				_ = bar.Add(1)
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
		_ = bar.Finish()
		fmt.Println()

		var eligible int
		var total uint64
		for i, w := range wallets {
			r := results[i]
			switch {
			case failures[i] != nil:
				fmt.Printf("%s %s %v\n", failLabel("ERROR"), w, failures[i])
			case !r.Eligible:
				fmt.Printf("%s %s\n", warnLabel("NONE "), w)
			default:
				eligible++
				total += r.Amount
				state := ""
				if r.Claimed {
					state = " (claimed)"
				}
				fmt.Printf("%s %s %s%s\n", okLabel("OK   "), w, global.FormatAmount(r.Amount, decimals), state)
			}
		}
		fmt.Printf("\n%d/%d eligible, total %s\n", eligible, len(wallets), color.CyanString(global.FormatAmount(total, decimals)))
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 8, "parallel lookups")
	rootCmd.AddCommand(checkCmd)
}
