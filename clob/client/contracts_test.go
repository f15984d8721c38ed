package client

import (
	"strings"
	"testing"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

func TestGetContractConfig_Polygon(t *testing.T) {
	cfg, err := GetContractConfig(types.ChainPolygon)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Basic sanity: addresses are 0x-prefixed and plausibly sized.
	check := func(name, addr string) {
		if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
			t.Fatalf("bad %s addr: %q", name, addr)
		}
	}
	check("exchange", cfg.Exchange)
	check("negRiskExchange", cfg.NegRiskExchange)
	check("negRiskAdapter", cfg.NegRiskAdapter)
	check("collateral", cfg.Collateral)
	check("conditionalTokens", cfg.ConditionalTokens)
}

func TestGetContractConfig_UnknownChain(t *testing.T) {
	if _, err := GetContractConfig(types.Chain(1)); err == nil {
		t.Fatal("expected error for unsupported chain")
	}
}
