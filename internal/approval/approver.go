package approval

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/Klaudioz/PolyAnalyzer/clob/client"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
	"github.com/Klaudioz/PolyAnalyzer/pkg/config"
	"github.com/Klaudioz/PolyAnalyzer/pkg/logger"
)

// ErrConfirmTimeout is returned when a submitted transaction is not mined
// within the confirmation window.
var ErrConfirmTimeout = errors.New("transaction confirmation timed out")

// MaxAllowance is 2^256 - 1, the unlimited ERC-20 approval amount.
var MaxAllowance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// erc1155ApprovalABI covers setApprovalForAll on the conditional-token
// contract; the full CTF ABI is not needed here.
const erc1155ApprovalABI = `[{"inputs":[{"internalType":"address","name":"operator","type":"address"},{"internalType":"bool","name":"approved","type":"bool"}],"name":"setApprovalForAll","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// ChainBackend is the subset of ethclient.Client the approver needs.
type ChainBackend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Approver runs the one-shot token approval workflow for a wallet.
//
// The workflow submits transactions strictly serially from one account and
// re-queries the pending nonce before each one; concurrent or re-entrant
// calls for the same wallet are unsupported and will produce nonce conflicts.
type Approver struct {
	backend        ChainBackend
	chainID        *big.Int
	contracts      *client.ContractConfig
	erc20ABI       abi.ABI
	erc1155ABI     abi.ABI
	confirmTimeout time.Duration
	pollInterval   time.Duration
	log            *logrus.Entry
}

// NewApprover builds an approver against a chain backend. abiPath is the
// local ERC-20 ABI resource (erc20ABI.json).
func NewApprover(backend ChainBackend, chainID types.Chain, abiPath string) (*Approver, error) {
	contracts, err := client.GetContractConfig(chainID)
	if err != nil {
		return nil, fmt.Errorf("get contract config: %w", err)
	}

	abiData, err := os.ReadFile(abiPath)
	if err != nil {
		return nil, fmt.Errorf("read ERC20 ABI %s: %w", abiPath, err)
	}
	erc20ABI, err := abi.JSON(strings.NewReader(string(abiData)))
	if err != nil {
		return nil, fmt.Errorf("parse ERC20 ABI: %w", err)
	}
	erc1155ABI, err := abi.JSON(strings.NewReader(erc1155ApprovalABI))
	if err != nil {
		return nil, fmt.Errorf("parse ERC1155 approval ABI: %w", err)
	}

	return &Approver{
		backend:        backend,
		chainID:        big.NewInt(int64(chainID)),
		contracts:      contracts,
		erc20ABI:       erc20ABI,
		erc1155ABI:     erc1155ABI,
		confirmTimeout: 600 * time.Second,
		pollInterval:   time.Second,
		log:            logger.WithField("component", "approval"),
	}, nil
}

// Dial connects an approver to the configured RPC endpoint.
func Dial(cfg *config.Config) (*Approver, error) {
	backend, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial RPC %s: %w", cfg.RPCURL, err)
	}
	return NewApprover(backend, cfg.ChainID, cfg.ERC20ABIPath)
}

// ApproveContracts grants each exchange spender an unlimited USDC allowance
// and operator status on the conditional-token contract: six transactions,
// two per spender, each confirmed before the next nonce is fetched.
//
// A failure aborts the workflow at that point; already-confirmed approvals
// stand. Re-running is safe on-chain but re-spends gas for every transaction.
func (a *Approver) ApproveContracts(ctx context.Context) error {
	key, err := config.PrivateKeyFromEnv()
	if err != nil {
		return err
	}
	wallet := crypto.PubkeyToAddress(key.PublicKey)

	usdc := common.HexToAddress(a.contracts.Collateral)
	ctf := common.HexToAddress(a.contracts.ConditionalTokens)

	for _, spenderHex := range a.Spenders() {
		spender := common.HexToAddress(spenderHex)

		approveData, err := a.erc20ABI.Pack("approve", spender, MaxAllowance)
		if err != nil {
			return fmt.Errorf("pack approve: %w", err)
		}
		receipt, err := a.submitAndConfirm(ctx, key, wallet, usdc, approveData)
		if err != nil {
			return fmt.Errorf("USDC approval for %s: %w", spenderHex, err)
		}
		a.log.Infof("USDC approval for %s confirmed. Hash: %s", spenderHex, receiptHash(receipt))

		// The operator approval must see the nonce advanced by the
		// confirmed USDC approval; fetching it earlier gets it rejected
		// as stale.
		setApprovalData, err := a.erc1155ABI.Pack("setApprovalForAll", spender, true)
		if err != nil {
			return fmt.Errorf("pack setApprovalForAll: %w", err)
		}
		receipt, err = a.submitAndConfirm(ctx, key, wallet, ctf, setApprovalData)
		if err != nil {
			return fmt.Errorf("CTF approval for %s: %w", spenderHex, err)
		}
		a.log.Infof("CTF approval for %s confirmed. Hash: %s", spenderHex, receiptHash(receipt))
	}

	return nil
}

// Spenders returns the approval targets in submission order.
func (a *Approver) Spenders() []string {
	return []string{
		a.contracts.Exchange,
		a.contracts.NegRiskExchange,
		a.contracts.NegRiskAdapter,
	}
}

// CheckAllowance reads the wallet's current USDC allowance for a spender, so
// the approval state can be verified after a partial run.
func (a *Approver) CheckAllowance(ctx context.Context, spender common.Address) (*big.Int, error) {
	key, err := config.PrivateKeyFromEnv()
	if err != nil {
		return nil, err
	}
	wallet := crypto.PubkeyToAddress(key.PublicKey)
	usdc := common.HexToAddress(a.contracts.Collateral)

	data, err := a.erc20ABI.Pack("allowance", wallet, spender)
	if err != nil {
		return nil, fmt.Errorf("pack allowance: %w", err)
	}
	result, err := a.backend.CallContract(ctx, ethereum.CallMsg{To: &usdc, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call allowance: %w", err)
	}

	var allowance *big.Int
	if err := a.erc20ABI.UnpackIntoInterface(&allowance, "allowance", result); err != nil {
		return nil, fmt.Errorf("unpack allowance: %w", err)
	}
	return allowance, nil
}

// submitAndConfirm fetches the pending nonce, builds, signs and submits one
// legacy transaction, then blocks until its receipt is observed.
func (a *Approver) submitAndConfirm(
	ctx context.Context,
	privateKey *ecdsa.PrivateKey,
	wallet common.Address,
	to common.Address,
	data []byte,
) (*ethtypes.Receipt, error) {
	nonce, err := a.backend.PendingNonceAt(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := a.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	gasLimit, err := a.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  wallet,
		To:    &to,
		Data:  data,
		Value: big.NewInt(0),
	})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)
	signedTx, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(a.chainID), privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	if err := a.backend.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	return a.waitMined(ctx, signedTx.Hash())
}

// waitMined polls for the receipt until it appears or the confirmation
// window elapses.
func (a *Approver) waitMined(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	deadline := time.Now().Add(a.confirmTimeout)
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := a.backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			if receipt.Status == ethtypes.ReceiptStatusFailed {
				return nil, fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetch receipt: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrConfirmTimeout, txHash.Hex())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func receiptHash(receipt *ethtypes.Receipt) string {
	if receipt == nil || receipt.TxHash == (common.Hash{}) {
		return "N/A"
	}
	return receipt.TxHash.Hex()
}
