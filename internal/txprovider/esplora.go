package txprovider

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
	"github.com/klingon-exchange/klingon-v2/internal/wormhole"
)

// Esplora is an HTTP TransactionProvider speaking the Esplora/mempool.space
// indexer contract: GET /tx/{txid}/hex, GET /tx/{txid}/status,
// GET /address/{addr}/utxo, GET /fee-estimates, POST /tx.
type Esplora struct {
	baseURL    string
	httpClient *http.Client
	hp         dogecoin.HashProvider
}

// NewEsplora constructs an Esplora client against baseURL (no trailing
// slash required).
func NewEsplora(baseURL string, hp dogecoin.HashProvider) *Esplora {
	if hp == nil {
		hp = dogecoin.StdHashProvider{}
	}
	return &Esplora{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		hp: hp,
	}
}

// txidHex renders a Hash256 as the reversed, display-order hex string
// indexers key transactions by.
func txidHex(h dogecoin.Hash256) string {
	r := h.Reverse()
	return hex.EncodeToString(r[:])
}

// GetTransaction fetches and parses the raw transaction hex for hash,
// verifying that what the indexer returned actually hashes to hash before
// returning it.
func (e *Esplora) GetTransaction(ctx context.Context, hash dogecoin.Hash256) (*dogecoin.Transaction, error) {
	raw, err := e.getRawHex(ctx, hash)
	if err != nil {
		return nil, err
	}

	tx, err := dogecoin.ParseTransaction(raw)
	if err != nil {
		return nil, fmt.Errorf("txprovider: parsing transaction %x: %w", hash, err)
	}
	if got := tx.Hash(e.hp); got != hash {
		return nil, fmt.Errorf("txprovider: indexer returned transaction hashing to %x, requested %x", got, hash)
	}
	return tx, nil
}

func (e *Esplora) getRawHex(ctx context.Context, hash dogecoin.Hash256) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/tx/"+txidHex(hash)+"/hex", nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("txprovider: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return hex.DecodeString(strings.TrimSpace(string(body)))
}

// Confirmed reports whether the indexer considers hash's transaction
// confirmed.
func (e *Esplora) Confirmed(ctx context.Context, hash dogecoin.Hash256) (bool, error) {
	var status struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	}
	if err := e.getJSON(ctx, "/tx/"+txidHex(hash)+"/status", &status); err != nil {
		return false, err
	}
	return status.Confirmed, nil
}

// FeeEstimates returns the fee-rate-by-confirmation-target map reported by
// the indexer's /fee-estimates endpoint, as reported. Unlike mempool.space's
// fastestFee/halfHourFee keys, Esplora reports confirmation targets
// directly. No target is selected here; FeeRateSatPerByte reads the "25"
// entry.
func (e *Esplora) FeeEstimates(ctx context.Context) (map[string]float64, error) {
	var result map[string]float64
	if err := e.getJSON(ctx, "/fee-estimates", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FeeRateSatPerByte returns the fee rate at the settlement engine's
// standard 25-block confirmation target. It takes no target argument and
// never reads any other key. A missing "25" key or a negative rate are
// both errors.
func (e *Esplora) FeeRateSatPerByte(ctx context.Context) (float64, error) {
	estimates, err := e.FeeEstimates(ctx)
	if err != nil {
		return 0, err
	}
	rate, ok := estimates["25"]
	if !ok {
		return 0, fmt.Errorf("txprovider: indexer returned no fee estimate for the \"25\" target")
	}
	if rate < 0 {
		return 0, fmt.Errorf("txprovider: indexer returned a negative fee rate: %v", rate)
	}
	return rate, nil
}

// UTXO is one unspent output as reported by UTXOsForAddress. TxID holds
// the internal (non-reversed) hash.
type UTXO struct {
	TxID   dogecoin.Hash256
	Vout   uint32
	Value  uint64
	Height int64
}

// UTXOsForAddress lists unspent outputs at a Dogecoin address, given in
// its base58check-encoded string form, via GET /address/{addr}/utxo.
func (e *Esplora) UTXOsForAddress(ctx context.Context, address string) ([]UTXO, error) {
	var result []struct {
		TxID   string `json:"txid"`
		Vout   uint32 `json:"vout"`
		Value  uint64 `json:"value"`
		Status struct {
			Confirmed   bool  `json:"confirmed"`
			BlockHeight int64 `json:"block_height"`
		} `json:"status"`
	}
	if err := e.getJSON(ctx, "/address/"+address+"/utxo", &result); err != nil {
		return nil, err
	}

	utxos := make([]UTXO, len(result))
	for i, u := range result {
		txidBytes, err := hex.DecodeString(u.TxID)
		if err != nil || len(txidBytes) != 32 {
			return nil, fmt.Errorf("txprovider: indexer returned malformed txid %q", u.TxID)
		}
		var displayHash dogecoin.Hash256
		copy(displayHash[:], txidBytes)
		utxos[i] = UTXO{
			TxID:   displayHash.Reverse(),
			Vout:   u.Vout,
			Value:  u.Value,
			Height: u.Status.BlockHeight,
		}
	}
	return utxos, nil
}

// BroadcastTransaction submits raw (a serialized transaction) via
// POST /tx with a text/plain hex body, returning the txid the indexer
// reports.
func (e *Esplora) BroadcastTransaction(ctx context.Context, raw []byte) (string, error) {
	body := hex.EncodeToString(raw)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/tx", strings.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBroadcastFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrBroadcastFailed, string(respBody))
	}
	return strings.TrimSpace(string(respBody)), nil
}

func (e *Esplora) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("txprovider: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Ensure Esplora implements wormhole.TransactionProvider.
var _ wormhole.TransactionProvider = (*Esplora)(nil)
