// Package main provides guardiand, the guardian settlement daemon: it
// reads a single VAA settlement message, validates and signs it against
// the configured Dogecoin network, and emits the finished transaction.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/klingon-exchange/klingon-v2/internal/config"
	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
	"github.com/klingon-exchange/klingon-v2/internal/signer"
	"github.com/klingon-exchange/klingon-v2/internal/txprovider"
	"github.com/klingon-exchange/klingon-v2/internal/wormhole"
	"github.com/klingon-exchange/klingon-v2/pkg/helpers"
	"github.com/klingon-exchange/klingon-v2/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		dataDir     = flag.String("data-dir", "~/.guardiand", "Data directory")
		messageFile = flag.String("message", "", "Path to a VAA settlement message JSON file (default: stdin)")
		broadcast   = flag.Bool("broadcast", false, "Broadcast the settlement transaction after signing")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	log := logging.New(&logging.Config{
		Level:      *logLevel,
		TimeFormat: time.TimeOnly,
	})
	logging.SetDefault(log)

	if *showVersion {
		log.Infof("guardiand %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	cfg, err := config.Load(*dataDir)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.Info("Config loaded", "path", config.ConfigPath(*dataDir))

	log = logging.New(&logging.Config{Level: cfg.Logging.Level, TimeFormat: time.TimeOnly})
	logging.SetDefault(log)

	network, err := cfg.NetworkProfile()
	if err != nil {
		log.Fatal("Failed to resolve network profile", "error", err)
	}

	hp := dogecoin.StdHashProvider{}

	privKey, err := loadPrivateKey(filepath.Join(expandPath(*dataDir), cfg.Signer.PrivateKeyFile))
	if err != nil {
		log.Fatal("Failed to load guardian private key", "error", err)
	}
	localSigner, err := signer.NewMemory(hp, privKey)
	if err != nil {
		log.Fatal("Failed to initialize signer", "error", err)
	}

	indexer := txprovider.NewEsplora(cfg.Indexer.BaseURL, hp)
	provider := txprovider.NewCache(indexer)

	processor := wormhole.NewGuardianProcessor(network, hp, localSigner, provider)

	correlationID := uuid.NewString()
	reqLog := log.Component("settle").With("correlation_id", correlationID)

	msg, err := readMessage(*messageFile)
	if err != nil {
		reqLog.Fatal("Failed to read VAA settlement message", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	reqLog.Info("Settling VAA message",
		"emitter_chain", msg.Metadata.EmitterChain,
		"inputs", len(msg.Inputs),
		"outputs", len(msg.Outputs),
		"total_output_doge", helpers.KoinuToDoge(msg.Metadata.TotalOutputAmount))

	spend, err := processor.Settle(ctx, msg)
	if err != nil {
		reqLog.Fatal("Settlement failed", "error", err)
	}

	raw := spend.Serialize()
	txid := spend.Txid(hp)
	reqLog.Info("Settlement transaction assembled", "txid", hex.EncodeToString(txid[:]), "bytes", len(raw))

	if *broadcast {
		submittedTxid, err := processor.Broadcast(ctx, spend)
		if err != nil {
			reqLog.Fatal("Broadcast failed", "error", err)
		}
		reqLog.Info("Broadcast succeeded", "txid", submittedTxid)
		fmt.Println(submittedTxid)
		return
	}

	fmt.Println(hex.EncodeToString(raw))
}

// vaaMessageDTO is the on-the-wire JSON shape of a VAA settlement
// message. Hex fields use the indexer's display convention: hashes are
// byte-reversed relative to the internal wire encoding.
type vaaMessageDTO struct {
	Metadata struct {
		EmitterChain           uint16 `json:"emitter_chain"`
		EmitterContractAddress string `json:"emitter_contract_address"`
		SubAddressSeed         string `json:"sub_address_seed"`
		TotalOutputAmount      uint64 `json:"total_output_amount"`
		MaxDogeTransactionFee  uint64 `json:"max_doge_transaction_fee"`
		MinDogeTransactionFee  uint64 `json:"min_doge_transaction_fee"`
	} `json:"metadata"`
	Inputs []struct {
		PrevTxid  string `json:"prev_txid"`
		PrevIndex uint32 `json:"prev_index"`
		Sequence  uint32 `json:"sequence"`
	} `json:"inputs"`
	Outputs []struct {
		Value  uint64 `json:"value"`
		Script string `json:"script"`
	} `json:"outputs"`
}

func readMessage(path string) (*wormhole.Message, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading message: %w", err)
	}

	var dto vaaMessageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parsing message JSON: %w", err)
	}

	emitterAddr, err := decodeFixed32(dto.Metadata.EmitterContractAddress)
	if err != nil {
		return nil, fmt.Errorf("emitter_contract_address: %w", err)
	}
	subSeed, err := decodeFixed32(dto.Metadata.SubAddressSeed)
	if err != nil {
		return nil, fmt.Errorf("sub_address_seed: %w", err)
	}

	msg := &wormhole.Message{
		Metadata: wormhole.Metadata{
			EmitterChain:           dto.Metadata.EmitterChain,
			EmitterContractAddress: emitterAddr,
			SubAddressSeed:         subSeed,
			TotalOutputAmount:      dto.Metadata.TotalOutputAmount,
			MaxDogeTransactionFee:  dto.Metadata.MaxDogeTransactionFee,
			MinDogeTransactionFee:  dto.Metadata.MinDogeTransactionFee,
		},
		Inputs:  make([]dogecoin.InputStub, len(dto.Inputs)),
		Outputs: make([]dogecoin.Output, len(dto.Outputs)),
	}

	for i, in := range dto.Inputs {
		raw, err := hex.DecodeString(in.PrevTxid)
		if err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("inputs[%d].prev_txid: malformed hash", i)
		}
		var displayHash dogecoin.Hash256
		copy(displayHash[:], raw)
		msg.Inputs[i] = dogecoin.InputStub{
			PrevHash:  displayHash.Reverse(),
			PrevIndex: in.PrevIndex,
			Sequence:  in.Sequence,
		}
	}

	for i, out := range dto.Outputs {
		script, err := hex.DecodeString(out.Script)
		if err != nil {
			return nil, fmt.Errorf("outputs[%d].script: %w", i, err)
		}
		msg.Outputs[i] = dogecoin.Output{Value: out.Value, Script: script}
	}

	return msg, nil
}

func decodeFixed32(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return out, fmt.Errorf("expected 32 bytes of hex, got %q", s)
	}
	copy(out[:], raw)
	return out, nil
}

func loadPrivateKey(path string) ([32]byte, error) {
	var key [32]byte
	data, err := os.ReadFile(path)
	if err != nil {
		return key, fmt.Errorf("reading private key file %s: %w", path, err)
	}
	raw, err := hex.DecodeString(trimNewline(data))
	if err != nil || len(raw) != 32 {
		return key, fmt.Errorf("private key file must contain 64 hex characters (32 bytes)")
	}
	copy(key[:], raw)
	return key, nil
}

func trimNewline(data []byte) string {
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r' || data[len(data)-1] == ' ') {
		data = data[:len(data)-1]
	}
	return string(data)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
