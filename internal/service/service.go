// Package service implements the trusted parser endpoint: it validates a
// raw unsigned payload, decodes it through the chain registry, and signs
// the canonical payload digest with the process ephemeral key.
package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	bin "github.com/gagliardetto/binary"
	"github.com/google/uuid"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/ephemeralkey"
	"txvisualizer/internal/metadata"
	"txvisualizer/internal/payload"
)

// SchemeP256EphemeralKey tags signatures produced with the parser's
// process-scoped P-256 key.
const SchemeP256EphemeralKey = "TurnkeyP256EphemeralKey"

// Status codes carried by failure responses.
const (
	CodeOK              = 200
	CodeInvalidArgument = 400
	CodeInternal        = 500
)

// StatusError is a status-carrying failure the transport maps onto the
// wire Status message.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

func invalidArgument(msg string) *StatusError {
	return &StatusError{Code: CodeInvalidArgument, Message: msg}
}

func internalError(err error) *StatusError {
	return &StatusError{Code: CodeInternal, Message: err.Error()}
}

// ParseRequest asks the service to decode and sign one raw transaction.
type ParseRequest struct {
	UnsignedPayload string
	Chain           chain.Chain
	ChainMetadata   *metadata.ChainMetadata
	// TransactionName optionally overrides the payload title.
	TransactionName string
	// DecodeTransfers enables the per-chain transfer-extraction pass.
	DecodeTransfers bool
}

// Payload carries the canonical JSON document.
type Payload struct {
	SignablePayload string
}

// Signature attests to the payload digest.
type Signature struct {
	Scheme    string
	PublicKey string
	Message   string
	Signature string
}

// ParsedTransaction pairs the canonical payload with its attestation.
type ParsedTransaction struct {
	Payload   Payload
	Signature Signature
}

// ParseResponse is the success result of a parse request.
type ParseResponse struct {
	ParsedTransaction ParsedTransaction
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Code int
}

// Service is the trusted parser. Its registry and key are built once at
// startup and shared read-only across concurrent requests.
type Service struct {
	registry *chain.Registry
	key      *ephemeralkey.Key
	logger   *slog.Logger
}

// New builds a Service over a frozen converter registry and a loaded
// ephemeral key.
func New(registry *chain.Registry, key *ephemeralkey.Key, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{registry: registry, key: key, logger: logger}
}

// signablePayloadWrapper is the Borsh-serialized shape whose SHA-256 the
// ephemeral key signs.
type signablePayloadWrapper struct {
	SignablePayload string
}

// PayloadDigest computes SHA-256 over the Borsh serialization of the
// canonical payload wrapper.
func PayloadDigest(signablePayload string) ([32]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.Encode(signablePayloadWrapper{SignablePayload: signablePayload}); err != nil {
		return [32]byte{}, fmt.Errorf("serialization_failed: borsh encoding: %w", err)
	}
	return sha256.Sum256(buf.Bytes()), nil
}

// Parse validates, decodes, serializes, and signs one request. All
// failures return a *StatusError: client mistakes as invalid_argument,
// everything else as internal.
func (s *Service) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	requestID := uuid.NewString()
	log := s.logger.With("request_id", requestID, "chain", req.Chain.String())

	if req.UnsignedPayload == "" {
		log.Info("parse rejected", "reason", "empty payload")
		return nil, invalidArgument("unsigned_payload must not be empty")
	}
	if err := verifyMetadataSignatures(req.ChainMetadata); err != nil {
		log.Info("parse rejected", "reason", "metadata signature verification failed")
		return nil, invalidArgument(err.Error())
	}

	opts := chain.Options{
		DecodeTransfers: req.DecodeTransfers,
		TransactionName: req.TransactionName,
		Metadata:        req.ChainMetadata,
	}

	var p *payload.Payload
	var err error
	if req.Chain == chain.Unspecified {
		_, p, err = s.registry.AutoDetect(req.UnsignedPayload, opts)
	} else {
		p, err = s.registry.Convert(req.Chain, req.UnsignedPayload, opts)
	}
	if err != nil {
		log.Error("parse failed", "error", err)
		return nil, internalError(err)
	}

	canonical, err := p.ToValidatedJSON()
	if err != nil {
		log.Error("canonical serialization failed", "error", err)
		return nil, internalError(err)
	}

	digest, err := PayloadDigest(canonical)
	if err != nil {
		log.Error("payload digest failed", "error", err)
		return nil, internalError(err)
	}

	sig, err := s.key.Sign(digest[:])
	if err != nil {
		log.Error("signing failed", "error", err)
		return nil, internalError(err)
	}

	log.Info("parse ok", "payload_bytes", len(canonical))
	return &ParseResponse{
		ParsedTransaction: ParsedTransaction{
			Payload: Payload{SignablePayload: canonical},
			Signature: Signature{
				Scheme:    SchemeP256EphemeralKey,
				PublicKey: s.key.PublicKeyHex(),
				Message:   hex.EncodeToString(digest[:]),
				Signature: hex.EncodeToString(sig),
			},
		},
	}, nil
}

// Health reports liveness.
func (s *Service) Health(ctx context.Context) HealthResponse {
	return HealthResponse{Code: CodeOK}
}

// verifyMetadataSignatures checks any attached ABI/IDL signature
// envelopes before the metadata is trusted by downstream visualizers.
func verifyMetadataSignatures(md *metadata.ChainMetadata) error {
	if md == nil {
		return nil
	}
	if md.Ethereum != nil && md.Ethereum.Abi != nil && md.Ethereum.Abi.Signature != nil {
		if err := metadata.Verify(md.Ethereum.Abi.Value, *md.Ethereum.Abi.Signature); err != nil {
			return fmt.Errorf("abi metadata: %w", err)
		}
	}
	if md.Solana != nil && md.Solana.Idl != nil && md.Solana.Idl.Signature != nil {
		if err := metadata.Verify(md.Solana.Idl.Value, *md.Solana.Idl.Signature); err != nil {
			return fmt.Errorf("idl metadata: %w", err)
		}
	}
	return nil
}

// AsStatusError unwraps err into its StatusError, synthesizing an
// internal status for unexpected error values.
func AsStatusError(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	return &StatusError{Code: CodeInternal, Message: err.Error()}
}
