// Package transport is the minimal length-delimited request loop in front
// of the parser service: a 4-byte big-endian length prefix followed by a
// JSON body, served over a Unix domain socket with one goroutine per
// accepted connection. It exists so the parser is runnable end-to-end; it
// does not claim to be the production host-to-enclave transport.
package transport

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"txvisualizer/internal/chain"
	"txvisualizer/internal/metadata"
	"txvisualizer/internal/service"
)

// Frames larger than this are rejected before allocation.
const maxFrameBytes = 8 << 20

// Message type tags on the wire envelope.
const (
	TypeParse  = "parse"
	TypeHealth = "health"
)

// Request is the tagged wire envelope.
type Request struct {
	Type            string         `json:"type"`
	UnsignedPayload string         `json:"unsigned_payload,omitempty"`
	Chain           string         `json:"chain,omitempty"`
	ChainMetadata   *ChainMetadata `json:"chain_metadata,omitempty"`
	TransactionName string         `json:"transaction_name,omitempty"`
	DecodeTransfers bool           `json:"decode_transfers,omitempty"`
}

// ChainMetadata is the wire form of the per-chain metadata envelope.
type ChainMetadata struct {
	Ethereum *EthereumMetadata `json:"ethereum,omitempty"`
	Solana   *SolanaMetadata   `json:"solana,omitempty"`
}

type EthereumMetadata struct {
	Abi *Attachment `json:"abi,omitempty"`
}

type SolanaMetadata struct {
	Idl *IdlAttachment `json:"idl,omitempty"`
}

type Attachment struct {
	Value     string             `json:"value"`
	Signature *SignatureEnvelope `json:"signature,omitempty"`
}

type IdlAttachment struct {
	Value      string             `json:"value"`
	IdlType    string             `json:"idl_type"`
	IdlVersion string             `json:"idl_version,omitempty"`
	Signature  *SignatureEnvelope `json:"signature,omitempty"`
}

type SignatureEnvelope struct {
	Value    string `json:"value"`
	Metadata []KV   `json:"metadata"`
}

type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the tagged wire result: exactly one of the three members is
// set.
type Response struct {
	Parse  *ParseResponse  `json:"parse,omitempty"`
	Health *HealthResponse `json:"health,omitempty"`
	Status *Status         `json:"status,omitempty"`
}

type ParseResponse struct {
	ParsedTransaction ParsedTransaction `json:"parsed_transaction"`
}

type ParsedTransaction struct {
	Payload   Payload   `json:"payload"`
	Signature Signature `json:"signature"`
}

type Payload struct {
	SignablePayload string `json:"signable_payload"`
}

type Signature struct {
	Scheme    string `json:"scheme"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type HealthResponse struct {
	Code int `json:"code"`
}

type Status struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Server accepts framed requests and hands them to the service.
type Server struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewServer builds a Server over svc.
func NewServer(svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Serve accepts connections on l until ctx is canceled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("transport: accept: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	for {
		req, err := ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Error("frame read failed", "error", err)
			}
			return
		}
		resp := s.Handle(ctx, req)
		if err := WriteFrame(conn, resp); err != nil {
			s.logger.Error("frame write failed", "error", err)
			return
		}
	}
}

// Handle dispatches one decoded request envelope.
func (s *Server) Handle(ctx context.Context, req *Request) *Response {
	switch req.Type {
	case TypeHealth:
		h := s.svc.Health(ctx)
		return &Response{Health: &HealthResponse{Code: h.Code}}
	case TypeParse:
		resp, err := s.svc.Parse(ctx, service.ParseRequest{
			UnsignedPayload: req.UnsignedPayload,
			Chain:           chain.ParseChain(req.Chain),
			ChainMetadata:   req.ChainMetadata.toInternal(),
			TransactionName: req.TransactionName,
			DecodeTransfers: req.DecodeTransfers,
		})
		if err != nil {
			se := service.AsStatusError(err)
			return &Response{Status: &Status{Code: se.Code, Message: se.Message}}
		}
		pt := resp.ParsedTransaction
		return &Response{Parse: &ParseResponse{
			ParsedTransaction: ParsedTransaction{
				Payload: Payload{SignablePayload: pt.Payload.SignablePayload},
				Signature: Signature{
					Scheme:    pt.Signature.Scheme,
					PublicKey: pt.Signature.PublicKey,
					Message:   pt.Signature.Message,
					Signature: pt.Signature.Signature,
				},
			},
		}}
	default:
		return &Response{Status: &Status{
			Code:    service.CodeInvalidArgument,
			Message: fmt.Sprintf("unknown request type %q", req.Type),
		}}
	}
}

func (m *ChainMetadata) toInternal() *metadata.ChainMetadata {
	if m == nil {
		return nil
	}
	out := &metadata.ChainMetadata{}
	if m.Ethereum != nil && m.Ethereum.Abi != nil {
		out.Ethereum = &metadata.EthereumMetadata{Abi: &metadata.Abi{
			Value:     m.Ethereum.Abi.Value,
			Signature: m.Ethereum.Abi.Signature.toInternal(),
		}}
	}
	if m.Solana != nil && m.Solana.Idl != nil {
		out.Solana = &metadata.SolanaMetadata{Idl: &metadata.Idl{
			Value:      m.Solana.Idl.Value,
			IdlType:    m.Solana.Idl.IdlType,
			IdlVersion: m.Solana.Idl.IdlVersion,
			Signature:  m.Solana.Idl.Signature.toInternal(),
		}}
	}
	return out
}

func (s *SignatureEnvelope) toInternal() *metadata.SignatureMetadata {
	if s == nil {
		return nil
	}
	out := &metadata.SignatureMetadata{Value: s.Value}
	for _, kv := range s.Metadata {
		out.Metadata = append(out.Metadata, metadata.KV{Key: kv.Key, Value: kv.Value})
	}
	return out
}

// ReadFrame reads one length-prefixed JSON request from r.
func ReadFrame(r io.Reader) (*Request, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n == 0 || n > maxFrameBytes {
		return nil, fmt.Errorf("invalid_argument: frame length %d out of range", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("invalid_argument: truncated frame: %w", err)
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid_argument: malformed request body: %w", err)
	}
	return &req, nil
}

// WriteFrame writes one length-prefixed JSON response to w.
func WriteFrame(w io.Writer, resp *Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("transport: encoding response: %w", err)
	}
	return writeRaw(w, body)
}

// WriteRequest writes one length-prefixed JSON request to w. It is the
// client-side counterpart of ReadFrame.
func WriteRequest(w io.Writer, req *Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("transport: encoding request: %w", err)
	}
	return writeRaw(w, body)
}

// ReadResponse reads one length-prefixed JSON response from r. It is the
// client-side counterpart of WriteFrame.
func ReadResponse(r io.Reader) (*Response, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n == 0 || n > maxFrameBytes {
		return nil, fmt.Errorf("transport: frame length %d out of range", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("transport: truncated frame: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("transport: malformed response body: %w", err)
	}
	return &resp, nil
}

func writeRaw(w io.Writer, body []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
