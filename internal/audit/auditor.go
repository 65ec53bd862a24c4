package audit

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"guardian/pkg/domainerrors"
)

const publicKeyPEMType = "RSA PUBLIC KEY"

// Auditor appends entries to the store and signs aggregate reports. One
// signing keypair exists per instance, generated at construction and held for
// the process lifetime; there is no rotation and the private key is never
// persisted.
type Auditor struct {
	productName  string
	manifest     Manifest
	manifestHash string
	store        Store
	key          *rsa.PrivateKey
	publicPEM    string
	sink         chan<- Entry
	logger       *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithSink fans recorded entries out to a channel (e.g. for a Kafka worker).
// Sends are non-blocking: a full sink drops the fan-out copy, never the store
// append.
func WithSink(sink chan<- Entry) Option {
	return func(a *Auditor) { a.sink = sink }
}

func NewAuditor(productName string, manifest Manifest, store Store, logger *slog.Logger, opts ...Option) (*Auditor, error) {
	if manifest == nil {
		manifest = Manifest{}
	}
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate report keypair: %w", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  publicKeyPEMType,
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})

	sum := sha256.Sum256(manifestJSON)
	a := &Auditor{
		productName:  productName,
		manifest:     manifest,
		manifestHash: hex.EncodeToString(sum[:]),
		store:        store,
		key:          key,
		publicPEM:    string(publicPEM),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Record appends one entry with a fresh unique id, the current timestamp, and
// the manifest hash, then returns it.
func (a *Auditor) Record(ctx context.Context, kind Kind, data map[string]any) (Entry, error) {
	entry := Entry{
		ID:           uuid.NewString(),
		Kind:         kind,
		Timestamp:    time.Now().UTC(),
		Data:         data,
		ManifestHash: a.manifestHash,
	}
	if err := a.store.Append(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("append audit entry: %w", err)
	}
	if a.sink != nil {
		select {
		case a.sink <- entry:
		default:
			a.logger.WarnContext(ctx, "audit sink full, dropping fan-out copy", "entry_id", entry.ID)
		}
	}
	return entry, nil
}

// Entries returns every recorded entry in append order.
func (a *Auditor) Entries(ctx context.Context) ([]Entry, error) {
	return a.store.List(ctx)
}

// GenerateSignedReport bundles every recorded entry into a report and signs
// it with the instance key.
func (a *Auditor) GenerateSignedReport(ctx context.Context) (SignedReport, error) {
	entries, err := a.store.List(ctx)
	if err != nil {
		return SignedReport{}, fmt.Errorf("list audit entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return a.SignReport(Report{
		ProductName: a.productName,
		Manifest:    a.manifest,
		Entries:     entries,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// SignReport serializes the report deterministically and signs it. Any holder
// of the bundled public key can verify authorship and integrity of the
// entries at signing time.
func (a *Auditor) SignReport(report Report) (SignedReport, error) {
	serialized, err := json.Marshal(report)
	if err != nil {
		return SignedReport{}, fmt.Errorf("marshal report: %w", err)
	}
	digest := sha256.Sum256(serialized)
	signature, err := rsa.SignPKCS1v15(rand.Reader, a.key, crypto.SHA256, digest[:])
	if err != nil {
		return SignedReport{}, fmt.Errorf("sign report: %w", err)
	}
	return SignedReport{
		Report:       report,
		Signature:    base64.StdEncoding.EncodeToString(signature),
		PublicKeyPEM: a.publicPEM,
	}, nil
}

// PublicKeyPEM exposes the instance public key so callers can persist it
// alongside emitted reports.
func (a *Auditor) PublicKeyPEM() string { return a.publicPEM }

// Verify checks a signed report against its own bundled public key. Altering
// any byte of the serialized report invalidates verification.
func Verify(signed SignedReport) error {
	block, _ := pem.Decode([]byte(signed.PublicKeyPEM))
	if block == nil || block.Type != publicKeyPEMType {
		return domainerrors.New(domainerrors.CodeValidation, "malformed public key PEM")
	}
	publicKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return domainerrors.Wrap(domainerrors.CodeValidation, "parse public key", err)
	}
	serialized, err := json.Marshal(signed.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	signature, err := base64.StdEncoding.DecodeString(signed.Signature)
	if err != nil {
		return domainerrors.Wrap(domainerrors.CodeValidation, "decode signature", err)
	}
	digest := sha256.Sum256(serialized)
	if err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signature); err != nil {
		return domainerrors.Wrap(domainerrors.CodeValidation, "signature verification failed", err)
	}
	return nil
}
