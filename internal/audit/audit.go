// Package audit records every action registration, denial, and execution as
// an append-only entry, and produces digitally signed reports over the full
// entry set for external authorship and governance verification.
package audit

import "time"

// Kind classifies audit entries.
type Kind string

const (
	KindActionRegister Kind = "action_register"
	KindActionDenied   Kind = "action_denied"
	KindActionExecute  Kind = "action_execute"
	// KindActionFailed records an execution whose run routine returned an
	// error. Kept distinct from action_execute so failed runs are neither
	// silently missing from the trail nor conflated with successes.
	KindActionFailed Kind = "action_failed"
)

// Manifest is the static descriptive document (product identity, scope)
// hashed into every entry for provenance. Serialized with sorted keys, so its
// hash is deterministic for a stable manifest.
type Manifest map[string]any

// Entry is append-only: never mutated, never deleted. ManifestHash binds the
// entry to the manifest in force when it was recorded; entries do not chain
// to each other.
type Entry struct {
	ID           string         `json:"id"`
	Kind         Kind           `json:"kind"`
	Timestamp    time.Time      `json:"ts"`
	Data         map[string]any `json:"data"`
	ManifestHash string         `json:"manifestHash"`
}

// Report bundles the full entry set with product identity. Its JSON shape is
// an external contract consumed by governance tooling; field names must not
// change.
type Report struct {
	ProductName string   `json:"productName"`
	Manifest    Manifest `json:"manifest"`
	Entries     []Entry  `json:"entries"`
	GeneratedAt string   `json:"generatedAt"`
}

// SignedReport is the externally verifiable artifact: the report, a base64
// RSA-SHA256 signature over its serialized form, and the PEM-encoded public
// key of the signing auditor. Holders must retain the public key emitted with
// each report; a restarted auditor signs with a fresh key.
type SignedReport struct {
	Report       Report `json:"report"`
	Signature    string `json:"signature"`
	PublicKeyPEM string `json:"publicKeyPem"`
}
