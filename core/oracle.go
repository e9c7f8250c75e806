package core

import (
	"context"
	"time"

	"github.com/pandodao/blst"
)

// OracleSigner registered feed signer
type OracleSigner struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	SignerID  string    `sql:"size:36;unique_index:idx_oracle_signers" json:"signer_id,omitempty"`
	PublicKey string    `sql:"size:256" json:"public_key,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Signer decoded signer with its bitmask index
type Signer struct {
	Index     uint64          `json:"index,omitempty"`
	VerifyKey *blst.PublicKey `json:"verify_key,omitempty"`
}

// OracleSignerStore oracle signer store interface
type OracleSignerStore interface {
	Save(ctx context.Context, signerID, publicKey string) error
	Delete(ctx context.Context, signerID string) error
	FindAll(ctx context.Context) ([]*OracleSigner, error)
}
