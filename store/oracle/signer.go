package oracle

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

type oracleSignerStore struct {
	db *db.DB
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.OracleSigner{})
		if err := tx.AutoMigrate(core.OracleSigner{}).Error; err != nil {
			return err
		}
		return nil
	})
}

func NewSignerStore(db *db.DB) core.OracleSignerStore {
	return &oracleSignerStore{db: db}
}

func (s *oracleSignerStore) Save(ctx context.Context, signerID, publicKey string) error {
	signer := core.OracleSigner{
		SignerID:  signerID,
		PublicKey: publicKey,
	}

	return s.db.Update().Where("signer_id = ?", signerID).Assign(core.OracleSigner{SignerID: signerID, PublicKey: publicKey}).FirstOrCreate(&signer).Error
}

func (s *oracleSignerStore) Delete(ctx context.Context, signerID string) error {
	return s.db.Update().Where("signer_id = ?", signerID).Delete(core.OracleSigner{}).Error
}

func (s *oracleSignerStore) FindAll(ctx context.Context) ([]*core.OracleSigner, error) {
	var signers []*core.OracleSigner
	if err := s.db.View().Find(&signers).Error; err != nil {
		return nil, err
	}

	return signers, nil
}
