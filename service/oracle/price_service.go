package oracle

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"lending/core"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/pandodao/blst"
	"github.com/shopspring/decimal"
)

// PriceService normalizes raw oracle records into quotes
type PriceService struct {
	config      *core.Config
	prices      core.IPriceStore
	signerStore core.OracleSignerStore
}

// New new oracle price service
func New(config *core.Config, prices core.IPriceStore, signerStore core.OracleSignerStore) core.IPriceOracleService {
	return &PriceService{
		config:      config,
		prices:      prices,
		signerStore: signerStore,
	}
}

func (s *PriceService) GetQuote(ctx context.Context, feedID string, t time.Time) (*core.PriceQuote, error) {
	record, err := s.prices.FindLatest(ctx, feedID)
	if err != nil {
		return nil, err
	}

	if record.ID == 0 {
		return nil, core.ErrStalePrice
	}

	maxAge := time.Duration(s.config.PriceOracle.MaxAgeSeconds) * time.Second
	if t.Sub(record.PublishedAt) > maxAge {
		return nil, core.ErrStalePrice
	}

	if record.Price <= 0 {
		return nil, core.ErrInvalidPrice
	}

	if s.config.PriceOracle.Threshold > 0 {
		signers, err := s.loadSigners(ctx)
		if err != nil {
			return nil, err
		}

		if !verifyPriceRecord(record, signers, s.config.PriceOracle.Threshold) {
			logger.FromContext(ctx).WithField("feed", feedID).Errorln("price record verify failed")
			return nil, core.ErrInvalidPrice
		}
	}

	price := decimal.New(record.Price, record.Expo)
	conf := decimal.New(record.Conf, record.Expo)

	// confidence interval widths beyond the configured fraction of the
	// price mean the feed is too uncertain to value collateral with
	maxConf := price.Mul(decimal.New(s.config.PriceOracle.MaxConfidenceBps, -4))
	if conf.GreaterThan(maxConf) {
		return nil, core.ErrLowConfidence
	}

	return &core.PriceQuote{
		FeedID:      record.FeedID,
		Price:       price,
		Confidence:  conf,
		PublishedAt: record.PublishedAt,
	}, nil
}

func (s *PriceService) PullPriceRecords(ctx context.Context, feedIDs []string, t time.Time) ([]*core.PriceRecord, error) {
	records := make([]*core.PriceRecord, 0, len(feedIDs))
	for _, feedID := range feedIDs {
		url := fmt.Sprintf("%s/api/feeds/%s?ts=%d", s.config.PriceOracle.EndPoint, feedID, t.UTC().Unix())
		resp, err := resthttp.Request(ctx).Get(url)
		if err != nil {
			return nil, err
		}

		var record core.PriceRecord
		if err := resthttp.ParseResponse(resp, &record); err != nil {
			return nil, err
		}

		record.FeedID = feedID
		// raw feed payload kept for auditing signature disputes
		record.Content = types.JSONText(resp.Body())
		records = append(records, &record)
	}

	return records, nil
}

func (s *PriceService) loadSigners(ctx context.Context) ([]*core.Signer, error) {
	ss, err := s.signerStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	signers := make([]*core.Signer, len(ss))
	for idx, item := range ss {
		bts, err := base64.StdEncoding.DecodeString(item.PublicKey)
		if err != nil {
			return nil, err
		}

		pub := blst.PublicKey{}
		if err := pub.FromBytes(bts); err != nil {
			return nil, err
		}

		signers[idx] = &core.Signer{
			Index:     uint64(idx) + 1,
			VerifyKey: &pub,
		}
	}

	return signers, nil
}

func verifyPriceRecord(r *core.PriceRecord, signers []*core.Signer, threshold int) bool {
	bts, err := base64.StdEncoding.DecodeString(r.Signature)
	if err != nil {
		return false
	}

	sig := blst.Signature{}
	if err := sig.FromBytes(bts); err != nil {
		return false
	}

	var pubs []*blst.PublicKey
	for _, signer := range signers {
		if r.SignerMask&(0x1<<signer.Index) != 0 {
			pubs = append(pubs, signer.VerifyKey)
		}
	}

	return len(pubs) >= threshold &&
		blst.AggregatePublicKeys(pubs).Verify(r.Payload(), &sig)
}
