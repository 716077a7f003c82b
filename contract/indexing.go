package contract

// maintaining index keys for listing data in various ways

import (
	"fmt"
	"strconv"

	"medfund_ledger/contract/ledger"
)

// index key prefixes
const (
	maxChunkSize        = 2500      // indexes are split into chunks so no single value grows unbounded
	idxCampaigns        = "idx:c"   // holds all campaigns
	idxCampaignDonation = "idx:cd:" // + campaignId, holds all donations to a campaign
	idxPools            = "idx:p"   // holds all staking pools
	idxCampaignDocs     = "idx:md:" // + campaignId, holds all medical documents of a campaign
)

func campaignDonationsIndex(id ledger.ID) string { return idxCampaignDonation + id.String() }
func campaignDocsIndex(id ledger.ID) string      { return idxCampaignDocs + id.String() }

// chunkCounterKey stores the number of chunks for a base index.
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk uint64) string {
	return base + ":" + strconv.FormatUint(chunk, 10)
}

func loadChunk(r Reader, key string) ([]ledger.ID, error) {
	raw, ok, err := r.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	ids, err := ledger.DecodeIDs(raw)
	if err != nil {
		return nil, fmt.Errorf("decode index %s: %w", key, err)
	}
	return ids, nil
}

func storeChunk(c *opContext, key string, ids []ledger.ID) error {
	raw, err := ledger.EncodeIDs(ids)
	if err != nil {
		return fmt.Errorf("encode index %s: %w", key, err)
	}
	c.set(key, raw)
	return nil
}

// appendToIndex adds a freshly allocated id to the last chunk, opening a new chunk when full.
// Ids come from the sequence allocator so no duplicate scan is needed.
func appendToIndex(c *opContext, base string, id ledger.ID) error {
	chunks, err := getCount(c, chunkCounterKey(base))
	if err != nil {
		return err
	}
	if chunks > 0 {
		key := chunkKey(base, chunks-1)
		ids, err := loadChunk(c, key)
		if err != nil {
			return err
		}
		if len(ids) < maxChunkSize {
			return storeChunk(c, key, append(ids, id))
		}
	}
	if err := storeChunk(c, chunkKey(base, chunks), []ledger.ID{id}); err != nil {
		return err
	}
	setCount(c, chunkCounterKey(base), chunks+1)
	return nil
}

// listIndex walks every chunk in insertion order.
func listIndex(r Reader, base string) ([]ledger.ID, error) {
	chunks, err := getCount(r, chunkCounterKey(base))
	if err != nil {
		return nil, err
	}
	var out []ledger.ID
	for i := uint64(0); i < chunks; i++ {
		ids, err := loadChunk(r, chunkKey(base, i))
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return out, nil
}
