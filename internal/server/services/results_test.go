package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	data [][]byte
	err  error
}

func (f *fakeArchiver) Store(ctx context.Context, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.data = append(f.data, data)
	return "results/key.json", nil
}

func TestExport_RequiresPrivateKey(t *testing.T) {
	h := newHarness(t)

	_, err := h.results.Export(context.Background())
	require.ErrorIs(t, err, common.ErrPrivateKeyMissing)
}

func TestExport_SignedAndVerifiable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seed(t, "AAA1111", "BBB2222", "CCC3333")

	_, created, err := h.results.GenerateKeys(ctx)
	require.NoError(t, err)
	require.True(t, created)

	_, err = h.votes.Redeem(ctx, voter("AAA1111"), "11111-47")
	require.NoError(t, err)

	signed, err := h.results.Export(ctx)
	require.NoError(t, err)

	p := signed.Payload
	assert.Equal(t, "ed25519", p.Algorithm)
	assert.Equal(t, "2026-10-16T12:00:00.000000000Z", p.GeneratedAt)
	assert.Equal(t, int64(1), p.TotalRedeemed)
	assert.Equal(t, map[string]int64{"11111-47": 1, "3333-18": 0, "4444-71": 0, "branco": 0}, p.Totals)
	require.Len(t, p.Candidates, 4)
	assert.Equal(t, results.CandidateRef{ID: "branco", Name: "Branco / Nulo"}, p.Candidates[3])

	require.NoError(t, results.Verify(signed))

	pub, err := h.results.PublicKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, pub, signed.PublicKeyPEM)

	signed.Payload.Totals["11111-47"]++
	require.ErrorIs(t, results.Verify(signed), common.ErrInvalidSignature)
}

func TestExport_Deterministic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, _, err := h.results.GenerateKeys(ctx)
	require.NoError(t, err)

	a, err := h.results.Export(ctx)
	require.NoError(t, err)
	b, err := h.results.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.SignatureHex, b.SignatureHex)
}

func TestExport_Archive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, _, err := h.results.GenerateKeys(ctx)
	require.NoError(t, err)

	arch := &fakeArchiver{}
	h.results.archiver = arch

	signed, err := h.results.Export(ctx)
	require.NoError(t, err)
	require.Len(t, arch.data, 1)

	var stored results.SignedResult
	require.NoError(t, json.Unmarshal(arch.data[0], &stored))
	assert.Equal(t, signed.SignatureHex, stored.SignatureHex)
	require.NoError(t, results.Verify(&stored))

	arch.err = errors.New("bucket missing")
	_, err = h.results.Export(ctx)
	require.NoError(t, err, "archive failure must not fail the export")
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seed(t, "AAA1111", "BBB2222", "CCC3333")

	_, err := h.coordinator.Cast(ctx, "AAA1111", "branco", redemption(h.clock.Now()))
	require.NoError(t, err)
	_, err = h.coordinator.Cast(ctx, "BBB2222", "branco", redemption(h.clock.Now()))
	require.NoError(t, err)

	st, err := h.results.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Total)
	assert.Equal(t, int64(2), st.Used)
	assert.Equal(t, int64(1), st.Unused)
	assert.Equal(t, int64(2), st.PerCandidate["branco"])
	assert.Equal(t, int64(0), st.PerCandidate["11111-47"])
	assert.Equal(t, []string{"11111-47", "3333-18", "4444-71", "branco"}, SortedCandidateIDs(st.PerCandidate))
}

func TestPublicKey_NotFound(t *testing.T) {
	h := newHarness(t)
	_, err := h.results.PublicKey(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStats_NotBlockedByHeldWriteLock(t *testing.T) {
	cfg := testConfig()
	cfg.BusyTimeout = 200 * time.Millisecond
	h := newHarnessWith(t, storagetest.OpenSQLiteWithTimeout(t, cfg.BusyTimeout), cfg)
	ctx := context.Background()
	h.seed(t, "AAA1111", "BBB2222")
	_, _, err := h.results.GenerateKeys(ctx)
	require.NoError(t, err)

	_, err = h.coordinator.Cast(ctx, "AAA1111", "branco", redemption(h.clock.Now()))
	require.NoError(t, err)

	holdWriteLock(t, h)

	st, err := h.results.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)
	assert.Equal(t, int64(1), st.Used)
	assert.Equal(t, int64(1), st.PerCandidate["branco"])

	signed, err := h.results.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), signed.Payload.TotalRedeemed)
	require.NoError(t, results.Verify(signed))
}
