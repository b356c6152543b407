package dlmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/codec"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/pkg/types"
)

const commitmentAccount = "TransactionBins"

// Commitment is the ordered set of bin ids an owner declares before a
// multi-bin operation. It serves exactly one operation.
type Commitment struct {
	Owner  solana.PublicKey
	Pool   solana.PublicKey
	BinIDs []int32

	index map[int32]struct{}
	used  bool
}

// NewCommitment declares ids for owner. Ids must be unique and at most
// types.MaxCommittedBins of them.
func NewCommitment(owner, pool solana.PublicKey, ids []int32) (*Commitment, error) {
	if len(ids) == 0 || len(ids) > types.MaxCommittedBins {
		return nil, types.ErrInvalidBinCount.Wrapf("%d bins, capacity %d", len(ids), types.MaxCommittedBins)
	}
	index := make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := index[id]; dup {
			return nil, types.ErrInvalidBinCount.Wrapf("bin %d declared twice", id)
		}
		index[id] = struct{}{}
	}
	return &Commitment{
		Owner:  owner,
		Pool:   pool,
		BinIDs: append([]int32(nil), ids...),
		index:  index,
	}, nil
}

// Contains reports whether id was declared.
func (c *Commitment) Contains(id int32) bool {
	_, ok := c.index[id]
	return ok
}

// Check fails if the commitment is spent or belongs to someone else.
func (c *Commitment) Check(owner solana.PublicKey) error {
	if c == nil {
		return types.ErrBinCacheMismatch.Wrap("no bin set declared")
	}
	if c.used {
		return types.ErrCommitmentConsumed
	}
	if !c.Owner.Equals(owner) {
		return types.ErrUnauthorized.Wrapf("bin set belongs to %s", c.Owner)
	}
	return nil
}

// Use consumes the commitment.
func (c *Commitment) Use(owner solana.PublicKey) error {
	if err := c.Check(owner); err != nil {
		return err
	}
	c.used = true
	return nil
}

// Used reports whether the commitment has been consumed.
func (c *Commitment) Used() bool {
	return c.used
}

// Addresses returns the bin record addresses in declaration order.
func (c *Commitment) Addresses(programID solana.PublicKey) []solana.PublicKey {
	out := make([]solana.PublicKey, len(c.BinIDs))
	for i, id := range c.BinIDs {
		out[i], _ = sol.DeriveBinPDA(programID, c.Pool, id)
	}
	return out
}

// Encode returns the persisted layout: owner and the bin record addresses.
func (c *Commitment) Encode(programID solana.PublicKey) ([]byte, error) {
	w := codec.NewWriter(commitmentAccount)
	w.Put(c.Owner)
	w.Put(c.Addresses(programID))
	return w.Bytes()
}

// SwapBinIDs lists count consecutive ids a swap in dir visits from active.
func SwapBinIDs(active int32, dir types.SwapDirection, count int) []int32 {
	ids := make([]int32, count)
	for i := range ids {
		if dir == types.SwapAToB {
			ids[i] = active - int32(i)
		} else {
			ids[i] = active + int32(i)
		}
	}
	return ids
}

// binSet is a working copy of the committed bins an operation may touch.
// Changes reach the arena only through commit.
type binSet struct {
	c    *Commitment
	pool solana.PublicKey
	bins map[int32]*Bin
}

// openBins validates the commitment against the arena and copies every
// committed bin. With materialize set, committed ids absent from the arena
// start as empty bins; otherwise they are a mismatch.
func openBins(c *Commitment, owner, pool solana.PublicKey, arena Bins, materialize bool) (*binSet, error) {
	if err := c.Check(owner); err != nil {
		return nil, err
	}
	if !c.Pool.Equals(pool) {
		return nil, types.ErrBinCacheMismatch.Wrapf("bin set declared for pool %s", c.Pool)
	}
	set := &binSet{c: c, pool: pool, bins: make(map[int32]*Bin, len(c.BinIDs))}
	for _, id := range c.BinIDs {
		b := arena.Get(id)
		switch {
		case b == nil && materialize:
			set.bins[id] = &Bin{Pool: pool, BinID: id}
		case b == nil:
			return nil, types.ErrBinCacheMismatch.Wrapf("bin %d declared but not supplied", id)
		case b.BinID != id || !b.Pool.Equals(pool):
			return nil, types.ErrInvalidBinAccount.Wrapf("bin %d of %s supplied as %d", b.BinID, b.Pool, id)
		default:
			cp := *b
			set.bins[id] = &cp
		}
	}
	return set, nil
}

// get returns the working copy of bin id.
func (s *binSet) get(id int32) (*Bin, error) {
	b, ok := s.bins[id]
	if !ok {
		return nil, types.ErrBinCacheMismatch.Wrapf("bin %d not in the declared set", id)
	}
	return b, nil
}

// require checks that every id is declared.
func (s *binSet) require(ids []int32) error {
	for _, id := range ids {
		if _, err := s.get(id); err != nil {
			return err
		}
	}
	return nil
}

// commit writes the working copies back and consumes the commitment.
func (s *binSet) commit(arena Bins) error {
	if err := s.c.Use(s.c.Owner); err != nil {
		return err
	}
	for id, b := range s.bins {
		existing := arena.Get(id)
		switch {
		case existing != nil:
			*existing = *b
		case !b.Liquidity.IsZero():
			arena.Put(b)
		}
	}
	return nil
}
