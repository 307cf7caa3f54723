package app

import (
	"encoding/json"
	"fmt"
	"strings"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp serves the storage side of the ABCI protocol: genesis, block
// boundaries, commits and queries. BaseApp embeds it and adds the
// transaction processing.
//
// InitChain and Commit carry no user input. A failure there means the node
// state is broken and StoreApp panics.
type StoreApp struct {
	name   string
	logger log.Logger
	debug  bool

	store   *CommitStore
	init    weave.Initializer
	queries weave.QueryRouter

	chainID string
	// baseCtx is shared by all blocks, blockCtx is rebuilt on BeginBlock.
	baseCtx  weave.Context
	blockCtx weave.Context
}

// NewStoreApp loads the latest committed state of store. The chain id is
// restored when the genesis was already processed.
func NewStoreApp(name string, store weave.CommitKVStore, queries weave.QueryRouter, ctx weave.Context) *StoreApp {
	s := &StoreApp{
		name:    name,
		store:   NewCommitStore(store),
		queries: queries,
		baseCtx: ctx,
	}
	s.WithLogger(log.NewNopLogger())
	if id := loadChainID(s.DeliverStore()); id != "" {
		s.setChainID(id)
	}
	s.blockCtx = weave.WithHeight(s.baseCtx, s.store.CommitInfo().Version)
	return s
}

func (s *StoreApp) setChainID(id string) {
	s.chainID = id
	s.baseCtx = weave.WithChainID(s.baseCtx, id)
}

// WithInit sets the genesis loader run by InitChain.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithDebug includes error details in failed query responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger of the application and of every context it
// creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseCtx = weave.WithLogger(s.baseCtx, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger                   { return s.logger }
func (s *StoreApp) GetChainID() string                   { return s.chainID }
func (s *StoreApp) BlockContext() weave.Context          { return s.blockCtx }
func (s *StoreApp) DeliverStore() weave.CacheableKVStore { return s.store.DeliverStore() }
func (s *StoreApp) CheckStore() weave.CacheableKVStore   { return s.store.CheckStore() }

// loadGenesis runs once per chain, on the very first InitChain.
func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis of chain %q already loaded", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrState, "genesis has no app_state")
	}
	var opts weave.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	if s.init == nil {
		return nil
	}
	return s.init.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	id := s.store.CommitInfo()
	s.logger.Info("state loaded", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads the last committed state. The path selects a registered
// handler ("/", "/assets", "/assets/client") and an optional "?prefix"
// suffix turns a key lookup into a prefix scan. The request height is
// ignored.
//
// Key and Value of the response are ResultSets of equal length, holding
// zero or more matches.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return s.queryFailed(errors.Wrapf(errors.ErrNotFound, "no query handler for %q", req.Path))
	}

	height := s.store.CommitInfo().Version
	found, err := h.Query(s.store.Committed(), mod, req.Data)
	if err != nil {
		return s.queryFailed(err)
	}
	keys, err := ResultsFromKeys(found).Marshal()
	if err != nil {
		return s.queryFailed(err)
	}
	values, err := ResultsFromValues(found).Marshal()
	if err != nil {
		return s.queryFailed(err)
	}
	return abci.ResponseQuery{Height: height, Key: keys, Value: values}
}

func (s *StoreApp) queryFailed(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: msg}
}

// Commit persists the block and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("block committed", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app_state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and time seen by every transaction of the
// block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeight(s.baseCtx, req.Header.GetHeight())
	s.blockCtx = weave.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
