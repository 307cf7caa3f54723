/*
Package api serves a read only JSON view of the sale state over HTTP.

All reads go through the query interface of the running application, so the
API always shows the last committed block.

	GET /healthz
	GET /signers
	GET /assets?client=ADDR
	GET /assets?delegate=ADDR
	GET /assets/{id}
	GET /assets/{id}/owner
	GET /wallets/{address}
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/app"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/signers"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Server reads the application state and renders it as JSON.
type Server struct {
	db      weave.ReadOnlyKVStore
	roster  signers.Controller
	assets  *asset.Controller
	wallets cash.BaseController
	logger  log.Logger
}

// New returns the HTTP handler exposing the state of given application.
func New(application abci.Application, logger log.Logger) http.Handler {
	roster := signers.NewController()
	s := &Server{
		db:      app.NewABCIStore(application),
		roster:  roster,
		assets:  asset.NewController(roster, nil),
		wallets: cash.NewController(cash.NewBucket()),
		logger:  logger.With("module", "api"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.healthz)
	r.Get("/signers", s.signers)
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", s.listAssets)
		r.Get("/{id}", s.asset)
		r.Get("/{id}/owner", s.owner)
	})
	r.Get("/wallets/{address}", s.wallet)
	return r
}

type assetView struct {
	ID         uint64          `json:"id"`
	Price      uint64          `json:"price"`
	AmountPaid uint64          `json:"amount_paid"`
	Client     weave.Address   `json:"client"`
	Delegate   weave.Address   `json:"delegate,omitempty"`
	Custody    string          `json:"custody"`
	Phase      string          `json:"phase"`
	Signers    []weave.Address `json:"signers"`
	Required   uint32          `json:"required"`
	Satisfied  bool            `json:"satisfied"`
	Rounds     uint32          `json:"rounds"`
}

func newAssetView(a *asset.Asset) assetView {
	v := assetView{
		ID:         a.AssetID(),
		Price:      a.Price,
		AmountPaid: a.AmountPaid,
		Client:     a.Client,
		Delegate:   a.Delegate,
		Custody:    a.Custody.String(),
		Phase:      a.Phase.String(),
		Signers:    []weave.Address{},
		Rounds:     a.Rounds,
	}
	if a.Quorum != nil {
		v.Signers = append(v.Signers, a.Quorum.Signers...)
		v.Required = a.Quorum.Required
		v.Satisfied = a.Quorum.Satisfied
	}
	return v
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	JSONResp(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) signers(w http.ResponseWriter, r *http.Request) {
	var reg *signers.Registry
	err := s.read(func(db weave.ReadOnlyKVStore) (err error) {
		reg, err = s.roster.Registry(db)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	JSONResp(w, http.StatusOK, reg)
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		lookup func(weave.ReadOnlyKVStore, weave.Address) ([]*asset.Asset, error)
		raw    string
	)
	switch {
	case query.Get("client") != "":
		lookup, raw = s.assets.ByClient, query.Get("client")
	case query.Get("delegate") != "":
		lookup, raw = s.assets.ByDelegate, query.Get("delegate")
	default:
		JSONErr(w, http.StatusBadRequest, "client or delegate filter is required")
		return
	}
	addr, err := weave.ParseAddress(raw)
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "invalid address")
		return
	}

	var found []*asset.Asset
	err = s.read(func(db weave.ReadOnlyKVStore) (err error) {
		found, err = lookup(db, addr)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]assetView, 0, len(found))
	for _, a := range found {
		views = append(views, newAssetView(a))
	}
	JSONResp(w, http.StatusOK, views)
}

func (s *Server) asset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var a *asset.Asset
	err := s.read(func(db weave.ReadOnlyKVStore) (err error) {
		a, err = s.assets.Asset(db, id)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	JSONResp(w, http.StatusOK, newAssetView(a))
}

func (s *Server) owner(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var owner weave.Address
	err := s.read(func(db weave.ReadOnlyKVStore) (err error) {
		owner, err = s.assets.OwnerOf(db, id)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	JSONResp(w, http.StatusOK, map[string]weave.Address{"owner": owner})
}

func (s *Server) wallet(w http.ResponseWriter, r *http.Request) {
	addr, err := weave.ParseAddress(chi.URLParam(r, "address"))
	if err != nil || addr.Validate() != nil {
		JSONErr(w, http.StatusBadRequest, "invalid address")
		return
	}
	var balance uint64
	err = s.read(func(db weave.ReadOnlyKVStore) (err error) {
		balance, err = s.wallets.Balance(db, addr)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	JSONResp(w, http.StatusOK, map[string]uint64{"balance": balance})
}

// read runs fn against the application state. The store panics when a query
// fails, which is turned back into an error here.
func (s *Server) read(fn func(weave.ReadOnlyKVStore) error) (err error) {
	defer errors.Recover(&err)
	return fn(s.db)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case asset.ErrUnknownAsset.Is(err), errors.ErrNotFound.Is(err):
		JSONErr(w, http.StatusNotFound, err.Error())
	case errors.ErrInput.Is(err):
		JSONErr(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("cannot read state", "err", err)
		JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func assetID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "asset id must be a number")
		return 0, false
	}
	return id, true
}

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	resp := struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	}
	JSONResp(w, code, resp)
}
