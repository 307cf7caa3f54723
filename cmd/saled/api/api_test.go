package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/app"
	"github.com/iov-one/nftsale/orm"
	"github.com/iov-one/nftsale/store/iavl"
	"github.com/iov-one/nftsale/weavetest"
	"github.com/iov-one/nftsale/x/asset"
	"github.com/iov-one/nftsale/x/cash"
	"github.com/iov-one/nftsale/x/signers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestAPI(t *testing.T) {
	custodian := weavetest.NewCondition().Address()
	member := weavetest.NewCondition().Address()
	client := weavetest.NewCondition().Address()
	delegate := weavetest.NewCondition().Address()

	kv, err := iavl.NewCommitStore("", "api-test")
	require.NoError(t, err)
	qr := weave.NewQueryRouter()
	orm.RegisterQuery(qr)
	store := app.NewStoreApp("api-test", kv, qr, context.Background())
	application := app.NewBaseApp(store, nil, nil, false)

	db := store.DeliverStore()
	roster := signers.NewController()
	reg, err := signers.NewRegistry(custodian, []weave.Address{member}, 1)
	require.NoError(t, err)
	require.NoError(t, roster.Save(db, reg))
	bank := cash.NewController(cash.NewBucket())
	require.NoError(t, bank.IssueCoins(db, client, 250))
	ctrl := asset.NewController(roster, bank)
	_, err = ctrl.Mint(db, custodian, 9, client, 100, delegate)
	require.NoError(t, err)
	application.Commit()

	srv := httptest.NewServer(New(application, log.NewNopLogger()))
	defer srv.Close()

	cases := map[string]struct {
		path     string
		wantCode int
		check    func(t *testing.T, body []byte)
	}{
		"health": {
			path:     "/healthz",
			wantCode: http.StatusOK,
		},
		"roster": {
			path:     "/signers",
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got signers.Registry
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, custodian, got.Custodian)
				assert.Equal(t, []weave.Address{member}, got.Members)
			},
		},
		"asset": {
			path:     "/assets/9",
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got assetView
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, uint64(9), got.ID)
				assert.Equal(t, uint64(100), got.Price)
				assert.Equal(t, client, got.Client)
				assert.Equal(t, asset.PhaseAwaitingDepositQuorum.String(), got.Phase)
			},
		},
		"owner before transfer": {
			path:     "/assets/9/owner",
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got map[string]weave.Address
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, custodian, got["owner"])
			},
		},
		"unknown asset": {
			path:     "/assets/10",
			wantCode: http.StatusNotFound,
		},
		"invalid asset id": {
			path:     "/assets/nine",
			wantCode: http.StatusBadRequest,
		},
		"assets by client": {
			path:     "/assets?client=" + client.String(),
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got []assetView
				require.NoError(t, json.Unmarshal(body, &got))
				require.Len(t, got, 1)
				assert.Equal(t, uint64(9), got[0].ID)
			},
		},
		"assets by delegate": {
			path:     "/assets?delegate=" + delegate.String(),
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got []assetView
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Len(t, got, 1)
			},
		},
		"assets without filter": {
			path:     "/assets",
			wantCode: http.StatusBadRequest,
		},
		"wallet": {
			path:     "/wallets/" + client.String(),
			wantCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got map[string]uint64
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, uint64(250), got["balance"])
			},
		},
		"wallet with invalid address": {
			path:     "/wallets/xyz",
			wantCode: http.StatusBadRequest,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			var body json.RawMessage
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}
}
