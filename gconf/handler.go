package gconf

import (
	"reflect"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/errors"
	"github.com/iov-one/nftsale/x"
)

// OwnedConfig is a configuration only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() weave.Address
}

// UpdateConfigurationHandler applies patch messages to the configuration
// of one extension.
type UpdateConfigurationHandler struct {
	pkg       string
	confType  reflect.Type
	auth      x.Authenticator
	initAdmin func(weave.ReadOnlyKVStore) (weave.Address, error)
}

var _ weave.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler for messages carrying a
// Patch field of the same type as config, which must be a pointer to a
// struct. Every non zero field of the patch replaces the stored one.
//
// The current owner must sign the message. Before any configuration
// exists, only the address returned by initAdmin may create it. A nil
// initAdmin forbids that.
func NewUpdateConfigurationHandler(
	pkg string,
	config OwnedConfig,
	auth x.Authenticator,
	initAdmin func(weave.ReadOnlyKVStore) (weave.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		confType:  reflect.TypeOf(config).Elem(),
		auth:      auth,
		initAdmin: initAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	conf, err := h.update(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("configuration updated", "package", h.pkg, "owner", conf.GetOwner())
	return &weave.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx weave.Context, db weave.KVStore, tx weave.Tx) (OwnedConfig, error) {
	conf := reflect.New(h.confType).Interface().(OwnedConfig)
	if err := h.authorize(ctx, db, conf); err != nil {
		return nil, err
	}
	p, err := patchOf(tx)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(p) != reflect.TypeOf(conf) {
		return nil, errors.Wrapf(errors.ErrMsg, "patch of type %T for %s configuration", p, h.pkg)
	}
	applyPatch(reflect.ValueOf(conf).Elem(), reflect.ValueOf(p).Elem())
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// authorize loads the current configuration into conf and checks that its
// owner signed. Without a configuration the init admin must sign.
func (h UpdateConfigurationHandler) authorize(ctx weave.Context, db weave.KVStore, conf OwnedConfig) error {
	err := Load(db, h.pkg, conf)
	switch {
	case err == nil:
		owner := conf.GetOwner()
		if owner == nil || !h.auth.HasAddress(ctx, owner) {
			return errors.Wrapf(errors.ErrUnauthorized, "%s configuration owner signature required", h.pkg)
		}
		return nil
	case !errors.ErrNotFound.Is(err):
		return err
	case h.initAdmin == nil:
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration cannot be created", h.pkg)
	}
	admin, err := h.initAdmin(db)
	if err != nil {
		return errors.Wrap(err, "configuration admin")
	}
	if !h.auth.HasAddress(ctx, admin) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration admin signature required", h.pkg)
	}
	return nil
}

func applyPatch(conf, p reflect.Value) {
	for i := 0; i < conf.NumField(); i++ {
		dst, src := conf.Field(i), p.Field(i)
		if !dst.CanSet() || reflect.DeepEqual(src.Interface(), reflect.Zero(src.Type()).Interface()) {
			continue
		}
		dst.Set(src)
	}
}

// patchOf validates the message of tx and returns its Patch field.
func patchOf(tx weave.Tx) (interface{}, error) {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return nil, err
	case msg == nil:
		return nil, errors.Wrap(errors.ErrInput, "missing message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	}
	f := v.Elem().FieldByName("Patch")
	switch {
	case !f.IsValid() || f.Kind() != reflect.Ptr:
		return nil, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	case f.IsNil():
		return nil, errors.Wrap(errors.ErrState, "empty patch")
	}
	return f.Interface(), nil
}
