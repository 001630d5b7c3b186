// Package v1alpha1 handles the codex grpc service interface
package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/services/profileview"
)

// Request and response keys beyond the profile document fields
const (
	FieldCustomName = "customName"
	FieldStatus     = "status"
	FieldMessage    = "message"
	FieldProfile    = "profile"
)

// HandlerConfig holds dependencies for the codex handler
type HandlerConfig struct {
	Presenter *profileview.Presenter
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Presenter == nil {
		vb.RequiredField("Presenter")
	}
	return vb.Build()
}

// Handler implements the codex gRPC service
type Handler struct {
	presenter *profileview.Presenter
}

var _ CodexServiceServer = (*Handler)(nil)

// NewHandler creates a new codex handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid handler config")
	}

	return &Handler{
		presenter: cfg.Presenter,
	}, nil
}

// PrepareHeroProfile loads or creates a hero's profile. The request carries
// the hero fields of a profile document plus an optional customName.
func (h *Handler) PrepareHeroProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.AsMap()
	heroDoc, err := heroFromRequest(fields)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	customName, _ := fields[FieldCustomName].(string)

	st, err := h.presenter.PrepareHeroProfile(ctx, heroDoc, customName)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return stateToStruct(st)
}

// UpdateInventory saves a whole profile document. Items that fail to decode
// reject the request.
func (h *Handler) UpdateInventory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	p, report, err := hero.DecodeProfile(req.AsMap())
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if report.Truncated() {
		err := errors.InvalidArgumentf("profile has %d malformed and %d dropped items",
			len(report.Malformed), report.Dropped)
		if len(report.Malformed) > 0 {
			err = err.WithMeta("reason", string(errors.ReasonOf(report.Malformed[0])))
		}
		return nil, errors.ToGRPCError(err)
	}

	st, err := h.presenter.UpdateInventory(ctx, p)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return stateToStruct(st)
}

// RefreshFromRemote replaces the local inventory with the remote copy
func (h *Handler) RefreshFromRemote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	heroID, err := heroIDFromRequest(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	st, err := h.presenter.RefreshFromRemote(ctx, heroID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return stateToStruct(st)
}

// WatchProfile streams the hero's profile states until the client goes away
func (h *Handler) WatchProfile(req *structpb.Struct, stream CodexService_WatchProfileServer) error {
	heroID, err := heroIDFromRequest(req)
	if err != nil {
		return errors.ToGRPCError(err)
	}

	ctx := stream.Context()
	updates, cancel := h.presenter.Subscribe(heroID)
	defer cancel()

	slog.DebugContext(ctx, "Watching profile", "hero_id", heroID)
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			msg, err := stateToStruct(st)
			if err != nil {
				return err
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

func heroIDFromRequest(req *structpb.Struct) (string, error) {
	value, ok := req.GetFields()[hero.FieldHeroID]
	if !ok || value.GetStringValue() == "" {
		return "", errors.InvalidArgument("heroId is required")
	}
	return value.GetStringValue(), nil
}

// heroFromRequest reads the hero fields of a profile document
func heroFromRequest(fields map[string]any) (*hero.Hero, error) {
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	// the name may come only as customName
	if name, _ := doc[hero.FieldHeroName].(string); name == "" {
		doc[hero.FieldHeroName] = doc[FieldCustomName]
	}
	delete(doc, hero.FieldItems)

	p, _, err := hero.DecodeProfile(doc)
	if err != nil {
		return nil, err
	}
	h := p.Hero
	if id, _ := fields[hero.FieldInventoryID].(string); id == "" {
		h.InventoryID = ""
	}
	return h, nil
}

func stateToStruct(st profileview.State) (*structpb.Struct, error) {
	out := map[string]any{
		hero.FieldHeroID: st.HeroID,
		FieldStatus:      string(st.Status),
	}
	if st.Message != "" {
		out[FieldMessage] = st.Message
	}
	if st.Profile != nil {
		out[FieldProfile] = st.Profile.ToMap()
	}

	msg, err := structpb.NewStruct(out)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode profile state"))
	}
	return msg, nil
}
