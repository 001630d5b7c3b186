package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
	"github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
	codexmock "github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex/mock"
	"github.com/KirkDiggler/rpg-codex/internal/services/profileview"
	"github.com/KirkDiggler/rpg-codex/internal/testutils/builders"
)

type CodexHandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockCodex *codexmock.MockService
	presenter *profileview.Presenter
	handler   *v1alpha1.Handler
	ctx       context.Context
}

func TestCodexHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CodexHandlerTestSuite))
}

func (s *CodexHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCodex = codexmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	presenter, err := profileview.New(&profileview.Config{Service: s.mockCodex})
	s.Require().NoError(err)
	s.presenter = presenter

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{Presenter: presenter})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *CodexHandlerTestSuite) TearDownTest() {
	s.presenter.Close()
	s.ctrl.Finish()
}

func (s *CodexHandlerTestSuite) mustStruct(m map[string]any) *structpb.Struct {
	msg, err := structpb.NewStruct(m)
	s.Require().NoError(err)
	return msg
}

func (s *CodexHandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok, "expected a grpc status error, got %v", err)
	s.Equal(code, st.Code())
}

func (s *CodexHandlerTestSuite) TestNewHandler_RequiresPresenter() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(nil)
	s.Require().Error(err)
}

func (s *CodexHandlerTestSuite) TestPrepareHeroProfile_Success() {
	expected := builders.NewProfileBuilder().WithName("Nyx").WithGold(5).Build()

	s.mockCodex.EXPECT().
		PrepareHeroProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *codex.PrepareHeroProfileInput) (*codex.PrepareHeroProfileOutput, error) {
			s.Equal("hero-test-123", input.Hero.ID)
			s.Equal(hero.ClassMage, input.Hero.Class)
			s.Equal(3, input.Hero.Level)
			s.Equal("Nyx", input.CustomName)
			s.Empty(input.Hero.InventoryID)
			return &codex.PrepareHeroProfileOutput{Profile: expected, Created: true}, nil
		})

	resp, err := s.handler.PrepareHeroProfile(s.ctx, s.mustStruct(map[string]any{
		hero.FieldHeroID:    "hero-test-123",
		hero.FieldHeroName:  "Zed",
		hero.FieldHeroClass: "MAGE",
		hero.FieldLevel:     3,
		"customName":        "Nyx",
	}))
	s.Require().NoError(err)

	fields := resp.AsMap()
	s.Equal("hero-test-123", fields[hero.FieldHeroID])
	s.Equal(string(profileview.StatusLoaded), fields[v1alpha1.FieldStatus])

	profile, ok := fields[v1alpha1.FieldProfile].(map[string]any)
	s.Require().True(ok)
	s.Equal("Nyx", profile[hero.FieldHeroName])
	s.Equal(float64(5), profile[hero.FieldGold])
}

func (s *CodexHandlerTestSuite) TestPrepareHeroProfile_NameFromCustomName() {
	s.mockCodex.EXPECT().
		PrepareHeroProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *codex.PrepareHeroProfileInput) (*codex.PrepareHeroProfileOutput, error) {
			s.Equal("Nyx", input.Hero.Name)
			s.Equal(1, input.Hero.Level)
			return &codex.PrepareHeroProfileOutput{
				Profile: builders.NewProfileBuilder().WithName("Nyx").Build(),
			}, nil
		})

	_, err := s.handler.PrepareHeroProfile(s.ctx, s.mustStruct(map[string]any{
		hero.FieldHeroID:    "hero-test-123",
		hero.FieldHeroClass: "MAGE",
		"customName":        "Nyx",
	}))
	s.Require().NoError(err)
}

func (s *CodexHandlerTestSuite) TestPrepareHeroProfile_InvalidRequest() {
	testCases := []struct {
		name    string
		request map[string]any
	}{
		{
			name:    "unknown class",
			request: map[string]any{hero.FieldHeroID: "h1", hero.FieldHeroName: "Zed", hero.FieldHeroClass: "BARD"},
		},
		{
			name:    "missing hero id",
			request: map[string]any{hero.FieldHeroName: "Zed", hero.FieldHeroClass: "MAGE"},
		},
		{
			name:    "non numeric level",
			request: map[string]any{hero.FieldHeroID: "h1", hero.FieldHeroName: "Zed", hero.FieldHeroClass: "MAGE", hero.FieldLevel: "three"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.PrepareHeroProfile(s.ctx, s.mustStruct(tc.request))
			s.requireCode(err, codes.InvalidArgument)
		})
	}
}

func (s *CodexHandlerTestSuite) TestPrepareHeroProfile_LocalFailure() {
	s.mockCodex.EXPECT().
		PrepareHeroProfile(gomock.Any(), gomock.Any()).
		Return(nil, errors.LocalStore("get", "hero-test-123", errors.Internal("disk full")))

	_, err := s.handler.PrepareHeroProfile(s.ctx, s.mustStruct(map[string]any{
		hero.FieldHeroID:    "hero-test-123",
		hero.FieldHeroName:  "Zed",
		hero.FieldHeroClass: "MAGE",
	}))
	s.requireCode(err, codes.Internal)

	st, ok := s.presenter.Current("hero-test-123")
	s.Require().True(ok)
	s.Equal(profileview.StatusError, st.Status)
}

func (s *CodexHandlerTestSuite) TestUpdateInventory_Success() {
	p := builders.NewProfileBuilder().
		WithGold(40).
		WithItems(builders.Sword("sword-1"), builders.Rune("rune-1", 3)).
		Build()

	s.mockCodex.EXPECT().
		UpdateInventory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *codex.UpdateInventoryInput) (*codex.UpdateInventoryOutput, error) {
			s.Equal(p.Hero.ID, input.Profile.Hero.ID)
			s.Equal(40, input.Profile.Inventory.Gold)
			s.Equal(2, input.Profile.Inventory.Len())
			return &codex.UpdateInventoryOutput{Profile: input.Profile}, nil
		})

	resp, err := s.handler.UpdateInventory(s.ctx, s.mustStruct(p.ToMap()))
	s.Require().NoError(err)

	profile, ok := resp.AsMap()[v1alpha1.FieldProfile].(map[string]any)
	s.Require().True(ok)
	items, ok := profile[hero.FieldItems].([]any)
	s.Require().True(ok)
	s.Len(items, 2)
}

func (s *CodexHandlerTestSuite) TestUpdateInventory_RejectsMalformedItems() {
	doc := builders.NewProfileBuilder().WithItems(builders.Helmet("helm-1")).Build().ToMap()
	doc[hero.FieldItems] = append(doc[hero.FieldItems].([]any), map[string]any{
		"id":       "broken",
		"name":     "Broken",
		"category": "NOT_A_CATEGORY",
	})

	_, err := s.handler.UpdateInventory(s.ctx, s.mustStruct(doc))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *CodexHandlerTestSuite) TestUpdateInventory_RejectsOverflow() {
	doc := builders.NewProfileBuilder().WithRunes(3).Build().ToMap()
	doc[hero.FieldCapacity] = 2

	_, err := s.handler.UpdateInventory(s.ctx, s.mustStruct(doc))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *CodexHandlerTestSuite) TestRefreshFromRemote() {
	s.Run("missing hero id", func() {
		_, err := s.handler.RefreshFromRemote(s.ctx, s.mustStruct(map[string]any{}))
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("no local profile", func() {
		s.mockCodex.EXPECT().
			RefreshFromRemote(gomock.Any(), &codex.RefreshFromRemoteInput{HeroID: "ghost"}).
			Return(&codex.RefreshFromRemoteOutput{}, nil)

		_, err := s.handler.RefreshFromRemote(s.ctx, s.mustStruct(map[string]any{hero.FieldHeroID: "ghost"}))
		s.requireCode(err, codes.NotFound)
	})

	s.Run("refreshed", func() {
		p := builders.NewProfileBuilder().WithGold(99).Build()
		s.mockCodex.EXPECT().
			RefreshFromRemote(gomock.Any(), &codex.RefreshFromRemoteInput{HeroID: p.Hero.ID}).
			Return(&codex.RefreshFromRemoteOutput{Profile: p, Refreshed: true}, nil)

		resp, err := s.handler.RefreshFromRemote(s.ctx, s.mustStruct(map[string]any{hero.FieldHeroID: p.Hero.ID}))
		s.Require().NoError(err)
		s.Equal(string(profileview.StatusLoaded), resp.AsMap()[v1alpha1.FieldStatus])
	})
}

func (s *CodexHandlerTestSuite) TestWatchProfile_OverGRPC() {
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	v1alpha1.RegisterCodexServiceServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()
	client := v1alpha1.NewCodexServiceClient(conn)

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	initial := builders.NewProfileBuilder().WithGold(1).Build()
	s.mockCodex.EXPECT().
		PrepareHeroProfile(gomock.Any(), gomock.Any()).
		Return(&codex.PrepareHeroProfileOutput{Profile: initial}, nil)

	_, err = client.PrepareHeroProfile(ctx, s.mustStruct(map[string]any{
		hero.FieldHeroID:    initial.Hero.ID,
		hero.FieldHeroName:  initial.Hero.Name,
		hero.FieldHeroClass: string(initial.Hero.Class),
	}))
	s.Require().NoError(err)

	stream, err := client.WatchProfile(ctx, s.mustStruct(map[string]any{hero.FieldHeroID: initial.Hero.ID}))
	s.Require().NoError(err)

	first, err := stream.Recv()
	s.Require().NoError(err)
	s.Equal(string(profileview.StatusLoaded), first.AsMap()[v1alpha1.FieldStatus])

	updated := initial.Clone()
	updated.Inventory.Gold = 250
	s.mockCodex.EXPECT().
		UpdateInventory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *codex.UpdateInventoryInput) (*codex.UpdateInventoryOutput, error) {
			return &codex.UpdateInventoryOutput{Profile: input.Profile}, nil
		})

	_, err = client.UpdateInventory(ctx, s.mustStruct(updated.ToMap()))
	s.Require().NoError(err)

	for {
		msg, err := stream.Recv()
		s.Require().NoError(err)
		fields := msg.AsMap()
		if fields[v1alpha1.FieldStatus] != string(profileview.StatusLoaded) {
			continue
		}
		profile := fields[v1alpha1.FieldProfile].(map[string]any)
		if profile[hero.FieldGold] == float64(250) {
			break
		}
	}
}

func (s *CodexHandlerTestSuite) TestGRPCErrorsCarryCodes() {
	_, err := s.handler.RefreshFromRemote(s.ctx, s.mustStruct(map[string]any{hero.FieldHeroID: ""}))
	s.requireCode(err, codes.InvalidArgument)
	s.True(errors.IsInvalidArgument(errors.FromGRPCError(err)))
}
