package codex_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/entities/item"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/clock"
	idgenmock "github.com/KirkDiggler/rpg-codex/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory"
	heroinventorymock "github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory/mock"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile"
	profilemock "github.com/KirkDiggler/rpg-codex/internal/repositories/profile/mock"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
	"github.com/KirkDiggler/rpg-codex/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProfile  *profilemock.MockRepository
	mockRemote   *heroinventorymock.MockRepository
	mockIDGen    *idgenmock.MockGenerator
	bus          events.EventBus
	published    []string
	orchestrator codex.Service
	ctx          context.Context
	now          time.Time
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockProfile = profilemock.NewMockRepository(s.ctrl)
	s.mockRemote = heroinventorymock.NewMockRepository(s.ctrl)
	s.mockIDGen = idgenmock.NewMockGenerator(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	s.published = nil
	s.bus = events.NewBus()
	for _, eventType := range hero.ProfileEventTypes() {
		s.bus.SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			s.published = append(s.published, e.Type())
			return nil
		})
	}

	s.orchestrator = s.newOrchestrator(false)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(ensureWeapon bool) codex.Service {
	svc, err := codex.NewOrchestrator(&codex.Config{
		ProfileRepo:          s.mockProfile,
		RemoteRepo:           s.mockRemote,
		EventBus:             s.bus,
		IDGenerator:          s.mockIDGen,
		Clock:                clock.Fixed(s.now),
		RemoteTimeout:        time.Second,
		EnsureMainHandWeapon: ensureWeapon,
	})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) expectSyncStateWrites(times int) {
	s.mockProfile.EXPECT().
		RecordSyncState(s.ctx, gomock.Any()).
		Return(&profile.RecordSyncStateOutput{}, nil).
		Times(times)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorRequiresProfileRepo() {
	_, err := codex.NewOrchestrator(&codex.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestPrepareCreatesDefaultProfile() {
	mage := testutils.CreateTestHero("hero-1", hero.ClassMage)

	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, profile.GetHeroWithInventoryInput{HeroID: "hero-1"}).
		Return(nil, errors.NotFound("no profile"))
	s.mockIDGen.EXPECT().Generate().Return("op-1")

	var stored *hero.Profile
	s.mockProfile.EXPECT().
		UpsertHeroProfile(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input profile.UpsertHeroProfileInput) (*profile.UpsertHeroProfileOutput, error) {
			stored = input.Profile.Clone()
			return &profile.UpsertHeroProfileOutput{}, nil
		})
	s.expectSyncStateWrites(2)

	var pushed hero_inventory.SetInput
	s.mockRemote.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input hero_inventory.SetInput) (*hero_inventory.SetOutput, error) {
			pushed = input
			return &hero_inventory.SetOutput{}, nil
		})

	out, err := s.orchestrator.PrepareHeroProfile(s.ctx, &codex.PrepareHeroProfileInput{
		Hero:       mage,
		CustomName: "  Ayla ",
	})
	s.Require().NoError(err)

	s.Assert().True(out.Created)
	s.Assert().Equal("Ayla", out.Profile.Hero.Name)
	s.Assert().Equal("hero-1-inventory", out.Profile.Inventory.ID)
	s.Assert().Equal(10, out.Profile.Inventory.Len())
	s.Assert().Equal(0, out.Profile.Inventory.Gold)
	s.Assert().Equal([]codex.State{
		codex.StateUnloaded,
		codex.StateLocalMiss,
		codex.StateDefaultCreated,
		codex.StatePersisted,
		codex.StateRemoteSynced,
	}, out.Trace)
	s.Assert().Equal(codex.SyncStatusSynced, out.Sync.Status)
	s.Assert().Equal("op-1", out.Sync.OperationID)

	s.Require().NotNil(stored)
	s.Assert().True(stored.Equal(out.Profile))

	s.Assert().Equal(hero_inventory.Collection, pushed.Collection)
	s.Assert().Equal("hero-1-inventory", pushed.DocumentID)
	s.Assert().Equal("hero-1", pushed.Body[hero.FieldHeroID])
	s.Assert().Equal("Ayla", pushed.Body[hero.FieldHeroName])

	s.Assert().Equal([]string{hero.EventProfilePersisted, hero.EventProfileSynced}, s.published)
}

func (s *OrchestratorTestSuite) TestPrepareKeepsStoredInventoryOnRename() {
	stored := builders.NewProfileBuilder().
		WithHeroID("hero-1").
		WithName("Old").
		WithInventoryID("bag-7").
		WithRunes(3).
		Build()

	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(&profile.GetHeroWithInventoryOutput{Profile: stored.Clone()}, nil)
	s.mockIDGen.EXPECT().Generate().Return("op-2")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.expectSyncStateWrites(2)
	s.mockRemote.EXPECT().Set(gomock.Any(), gomock.Any()).Return(&hero_inventory.SetOutput{}, nil)

	incoming := stored.Hero.Clone()
	incoming.InventoryID = ""

	out, err := s.orchestrator.PrepareHeroProfile(s.ctx, &codex.PrepareHeroProfileInput{
		Hero:       incoming,
		CustomName: "New",
	})
	s.Require().NoError(err)

	s.Assert().False(out.Created)
	s.Assert().Equal("New", out.Profile.Hero.Name)
	s.Assert().Equal("bag-7", out.Profile.Hero.InventoryID)
	s.Assert().True(stored.Inventory.Equal(out.Profile.Inventory))
	s.Assert().Equal(codex.StateLocalHit, out.Trace[1])
}

func (s *OrchestratorTestSuite) TestPrepareRejectsInvalidHero() {
	testCases := []struct {
		name  string
		input *codex.PrepareHeroProfileInput
	}{
		{name: "nil input", input: nil},
		{name: "nil hero", input: &codex.PrepareHeroProfileInput{}},
		{
			name:  "missing id",
			input: &codex.PrepareHeroProfileInput{Hero: &hero.Hero{Name: "Zed", Level: 1, Class: hero.ClassMage}},
		},
		{
			name:  "unknown class",
			input: &codex.PrepareHeroProfileInput{Hero: &hero.Hero{ID: "h", Name: "Zed", Level: 1, Class: "BARD"}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.PrepareHeroProfile(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestPrepareLocalLoadFailureIsFatal() {
	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("database is locked"))

	_, err := s.orchestrator.PrepareHeroProfile(s.ctx, &codex.PrepareHeroProfileInput{
		Hero: testutils.CreateTestHero("hero-1", hero.ClassWarrior),
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsLocalStore(err))
	s.Assert().True(errors.IsInternal(err))
	s.Assert().Empty(s.published)
}

func (s *OrchestratorTestSuite) TestPreparePersistFailureSkipsRemote() {
	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no profile"))
	s.mockIDGen.EXPECT().Generate().Return("op-3")
	s.mockProfile.EXPECT().
		UpsertHeroProfile(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("disk full"))

	_, err := s.orchestrator.PrepareHeroProfile(s.ctx, &codex.PrepareHeroProfileInput{
		Hero: testutils.CreateTestHero("hero-1", hero.ClassRanger),
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsLocalStore(err))
}

func (s *OrchestratorTestSuite) TestUpdateInventoryDefersRemoteFailure() {
	p := builders.NewProfileBuilder().WithHeroID("hero-1").WithGold(12).WithRunes(2).Build()

	s.mockIDGen.EXPECT().Generate().Return("op-4")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)

	var states []profile.SyncState
	s.mockProfile.EXPECT().
		RecordSyncState(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input profile.RecordSyncStateInput) (*profile.RecordSyncStateOutput, error) {
			states = append(states, input.State)
			return &profile.RecordSyncStateOutput{}, nil
		}).
		Times(2)
	s.mockRemote.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("connection refused"))

	out, err := s.orchestrator.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{Profile: p})
	s.Require().NoError(err)

	s.Assert().Equal(codex.SyncStatusDeferred, out.Sync.Status)
	s.Require().Error(out.Sync.Err)
	s.Assert().True(errors.IsRemoteSync(out.Sync.Err))
	s.Assert().Equal([]codex.State{codex.StateUnloaded, codex.StatePersisted}, out.Trace)
	s.Assert().True(p.Equal(out.Profile))

	s.Require().Len(states, 2)
	s.Assert().Nil(states[1].RemoteSyncedAt)
	s.Assert().Contains(states[1].LastRemoteError, "connection refused")
	s.Assert().Equal("op-4", states[1].LastOperationID)

	s.Assert().Equal([]string{hero.EventProfilePersisted, hero.EventProfileSyncDeferred}, s.published)
}

func (s *OrchestratorTestSuite) TestUpdateInventoryRejectsForeignInventory() {
	p := builders.NewProfileBuilder().WithHeroID("hero-1").Build()
	p.Inventory.HeroID = "hero-2"

	_, err := s.orchestrator.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{Profile: p})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSyncStateFailureDoesNotFailWrite() {
	p := builders.NewProfileBuilder().WithHeroID("hero-1").Build()

	s.mockIDGen.EXPECT().Generate().Return("op-5")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.mockProfile.EXPECT().
		RecordSyncState(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("locked")).
		Times(2)
	s.mockRemote.EXPECT().Set(gomock.Any(), gomock.Any()).Return(&hero_inventory.SetOutput{}, nil)

	out, err := s.orchestrator.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{Profile: p})
	s.Require().NoError(err)
	s.Assert().Equal(codex.SyncStatusSynced, out.Sync.Status)
}

func (s *OrchestratorTestSuite) TestRefreshWithoutLocalProfile() {
	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("no profile"))

	out, err := s.orchestrator.RefreshFromRemote(s.ctx, &codex.RefreshFromRemoteInput{HeroID: "hero-1"})
	s.Require().NoError(err)
	s.Assert().Nil(out.Profile)
	s.Assert().False(out.Refreshed)
}

func (s *OrchestratorTestSuite) TestRefreshRemoteFailureKeepsLocal() {
	local := builders.NewProfileBuilder().WithHeroID("hero-1").WithRunes(4).Build()

	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(&profile.GetHeroWithInventoryOutput{Profile: local.Clone()}, nil)
	s.mockRemote.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(nil, errors.RemoteSync("query", "hero-1", errors.Unavailable("timeout")))
	s.mockIDGen.EXPECT().Generate().Return("op-6")

	var stored *hero.Profile
	s.mockProfile.EXPECT().
		UpsertHeroProfile(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input profile.UpsertHeroProfileInput) (*profile.UpsertHeroProfileOutput, error) {
			stored = input.Profile.Clone()
			return &profile.UpsertHeroProfileOutput{}, nil
		})
	s.expectSyncStateWrites(1)

	out, err := s.orchestrator.RefreshFromRemote(s.ctx, &codex.RefreshFromRemoteInput{HeroID: "hero-1"})
	s.Require().NoError(err)
	s.Assert().False(out.Refreshed)
	s.Assert().True(local.Equal(out.Profile))
	s.Assert().True(local.Equal(stored))
}

func (s *OrchestratorTestSuite) TestRefreshReplacesInventory() {
	local := builders.NewProfileBuilder().WithHeroID("hero-1").WithLevel(4).WithRunes(4).Build()
	remote := builders.NewProfileBuilder().
		WithHeroID("hero-1").
		WithName("Remote Name").
		WithInventoryID("remote-bag").
		WithGold(90).
		WithItems(builders.Sword("sword-1")).
		Build()

	body := remote.ToMap()
	body[hero.FieldItems] = append(body[hero.FieldItems].([]any), map[string]any{item.FieldName: "no id"})

	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(&profile.GetHeroWithInventoryOutput{Profile: local.Clone()}, nil)
	s.mockRemote.EXPECT().
		Query(gomock.Any(), hero_inventory.QueryInput{
			Collection: hero_inventory.Collection,
			Field:      hero.FieldHeroID,
			Value:      "hero-1",
			Limit:      1,
		}).
		Return(&hero_inventory.QueryOutput{Documents: []*hero_inventory.Document{{ID: "remote-bag", Body: body}}}, nil)
	s.mockIDGen.EXPECT().Generate().Return("op-7")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.expectSyncStateWrites(1)

	out, err := s.orchestrator.RefreshFromRemote(s.ctx, &codex.RefreshFromRemoteInput{HeroID: "hero-1"})
	s.Require().NoError(err)

	s.Assert().True(out.Refreshed)
	s.Assert().Equal(local.Hero.Name, out.Profile.Hero.Name)
	s.Assert().Equal(4, out.Profile.Hero.Level)
	s.Assert().Equal("remote-bag", out.Profile.Hero.InventoryID)
	s.Assert().Equal("remote-bag", out.Profile.Inventory.ID)
	s.Assert().Equal(90, out.Profile.Inventory.Gold)
	s.Assert().Equal(1, out.Profile.Inventory.Len())
	s.Require().NotNil(out.Report)
	s.Assert().Len(out.Report.Malformed, 1)
	s.Assert().Equal(codex.StateRemoteRefreshed, out.Trace[len(out.Trace)-1])
	s.Assert().Contains(s.published, hero.EventProfileRefreshed)
}

func (s *OrchestratorTestSuite) TestEnsureMainHandWeapon() {
	svc := s.newOrchestrator(true)
	stored := builders.NewProfileBuilder().
		WithHeroID("hero-1").
		WithClass(hero.ClassWarrior).
		WithItems(builders.Helmet("helm-1")).
		Build()

	s.mockProfile.EXPECT().
		GetHeroWithInventory(s.ctx, gomock.Any()).
		Return(&profile.GetHeroWithInventoryOutput{Profile: stored.Clone()}, nil)
	s.mockIDGen.EXPECT().Generate().Return("op-8")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.expectSyncStateWrites(2)
	s.mockRemote.EXPECT().Set(gomock.Any(), gomock.Any()).Return(&hero_inventory.SetOutput{}, nil)

	out, err := svc.PrepareHeroProfile(s.ctx, &codex.PrepareHeroProfileInput{Hero: stored.Hero})
	s.Require().NoError(err)

	weapons := out.Profile.Inventory.ItemsByCategory(item.CategoryWeapons)
	s.Require().Len(weapons, 1)
	s.Assert().Equal("hero-1_weapon", weapons[0].ID)
	s.Assert().Equal(item.SubcategorySword, weapons[0].Subcategory)
	s.Assert().True(weapons[0].CanEquip(item.SlotMainHand))
}

func (s *OrchestratorTestSuite) TestSeedReferenceData() {
	s.mockProfile.EXPECT().
		UpsertHeroClassMetadata(s.ctx, profile.UpsertHeroClassMetadataInput{
			Metadata: []hero.ClassMetadata{hero.DefaultClassMetadata(hero.ClassPriestess)},
		}).
		Return(&profile.UpsertHeroClassMetadataOutput{}, nil)
	s.mockProfile.EXPECT().
		UpsertRarities(s.ctx, profile.UpsertRaritiesInput{Rarities: item.DefaultRarityInfo()}).
		Return(&profile.UpsertRaritiesOutput{}, nil)
	s.mockProfile.EXPECT().
		UpsertItemCategories(s.ctx, gomock.Any()).
		Return(&profile.UpsertItemCategoriesOutput{}, nil)

	out, err := s.orchestrator.SeedReferenceData(s.ctx, &codex.SeedReferenceDataInput{Class: hero.ClassPriestess})
	s.Require().NoError(err)
	s.Assert().Equal(1, out.Classes)
	s.Assert().Equal(4, out.Rarities)
	s.Assert().Equal(10, out.Categories)

	_, err = s.orchestrator.SeedReferenceData(s.ctx, &codex.SeedReferenceDataInput{Class: "BARD"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSkipsRemoteWhenNotConfigured() {
	svc, err := codex.NewOrchestrator(&codex.Config{
		ProfileRepo: s.mockProfile,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)

	p := builders.NewProfileBuilder().WithHeroID("hero-1").Build()
	s.mockIDGen.EXPECT().Generate().Return("op-9")
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.expectSyncStateWrites(1)

	out, err := svc.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{Profile: p})
	s.Require().NoError(err)
	s.Assert().Equal(codex.SyncStatusSkipped, out.Sync.Status)
}

func (s *OrchestratorTestSuite) TestDefaultIDGeneratorTagsOperations() {
	svc, err := codex.NewOrchestrator(&codex.Config{
		ProfileRepo: s.mockProfile,
	})
	s.Require().NoError(err)

	p := builders.NewProfileBuilder().WithHeroID("hero-1").Build()
	s.mockProfile.EXPECT().UpsertHeroProfile(s.ctx, gomock.Any()).Return(&profile.UpsertHeroProfileOutput{}, nil)
	s.expectSyncStateWrites(1)

	out, err := svc.UpdateInventory(s.ctx, &codex.UpdateInventoryInput{Profile: p})
	s.Require().NoError(err)
	s.Assert().True(strings.HasPrefix(out.Sync.OperationID, "op_"))
	s.Assert().Len(out.Sync.OperationID, len("op_")+36)
}
