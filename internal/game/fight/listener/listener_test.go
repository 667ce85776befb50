package listener_test

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/tactics/internal/game/battlefield"
	"github.com/cory-johannsen/tactics/internal/game/fight"
	"github.com/cory-johannsen/tactics/internal/game/fight/action"
	"github.com/cory-johannsen/tactics/internal/game/fight/action/mocks"
	"github.com/cory-johannsen/tactics/internal/game/fight/fighter"
	"github.com/cory-johannsen/tactics/internal/game/fight/listener"
)

type packets struct {
	mu   sync.Mutex
	sent []string
}

func (p *packets) Send(packet string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, packet)
}

func (p *packets) all() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.sent)
}

func monster(id, initiative int) *fighter.Fighter {
	return fighter.New(id, fmt.Sprintf("m%d", id), fighter.KindMonster, fighter.Characteristics{
		Initiative:     initiative,
		ActionPoints:   6,
		MovementPoints: 3,
		Damage:         10,
	}, 10)
}

// duel starts a 5x5 fight where a, on cell 0, plays first against b on cell 24.
func duel(t *testing.T, logger *zap.Logger) (f *fight.Fight, a, b *fighter.Fighter) {
	t.Helper()
	dims := battlefield.Dimensions{Width: 5, Height: 5}
	terrain := make([]battlefield.Terrain, dims.Size())
	for i := range terrain {
		terrain[i] = battlefield.Floor
	}
	topo := &battlefield.Topology{ID: "arena", Dimensions: dims, Terrain: terrain}
	a, b = monster(1, 200), monster(2, 100)
	f, err := fight.New("duel", battlefield.New(topo), []*fighter.Team{
		fighter.NewTeam(0, []int{0}, a),
		fighter.NewTeam(1, []int{24}, b),
	}, fight.Settings{
		TurnDuration:     time.Hour,
		MoveStepDuration: time.Millisecond,
		AttackDuration:   time.Millisecond,
	}, logger)
	require.NoError(t, err)
	return f, a, b
}

func TestPackets(t *testing.T) {
	ctrl := gomock.NewController(t)
	performer := monster(7, 0)

	act := mocks.NewMockAction(ctrl)
	act.EXPECT().Performer().Return(performer).AnyTimes()

	assert.Equal(t, "GAS7", listener.StartFightAction(act))
	assert.Equal(t, "GAF7", listener.FinishFightAction(act))

	attack := mocks.NewMockResult(ctrl)
	attack.EXPECT().Success().Return(true)
	attack.EXPECT().Type().Return(action.TypeCloseCombat)
	attack.EXPECT().Arguments().Return([]any{12, 10})
	assert.Equal(t, "GA;303;7;12;10", listener.FightAction(act, attack))

	bare := mocks.NewMockResult(ctrl)
	bare.EXPECT().Success().Return(true)
	bare.EXPECT().Type().Return(action.TypeMove)
	bare.EXPECT().Arguments().Return(nil)
	assert.Equal(t, "GA;1;7", listener.FightAction(act, bare))

	failed := mocks.NewMockResult(ctrl)
	failed.EXPECT().Success().Return(false)
	assert.Equal(t, "GA;0", listener.FightAction(act, failed))
}

func TestSendFightAction_Move(t *testing.T) {
	f, _, _ := duel(t, zaptest.NewLogger(t))
	sent := &packets{}
	listener.SendFightAction(f, sent)
	defer f.Stop()

	require.NoError(t, f.Start())
	turn := f.Turn()
	require.True(t, turn.Perform(fight.NewMove(turn, []int{5, 10})))

	assert.Equal(t, []string{"GAS1", "GA;1;1;5,10"}, sent.all())
	require.Eventually(t, func() bool { return len(sent.all()) == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, "GAF1", sent.all()[2])
}

func TestSendFightAction_KillingBlowKeepsLifecycleOrder(t *testing.T) {
	topo := &battlefield.Topology{ID: "pit", Dimensions: battlefield.Dimensions{Width: 2, Height: 1},
		Terrain: []battlefield.Terrain{battlefield.Floor, battlefield.Floor}}
	a, b := monster(1, 200), monster(2, 100)
	f, err := fight.New("kill", battlefield.New(topo), []*fighter.Team{
		fighter.NewTeam(0, []int{0}, a),
		fighter.NewTeam(1, []int{1}, b),
	}, fight.Settings{TurnDuration: time.Hour, MoveStepDuration: time.Hour, AttackDuration: time.Hour}, zaptest.NewLogger(t))
	require.NoError(t, err)
	sent := &packets{}
	listener.SendFightAction(f, sent)

	require.NoError(t, f.Start())
	turn := f.Turn()
	require.True(t, turn.Perform(fight.NewAttack(turn, b)))
	<-f.Done()

	assert.True(t, b.Dead())
	assert.Equal(t, []string{"GAS1", "GA;303;1;2;10", "GAF1"}, sent.all())
}

func TestSendFightAction_FailedStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	f, a, _ := duel(t, zaptest.NewLogger(t))
	sent := &packets{}
	listener.SendFightAction(f, sent)
	defer f.Stop()
	require.NoError(t, f.Start())

	failed := mocks.NewMockResult(ctrl)
	failed.EXPECT().Success().Return(false).AnyTimes()
	act := mocks.NewMockAction(ctrl)
	act.EXPECT().Performer().Return(a).AnyTimes()
	act.EXPECT().Validate().Return(true)
	act.EXPECT().Start().Return(failed)

	assert.True(t, f.Handler().Start(act))
	assert.Equal(t, []string{"GAS1", "GA;0"}, sent.all())
	assert.False(t, f.Handler().Pending())
}

func TestSendFightAction_InvalidActionSendsNothing(t *testing.T) {
	f, _, _ := duel(t, zaptest.NewLogger(t))
	sent := &packets{}
	listener.SendFightAction(f, sent)
	defer f.Stop()
	require.NoError(t, f.Start())

	turn := f.Turn()
	assert.False(t, turn.Perform(fight.NewMove(turn, []int{6})), "diagonal step")
	assert.Empty(t, sent.all())
}

func TestSendFightAction_Cancel(t *testing.T) {
	f, _, _ := duel(t, zaptest.NewLogger(t))
	var sent []string
	subs := listener.SendFightAction(f, listener.SenderFunc(func(p string) { sent = append(sent, p) }))
	for _, s := range subs {
		s.Cancel()
	}
	defer f.Stop()
	require.NoError(t, f.Start())

	turn := f.Turn()
	require.True(t, turn.Perform(fight.NewMove(turn, []int{1})))
	f.Handler().Terminate()
	assert.Empty(t, sent)
}

func TestLogFightEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f, _, b := duel(t, nil)
	listener.LogFightEvents(f, zap.New(core))

	require.NoError(t, f.Start())
	turn := f.Turn()
	require.True(t, turn.Perform(fight.NewMove(turn, []int{1})))
	require.NoError(t, f.Leave(b))
	<-f.Done()

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
		assert.Equal(t, "duel", e.ContextMap()["fight_id"])
	}
	assert.Equal(t, []string{
		"fight begins",
		"turn begins",
		"action",
		"fighter killed",
		"turn ends",
		"fight over",
	}, messages)

	over := logs.FilterMessage("fight over").All()
	require.Len(t, over, 1)
	assert.Equal(t, int64(0), over[0].ContextMap()["winner"])

	acts := logs.FilterMessage("action").All()
	require.Len(t, acts, 1)
	assert.Equal(t, "move", acts[0].ContextMap()["type"])
	assert.Equal(t, true, acts[0].ContextMap()["success"])
}

func TestLogFightEvents_StopWithoutWinner(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f, _, _ := duel(t, nil)
	listener.LogFightEvents(f, zap.New(core))

	require.NoError(t, f.Start())
	f.Stop()
	assert.Equal(t, 1, logs.FilterMessage("fight over, no winner").Len())
}
