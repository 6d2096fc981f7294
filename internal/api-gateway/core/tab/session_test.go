package tab

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports/portsmock"
	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

const tableID = "12"

var tea = entity.Product{ID: "p-tea", Name: "Tea", UnitPrice: decimal.RequireFromString("25.00")}

func oneLineTab(qty int, lineTotal string) *entity.Tab {
	return &entity.Tab{
		TableID:     tableID,
		TableNumber: "12",
		Lines: []entity.OrderLine{{
			ID: "line-1", TableID: tableID, ProductID: tea.ID, Product: tea,
			Quantity: qty, LineTotal: decimal.RequireFromString(lineTotal),
		}},
		Total: decimal.RequireFromString(lineTotal),
	}
}

func emptyTab() *entity.Tab {
	return &entity.Tab{TableID: tableID, TableNumber: "12", Total: decimal.Zero}
}

type catalogFunc func(ctx context.Context) ([]entity.Product, error)

func (f catalogFunc) Products(ctx context.Context) ([]entity.Product, error) { return f(ctx) }

type recorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recorder) ObserveOperation(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, op+":"+outcome)
}

type SessionTestSuite struct {
	suite.Suite
	svc     *portsmock.OrderService
	journal *tablog.MemoryRepository
	metrics *recorder
	session *Session
}

func (s *SessionTestSuite) SetupTest() {
	s.svc = new(portsmock.OrderService)
	s.journal = tablog.NewMemoryRepository()
	s.metrics = &recorder{}
	s.session = NewSession(tableID, s.svc,
		WithJournal(s.journal),
		WithMetrics(s.metrics),
		WithMutationTimeout(time.Second),
	)
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) load(tab *entity.Tab) {
	s.svc.On("GetTab", mock.Anything, tableID).Return(tab, nil).Once()
	st, err := s.session.Load(context.Background())
	s.Require().NoError(err)
	s.Require().Nil(st.LastError)
}

func (s *SessionTestSuite) TestNewSessionIsIdle() {
	st := s.session.Snapshot()
	s.Equal(StatusIdle, st.Status)
	s.Equal(tableID, st.TableID)
	s.Empty(st.Tab.Lines)
	s.Nil(st.LastError)
}

func (s *SessionTestSuite) TestLoad() {
	s.load(oneLineTab(2, "50.00"))

	st := s.session.Snapshot()
	s.Equal(StatusIdle, st.Status)
	s.Require().Len(st.Tab.Lines, 1)
	s.Equal(2, st.Tab.Lines[0].Quantity)
	s.True(st.Tab.Total.Equal(decimal.RequireFromString("50.00")))
	s.Equal([]string{"load:ok"}, s.metrics.outcomes)
}

func (s *SessionTestSuite) TestLoadFailureKeepsPreviousView() {
	s.load(oneLineTab(1, "25.00"))

	s.svc.On("GetTab", mock.Anything, tableID).Return(nil, errors.New("connection refused")).Once()
	st, err := s.session.Load(context.Background())
	s.Require().NoError(err)

	s.Require().NotNil(st.LastError)
	s.Equal(LoadFailed, st.LastError.Kind)
	s.Equal(StatusIdle, st.Status)
	s.Require().Len(st.Tab.Lines, 1)
	s.Equal("line-1", st.Tab.Lines[0].ID)
}

func (s *SessionTestSuite) TestLoadProtocolViolation() {
	bad := oneLineTab(0, "0.00")
	s.svc.On("GetTab", mock.Anything, tableID).Return(bad, nil).Once()

	st, err := s.session.Load(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(st.LastError)
	s.Equal(LoadFailed, st.LastError.Kind)
	s.ErrorIs(st.LastError, entity.ErrProtocolViolation)
	s.Empty(st.Tab.Lines)
}

func (s *SessionTestSuite) TestAddThenRemoveScenario() {
	s.load(emptyTab())

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(1, "25.00"), nil).Once()

	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Nil(st.LastError)
	s.Equal(StatusIdle, st.Status)
	s.Require().Len(st.Tab.Lines, 1)
	s.Equal(1, st.Tab.Lines[0].Quantity)
	s.True(st.Tab.Lines[0].LineTotal.Equal(decimal.RequireFromString("25.00")))

	s.svc.On("SetLineQuantity", mock.Anything, "line-1", 0).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(emptyTab(), nil).Once()

	st, err = s.session.RemoveItem(context.Background(), "line-1")
	s.Require().NoError(err)
	s.Nil(st.LastError)
	s.Empty(st.Tab.Lines)
	s.True(st.Tab.Total.IsZero())
	s.Equal("0.00", st.Tab.Total.StringFixed(2))

	s.svc.AssertExpectations(s.T())
}

func (s *SessionTestSuite) TestReadAfterWriteUsesServiceFigures() {
	s.load(oneLineTab(1, "25.00"))

	// the service applies a promotion the session knows nothing about
	discounted := oneLineTab(2, "45.00")
	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(discounted, nil).Once()

	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Equal(*discounted, st.Tab)
}

func (s *SessionTestSuite) TestAddFailureLeavesTabUnchanged() {
	s.load(oneLineTab(1, "25.00"))
	before := s.session.Snapshot().Tab

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(errors.New("503")).Once()

	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Equal(StatusIdle, st.Status)
	s.Require().NotNil(st.LastError)
	s.Equal(AddFailed, st.LastError.Kind)
	s.Equal(before, st.Tab)

	// no re-read after a failed mutation
	s.svc.AssertNumberOfCalls(s.T(), "GetTab", 1)
}

func (s *SessionTestSuite) TestRefreshFailureAfterAdd() {
	s.load(oneLineTab(1, "25.00"))
	before := s.session.Snapshot().Tab

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(nil, errors.New("timeout")).Once()

	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Require().NotNil(st.LastError)
	s.Equal(AddFailed, st.LastError.Kind)
	s.Equal(before, st.Tab)
}

func (s *SessionTestSuite) TestProtocolViolationAfterAddIsLoadFailed() {
	s.load(emptyTab())

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(-1, "-25.00"), nil).Once()

	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Require().NotNil(st.LastError)
	s.Equal(LoadFailed, st.LastError.Kind)
	s.Empty(st.Tab.Lines)
}

func (s *SessionTestSuite) TestRemoveFailure() {
	s.load(oneLineTab(3, "75.00"))

	s.svc.On("SetLineQuantity", mock.Anything, "line-1", 2).Return(errors.New("boom")).Once()

	st, err := s.session.RemoveItem(context.Background(), "line-1")
	s.Require().NoError(err)
	s.Require().NotNil(st.LastError)
	s.Equal(RemoveFailed, st.LastError.Kind)
	s.Equal(3, st.Tab.Lines[0].Quantity)
}

func (s *SessionTestSuite) TestRemoveUnknownLine() {
	s.load(oneLineTab(1, "25.00"))

	st, err := s.session.RemoveItem(context.Background(), "nope")
	s.ErrorIs(err, ErrLineNotFound)
	s.Nil(st.LastError)
	s.svc.AssertNotCalled(s.T(), "SetLineQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SessionTestSuite) TestSuccessClearsLastError() {
	s.load(oneLineTab(1, "25.00"))

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(errors.New("boom")).Once()
	st, _ := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NotNil(st.LastError)

	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(2, "50.00"), nil).Once()
	st, err := s.session.AddItem(context.Background(), tea.ID)
	s.Require().NoError(err)
	s.Nil(st.LastError)
}

func (s *SessionTestSuite) TestClose() {
	s.load(oneLineTab(2, "50.00"))

	s.svc.On("DeleteTableLines", mock.Anything, tableID).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(emptyTab(), nil).Once()

	st, err := s.session.Close(context.Background())
	s.Require().NoError(err)
	s.Nil(st.LastError)
	s.Equal(StatusClosed, st.Status)
	s.Empty(st.Tab.Lines)

	_, err = s.session.AddItem(context.Background(), tea.ID)
	s.ErrorIs(err, ErrSessionClosed)
	_, err = s.session.RemoveItem(context.Background(), "line-1")
	s.ErrorIs(err, ErrSessionClosed)
	_, err = s.session.Close(context.Background())
	s.ErrorIs(err, ErrSessionClosed)

	// loading reopens the tab
	s.load(emptyTab())
	s.Equal(StatusIdle, s.session.Snapshot().Status)

	var ops []string
	for _, e := range s.journal.Entries() {
		if e.Status == tablog.StatusCompleted {
			ops = append(ops, e.Operation)
		}
	}
	s.Equal([]string{"close"}, ops)
}

func (s *SessionTestSuite) TestCloseRefreshFailure() {
	s.load(oneLineTab(2, "50.00"))

	s.svc.On("DeleteTableLines", mock.Anything, tableID).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(nil, errors.New("timeout")).Once()

	st, err := s.session.Close(context.Background())
	s.Require().NoError(err)
	s.Equal(StatusIdle, st.Status)
	s.Require().NotNil(st.LastError)
	s.Equal(CloseFailed, st.LastError.Kind)
	s.Len(st.Tab.Lines, 1, "tab must not be assumed cleared")
}

func (s *SessionTestSuite) TestCloseNotEmptyAfterRefresh() {
	s.load(oneLineTab(2, "50.00"))

	s.svc.On("DeleteTableLines", mock.Anything, tableID).Return(nil).Once()
	s.svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(1, "25.00"), nil).Once()

	st, err := s.session.Close(context.Background())
	s.Require().NoError(err)
	s.Equal(StatusIdle, st.Status)
	s.Require().NotNil(st.LastError)
	s.Equal(CloseFailed, st.LastError.Kind)
	s.Equal(2, st.Tab.Lines[0].Quantity)
}

func (s *SessionTestSuite) TestMetricsOutcomes() {
	s.load(emptyTab())
	s.svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(errors.New("boom")).Once()
	_, _ = s.session.AddItem(context.Background(), tea.ID)
	_, _ = s.session.RemoveItem(context.Background(), "missing")

	s.Equal([]string{"load:ok", "add_item:ADD_FAILED", "remove_item:rejected"}, s.metrics.outcomes)
}

func TestLoadWithCatalog(t *testing.T) {
	svc := new(portsmock.OrderService)
	svc.On("GetTab", mock.Anything, tableID).Return(emptyTab(), nil)

	cat := catalogFunc(func(context.Context) ([]entity.Product, error) {
		return []entity.Product{tea}, nil
	})
	s := NewSession(tableID, svc, WithCatalog(cat))

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Product{tea}, st.Products)

	failing := NewSession(tableID, svc, WithCatalog(catalogFunc(func(context.Context) ([]entity.Product, error) {
		return nil, errors.New("catalog down")
	})))
	st, err = failing.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st.LastError)
	assert.Equal(t, LoadFailed, st.LastError.Kind)
}

func TestObserverSeesTransitions(t *testing.T) {
	svc := new(portsmock.OrderService)
	svc.On("IncreaseLineQuantity", mock.Anything, tableID, tea.ID, 1).Return(nil)
	svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(1, "25.00"), nil)

	var mu sync.Mutex
	var seen []Status
	s := NewSession(tableID, svc, WithObserver(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, st.Status)
	}))

	_, err := s.AddItem(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusMutating, StatusIdle}, seen)
}

func TestSnapshotIsDetached(t *testing.T) {
	svc := new(portsmock.OrderService)
	svc.On("GetTab", mock.Anything, tableID).Return(oneLineTab(1, "25.00"), nil)
	s := NewSession(tableID, svc)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Tab.Lines[0].Quantity = 99
	assert.Equal(t, 1, s.Snapshot().Tab.Lines[0].Quantity)
}

func TestManagerSessionPerTable(t *testing.T) {
	m := NewManager(new(portsmock.OrderService))
	a := m.Session("1")
	assert.Same(t, a, m.Session("1"))
	assert.NotSame(t, a, m.Session("2"))
	assert.Equal(t, "2", m.Session("2").TableID())
}

func TestStatusText(t *testing.T) {
	b, err := StatusClosed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", string(b))
	assert.Equal(t, "Status(9)", Status(9).String())
}
