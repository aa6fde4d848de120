//go:build unit

package commands_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/comment"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra/memstore"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/ptr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type countingInvalidator struct{ calls atomic.Int32 }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls.Add(1)
	return nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	created  int
	decision []string
}

func (m *recordingMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *recordingMetrics) BookingDecided(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decision = append(m.decision, status)
}

type CommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	uow      shared.UnitOfWork
	clock    *clock.MockClock
	search   *countingInvalidator
	metrics  *recordingMetrics
	users    commands.UserCommands
	items    commands.ItemCommands
	bookings commands.BookingCommands
	comments commands.CommentCommands
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = memstore.NewUoW(memstore.NewStore())
	s.clock = clock.NewMockClock(now)
	s.search = &countingInvalidator{}
	s.metrics = &recordingMetrics{}
	s.users = commands.NewUserUseCase(s.uow, s.search)
	s.items = commands.NewItemUseCase(s.uow, s.search)
	s.bookings = commands.NewBookingUseCase(s.uow, s.metrics)
	s.comments = commands.NewCommentUseCase(s.uow, s.clock)
}

func (s *CommandsTestSuite) createUser(name, email string) int64 {
	res, err := s.users.Create(s.ctx, name, email)
	s.Require().NoError(err)
	return res.UserID
}

func (s *CommandsTestSuite) createItem(ownerID int64, available bool) int64 {
	res, err := s.items.Create(s.ctx, ownerID, item.Spec{Name: "Drill", Description: "Cordless drill", Available: ptr.To(available)})
	s.Require().NoError(err)
	return res.ItemID
}

func (s *CommandsTestSuite) book(bookerID, itemID int64, start, end time.Duration) int64 {
	res, err := s.bookings.Create(s.ctx, bookerID, commands.CreateBookingRequest{ItemID: itemID, Start: now.Add(start), End: now.Add(end)})
	s.Require().NoError(err)
	return res.BookingID
}

func (s *CommandsTestSuite) readBooking(id int64) *booking.Booking {
	var b *booking.Booking
	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, id)
		return err
	})
	s.Require().NoError(err)
	return b
}

// ================================================================================
// Users
// ================================================================================

func (s *CommandsTestSuite) TestUserEmailUniqueness() {
	ann := s.createUser("Ann", "ann@example.com")
	bob := s.createUser("Bob", "bob@example.com")
	s.NotEqual(ann, bob)

	_, err := s.users.Create(s.ctx, "Other Ann", "ann@example.com")
	s.ErrorIs(err, user.ErrEmailDuplicate)

	s.ErrorIs(s.users.Update(s.ctx, bob, user.Patch{Email: ptr.To("ann@example.com")}), user.ErrEmailDuplicate)
	err = s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, bob)
		s.Require().NoError(err)
		s.Equal("bob@example.com", u.Email(), "rejected update leaves the stored email alone")
		return nil
	})
	s.Require().NoError(err)
	s.NoError(s.users.Update(s.ctx, ann, user.Patch{Email: ptr.To("ann@example.com")}), "keeping one's own email")
	s.NoError(s.users.Update(s.ctx, ann, user.Patch{Email: ptr.To("ann2@example.com")}))

	_, err = s.users.Create(s.ctx, "New Ann", "ann@example.com")
	s.NoError(err, "released email is free again")
}

func (s *CommandsTestSuite) TestUserValidationAndMissing() {
	_, err := s.users.Create(s.ctx, "", "x@example.com")
	s.ErrorIs(err, user.ErrEmptyName)

	_, err = s.users.Create(s.ctx, "X", "not-an-email")
	s.ErrorIs(err, user.ErrInvalidEmail)

	s.ErrorIs(s.users.Update(s.ctx, 999, user.Patch{Name: ptr.To("Ghost")}), user.ErrUserNotFound)
	s.NoError(s.users.Delete(s.ctx, 999), "deleting an absent user is a no-op")
}

func (s *CommandsTestSuite) TestUserDeleteCascades() {
	owner := s.createUser("Owner", "owner@example.com")
	booker := s.createUser("Booker", "booker@example.com")
	itemID := s.createItem(owner, true)
	bookingID := s.book(booker, itemID, time.Hour, 2*time.Hour)
	s.Require().Equal(int32(1), s.search.calls.Load())

	s.Require().NoError(s.users.Delete(s.ctx, owner))
	s.Equal(int32(2), s.search.calls.Load(), "owned items leave the search results")

	err := s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Items().FindByID(ctx, itemID)
		s.Error(err)
		_, err = tx.Bookings().FindByID(ctx, bookingID)
		s.Error(err)
		return nil
	})
	s.NoError(err)
}

// ================================================================================
// Items
// ================================================================================

func (s *CommandsTestSuite) TestItemCreateAndUpdate() {
	owner := s.createUser("Owner", "owner@example.com")
	other := s.createUser("Other", "other@example.com")

	_, err := s.items.Create(s.ctx, 999, item.Spec{Name: "Drill", Description: "d", Available: ptr.To(true)})
	s.ErrorIs(err, user.ErrUserNotFound)

	_, err = s.items.Create(s.ctx, owner, item.Spec{Name: "Drill", Description: "d"})
	s.ErrorIs(err, item.ErrAvailabilityRequired)

	itemID := s.createItem(owner, true)
	s.Equal(int32(1), s.search.calls.Load())

	s.ErrorIs(s.items.Update(s.ctx, other, itemID, item.Patch{Name: ptr.To("Mine now")}), item.ErrNotItemOwner)
	s.ErrorIs(s.items.Update(s.ctx, owner, 999, item.Patch{Name: ptr.To("x")}), item.ErrItemNotFound)
	s.ErrorIs(s.items.Update(s.ctx, owner, itemID, item.Patch{Name: ptr.To(" ")}), item.ErrEmptyName)

	s.Require().NoError(s.items.Update(s.ctx, owner, itemID, item.Patch{Available: ptr.To(false)}))
	s.Equal(int32(2), s.search.calls.Load(), "failed updates do not invalidate")

	err = s.uow.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, itemID)
		s.Require().NoError(err)
		s.False(it.Available())
		s.Equal("Drill", it.Name())
		return nil
	})
	s.NoError(err)
}

// ================================================================================
// Bookings
// ================================================================================

func (s *CommandsTestSuite) TestBookingCreateChecks() {
	owner := s.createUser("Owner", "owner@example.com")
	booker := s.createUser("Booker", "booker@example.com")
	itemID := s.createItem(owner, true)
	hidden := s.createItem(owner, false)

	req := func(itemID int64, start, end time.Duration) commands.CreateBookingRequest {
		return commands.CreateBookingRequest{ItemID: itemID, Start: now.Add(start), End: now.Add(end)}
	}

	tests := []struct {
		name     string
		bookerID int64
		req      commands.CreateBookingRequest
		want     error
	}{
		{name: "unknown booker", bookerID: 999, req: req(itemID, time.Hour, 2*time.Hour), want: user.ErrUserNotFound},
		{name: "unknown item", bookerID: booker, req: req(999, time.Hour, 2*time.Hour), want: item.ErrItemNotFound},
		{name: "unavailable item", bookerID: booker, req: req(hidden, time.Hour, 2*time.Hour), want: booking.ErrItemUnavailable},
		{name: "owner books own item", bookerID: owner, req: req(itemID, time.Hour, 2*time.Hour), want: booking.ErrOwnItem},
		{name: "owner books own unavailable item", bookerID: owner, req: req(hidden, time.Hour, 2*time.Hour), want: booking.ErrOwnItem},
		{name: "start equals end", bookerID: booker, req: req(itemID, time.Hour, time.Hour), want: booking.ErrInvalidPeriod},
		{name: "end before start", bookerID: booker, req: req(itemID, 2*time.Hour, time.Hour), want: booking.ErrInvalidPeriod},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.bookings.Create(s.ctx, tt.bookerID, tt.req)
			s.ErrorIs(err, tt.want)
		})
	}
	s.Equal(0, s.metrics.created)

	id := s.book(booker, itemID, time.Hour, 2*time.Hour)
	b := s.readBooking(id)
	s.Equal(booking.StatusWaiting, b.Status())
	s.Equal(1, s.metrics.created)
}

func (s *CommandsTestSuite) TestBookingApprove() {
	owner := s.createUser("Owner", "owner@example.com")
	booker := s.createUser("Booker", "booker@example.com")
	itemID := s.createItem(owner, true)
	id := s.book(booker, itemID, time.Hour, 2*time.Hour)

	s.ErrorIs(s.bookings.Approve(s.ctx, booker, id, true), booking.ErrNotOwner)
	s.ErrorIs(s.bookings.Approve(s.ctx, owner, 999, true), booking.ErrBookingNotFound)

	s.Require().NoError(s.bookings.Approve(s.ctx, owner, id, true))
	s.Equal(booking.StatusApproved, s.readBooking(id).Status())

	s.ErrorIs(s.bookings.Approve(s.ctx, owner, id, false), booking.ErrStatusAlreadyChanged)
	s.Equal(booking.StatusApproved, s.readBooking(id).Status())
	s.Equal([]string{"APPROVED"}, s.metrics.decision)

	rejected := s.book(booker, itemID, 3*time.Hour, 4*time.Hour)
	s.Require().NoError(s.bookings.Approve(s.ctx, owner, rejected, false))
	s.Equal(booking.StatusRejected, s.readBooking(rejected).Status())
}

func (s *CommandsTestSuite) TestBookingApproveConcurrent() {
	owner := s.createUser("Owner", "owner@example.com")
	booker := s.createUser("Booker", "booker@example.com")
	itemID := s.createItem(owner, true)
	id := s.book(booker, itemID, time.Hour, 2*time.Hour)

	const workers = 8
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32
	for i := range workers {
		wg.Add(1)
		go func(approve bool) {
			defer wg.Done()
			err := s.bookings.Approve(s.ctx, owner, id, approve)
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(s.T(), err, booking.ErrStatusAlreadyChanged):
				conflicts.Add(1)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	s.Equal(int32(1), ok.Load())
	s.Equal(int32(workers-1), conflicts.Load())
	s.True(s.readBooking(id).Status().IsTerminal())
}

// ================================================================================
// Comments
// ================================================================================

func (s *CommandsTestSuite) TestCommentEligibility() {
	owner := s.createUser("Owner", "owner@example.com")
	booker := s.createUser("Booker", "booker@example.com")
	stranger := s.createUser("Stranger", "stranger@example.com")
	itemID := s.createItem(owner, true)

	finished := s.book(booker, itemID, -3*time.Hour, -time.Hour)
	running := s.book(stranger, itemID, -time.Hour, time.Hour)

	_, err := s.comments.Add(s.ctx, booker, itemID, "Great")
	s.ErrorIs(err, comment.ErrNotEligible, "booking still WAITING")

	s.Require().NoError(s.bookings.Approve(s.ctx, owner, finished, true))
	s.Require().NoError(s.bookings.Approve(s.ctx, owner, running, true))

	res, err := s.comments.Add(s.ctx, booker, itemID, "  Great  ")
	s.Require().NoError(err)
	s.NotZero(res.CommentID)

	_, err = s.comments.Add(s.ctx, stranger, itemID, "Too early")
	s.ErrorIs(err, comment.ErrNotEligible, "approved but not ended")

	s.clock.Add(2 * time.Hour)
	_, err = s.comments.Add(s.ctx, stranger, itemID, "Now it's over")
	s.NoError(err)

	_, err = s.comments.Add(s.ctx, owner, itemID, "I own it")
	s.ErrorIs(err, comment.ErrNotEligible)

	_, err = s.comments.Add(s.ctx, booker, 999, "Nope")
	s.ErrorIs(err, item.ErrItemNotFound)

	_, err = s.comments.Add(s.ctx, 999, itemID, "Nope")
	s.ErrorIs(err, user.ErrUserNotFound)

	_, err = s.comments.Add(s.ctx, booker, itemID, "   ")
	s.ErrorIs(err, comment.ErrEmptyText)
}

func TestRejectedBookingDoesNotQualify(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUoW(memstore.NewStore())
	users := commands.NewUserUseCase(uow, &countingInvalidator{})
	items := commands.NewItemUseCase(uow, &countingInvalidator{})
	bookings := commands.NewBookingUseCase(uow, &recordingMetrics{})
	comments := commands.NewCommentUseCase(uow, clock.NewMockClock(now))

	owner, err := users.Create(ctx, "Owner", "owner@example.com")
	require.NoError(t, err)
	booker, err := users.Create(ctx, "Booker", "booker@example.com")
	require.NoError(t, err)
	it, err := items.Create(ctx, owner.UserID, item.Spec{Name: "Saw", Description: "Hand saw", Available: ptr.To(true)})
	require.NoError(t, err)
	b, err := bookings.Create(ctx, booker.UserID, commands.CreateBookingRequest{ItemID: it.ItemID, Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, bookings.Approve(ctx, owner.UserID, b.BookingID, false))

	_, err = comments.Add(ctx, booker.UserID, it.ItemID, "Never used it")
	assert.ErrorIs(t, err, comment.ErrNotEligible)
}
